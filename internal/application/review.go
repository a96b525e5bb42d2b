package application

import (
	"sort"
	"strings"

	"github.com/fundbridge/intake-go/internal/domain/funding"
	"github.com/fundbridge/intake-go/internal/domain/user"
	"github.com/fundbridge/intake-go/internal/repository"
)

// ReviewService exposes filtered, deterministically ordered views of the
// application set to reviewers.
type ReviewService struct {
	repos *repository.Repos
}

func NewReviewService(repos *repository.Repos) *ReviewService {
	return &ReviewService{repos: repos}
}

// List is the repository-backed listing with the same filter semantics as
// Query; the database applies the predicates and ordering.
func (s *ReviewService) List(filter funding.ReviewFilter) ([]funding.Application, error) {
	return s.repos.Application.List(filter)
}

func (s *ReviewService) Get(id string) (funding.Application, error) {
	app, err := s.repos.Application.GetByID(id)
	if err != nil {
		return funding.Application{}, ErrApplicationNotFound
	}
	return app, nil
}

func (s *ReviewService) ListByApplicant(applicantID uint) ([]funding.Application, error) {
	return s.repos.Application.ListByApplicant(applicantID)
}

func (s *ReviewService) Summary() (funding.StatusSummary, error) {
	return s.repos.Application.Summary()
}

// Query filters and orders an in-memory application set. Pure: the input
// slice is never mutated and identical inputs yield identical, identically
// ordered output. All reviewer roles currently see the full reviewed set;
// per-partner scoping is a product decision left out deliberately.
func Query(apps []funding.Application, filter funding.ReviewFilter, role user.Role) []funding.Application {
	term := strings.ToLower(strings.TrimSpace(filter.Term))

	out := make([]funding.Application, 0, len(apps))
	for _, app := range apps {
		if term != "" &&
			!strings.Contains(strings.ToLower(app.ApplicantName), term) &&
			!strings.Contains(strings.ToLower(app.BusinessName), term) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(app.Status) != filter.Status {
			continue
		}
		if filter.Country != "" && filter.Country != "all" && !strings.EqualFold(app.Country, filter.Country) {
			continue
		}
		if filter.ValueChain != "" && filter.ValueChain != "all" && app.ValueChain != filter.ValueChain {
			continue
		}
		if filter.From != nil && app.SubmissionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && app.SubmissionDate.After(*filter.To) {
			continue
		}
		out = append(out, app)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SubmissionDate.Equal(out[j].SubmissionDate) {
			return out[i].SubmissionDate.After(out[j].SubmissionDate)
		}
		return out[i].ID < out[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []funding.Application{}
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out
}
