package application

import (
	"errors"
	"time"

	"github.com/fundbridge/intake-go/internal/domain/funding"
	"github.com/fundbridge/intake-go/internal/repository"
)

var ErrApplicationNotFound = errors.New("application not found")

// LifecycleService owns every status mutation on submitted applications.
// Authorization and edge legality are decided by the funding transition
// table; this service adds the optimistic-lock persistence around it.
type LifecycleService struct {
	repos *repository.Repos
}

func NewLifecycleService(repos *repository.Repos) *LifecycleService {
	return &LifecycleService{repos: repos}
}

// UpdateStatus applies one transition under a compare-and-set on the version
// the caller read. A stale version surfaces funding.ErrVersionConflict so the
// caller re-reads and retries against fresh state instead of overwriting a
// concurrent reviewer's work. Re-submitting the current status is a no-op
// returning the unchanged record.
func (s *LifecycleService) UpdateStatus(id string, target string, actor funding.Actor, expectedVersion int) (funding.Application, error) {
	status, err := funding.ParseStatus(target)
	if err != nil {
		return funding.Application{}, err
	}

	app, err := s.repos.Application.GetByID(id)
	if err != nil {
		return funding.Application{}, ErrApplicationNotFound
	}

	if app.Status == status {
		// idempotent retry, nothing to write
		return app, nil
	}

	if app.Version != expectedVersion {
		return app, funding.ErrVersionConflict
	}

	from := app.Status
	if err := funding.Transition(&app, status, actor, time.Now()); err != nil {
		return app, err
	}

	err = s.repos.ExecTx(func(tx *repository.Repos) error {
		if err := tx.Application.UpdateReviewCAS(&app, expectedVersion); err != nil {
			return err
		}
		return tx.StatusChange.Create(&funding.StatusChange{
			ApplicationID: app.ID,
			FromStatus:    from,
			ToStatus:      app.Status,
			ActorID:       actor.ID,
		})
	})
	if err != nil {
		return funding.Application{}, err
	}
	return app, nil
}

// AttachAssessment records the external scoring service's verdict. The scores
// are opaque metadata; nothing in the lifecycle depends on them.
func (s *LifecycleService) AttachAssessment(id string, input funding.AssessmentDTO) (funding.Application, error) {
	app, err := s.repos.Application.GetByID(id)
	if err != nil {
		return funding.Application{}, ErrApplicationNotFound
	}

	score := input.EligibilityScore
	app.EligibilityScore = &score
	app.RiskLevel = input.RiskLevel
	if err := s.repos.Application.UpdateAssessment(&app); err != nil {
		return funding.Application{}, err
	}
	return app, nil
}

// History returns the review audit trail for one application, newest first.
func (s *LifecycleService) History(id string, limit, offset int) ([]funding.StatusChange, error) {
	if _, err := s.repos.Application.GetByID(id); err != nil {
		return nil, ErrApplicationNotFound
	}
	return s.repos.StatusChange.Query(repository.StatusChangeQueryParams{
		ApplicationID: &id,
		Limit:         limit,
		Offset:        offset,
	})
}
