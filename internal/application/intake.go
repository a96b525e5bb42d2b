package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fundbridge/intake-go/internal/domain/funding"
	"github.com/fundbridge/intake-go/internal/domain/intake"
	"github.com/fundbridge/intake-go/internal/repository"
	"github.com/fundbridge/intake-go/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrUnknownField        = errors.New("unknown field")
	ErrValueRejected       = errors.New("value does not conform to the field type, prior value retained")
	ErrUnknownNeedCategory = errors.New("unknown non-financial need category")
)

// IntakeService owns one draft per entrepreneur session. Drafts are ephemeral
// and in-memory: they gain identity only at submission, when the frozen
// Application is persisted and the draft is discarded.
type IntakeService struct {
	repos *repository.Repos
	store storage.ObjectStore

	mu     sync.Mutex
	drafts map[uint]*intake.Draft
}

func NewIntakeService(repos *repository.Repos, store storage.ObjectStore) *IntakeService {
	return &IntakeService{
		repos:  repos,
		store:  store,
		drafts: make(map[uint]*intake.Draft),
	}
}

// Draft returns the session's draft, creating an empty one on first use.
func (s *IntakeService) Draft(applicantID uint) *intake.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[applicantID]
	if !ok {
		d = intake.NewDraft()
		s.drafts[applicantID] = d
	}
	return d
}

func (s *IntakeService) SetField(applicantID uint, field, value string) (*intake.Draft, error) {
	d := s.Draft(applicantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := intake.LookupField(field); !ok {
		return d, ErrUnknownField
	}
	if !d.SetField(field, value) {
		return d, ErrValueRejected
	}
	return d, nil
}

func (s *IntakeService) SetNeeds(applicantID uint, category string, options []string) (*intake.Draft, error) {
	d := s.Draft(applicantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !d.SetNeeds(category, options) {
		return d, ErrUnknownNeedCategory
	}
	return d, nil
}

// UploadDocument streams the file to the object store and attaches the
// resulting reference to the draft bundle. The category and file class are
// validated before any byte leaves the process.
func (s *IntakeService) UploadDocument(ctx context.Context, applicantID uint, category, filename, contentType string, size int64, reader io.Reader) (*intake.Draft, error) {
	spec, ok := intake.LookupCategory(category)
	if !ok {
		return nil, &intake.DocumentError{Category: category, Reason: "unknown document category"}
	}
	if !intake.ExtensionAccepted(spec, filename) {
		return nil, &intake.DocumentError{Category: category, Reason: "file type not accepted for this category"}
	}

	key := "drafts/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := s.store.Put(ctx, key, reader, size, contentType); err != nil {
		return nil, err
	}

	d := s.Draft(applicantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := d.AttachDocument(intake.DocumentRef{
		Category:    spec.Category,
		FileName:    filename,
		ObjectKey:   key,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now(),
	}); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *IntakeService) RemoveDocument(applicantID uint, category string, index int) (*intake.Draft, error) {
	spec, ok := intake.LookupCategory(category)
	if !ok {
		return nil, &intake.DocumentError{Category: category, Reason: "unknown document category"}
	}
	d := s.Draft(applicantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Documents.Detach(spec.Category, index)
	return d, nil
}

// Validate reports the itemized validation state without side effects.
func (s *IntakeService) Validate(applicantID uint) *intake.ValidationError {
	d := s.Draft(applicantID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return intake.Validate(d)
}

// Submit gates on completeness first (no persistence call for an invalid
// draft), then freezes the draft into a pending Application, persists it and
// discards the draft. The returned record is the lifecycle engine's from
// here on.
func (s *IntakeService) Submit(applicantID uint) (*funding.Application, error) {
	d := s.Draft(applicantID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if verr := intake.Validate(d); verr != nil {
		return nil, verr
	}

	app := funding.NewApplication(applicantID, d, time.Now())
	if err := s.repos.Application.Create(app); err != nil {
		return nil, err
	}

	delete(s.drafts, applicantID)
	return app, nil
}
