package application

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/fundbridge/intake-go/internal/domain/funding"
	"github.com/fundbridge/intake-go/internal/domain/user"
	"github.com/fundbridge/intake-go/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. They implement the same interfaces the gorm
// repositories do, with just enough bookkeeping to assert on writes.

type fakeUserRepo struct {
	users  map[uint]user.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]user.User), nextID: 1}
}

func (r *fakeUserRepo) Create(u *user.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return errors.New("duplicate username")
		}
	}
	u.UID = r.nextID
	r.nextID++
	r.users[u.UID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(u *user.User) error {
	if _, ok := r.users[u.UID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[u.UID] = *u
	return nil
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepo { return r }

type fakeApplicationRepo struct {
	apps    map[string]funding.Application
	creates int
	casErr  error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]funding.Application)}
}

func (r *fakeApplicationRepo) Create(app *funding.Application) error {
	r.creates++
	r.apps[app.ID] = *app
	return nil
}

func (r *fakeApplicationRepo) GetByID(id string) (funding.Application, error) {
	app, ok := r.apps[id]
	if !ok {
		return funding.Application{}, gorm.ErrRecordNotFound
	}
	return app, nil
}

func (r *fakeApplicationRepo) ListByApplicant(applicantID uint) ([]funding.Application, error) {
	var out []funding.Application
	for _, app := range r.apps {
		if app.ApplicantID == applicantID {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeApplicationRepo) List(filter funding.ReviewFilter) ([]funding.Application, error) {
	var all []funding.Application
	for _, app := range r.apps {
		all = append(all, app)
	}
	return Query(all, filter, user.RoleAdmin), nil
}

func (r *fakeApplicationRepo) UpdateReviewCAS(app *funding.Application, expectedVersion int) error {
	if r.casErr != nil {
		return r.casErr
	}
	stored, ok := r.apps[app.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != expectedVersion {
		return funding.ErrVersionConflict
	}
	app.Version = expectedVersion + 1
	r.apps[app.ID] = *app
	return nil
}

func (r *fakeApplicationRepo) UpdateAssessment(app *funding.Application) error {
	if _, ok := r.apps[app.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.apps[app.ID] = *app
	return nil
}

func (r *fakeApplicationRepo) Summary() (funding.StatusSummary, error) {
	summary := funding.StatusSummary{
		ByStatus:  make(map[string]int64),
		ByCountry: make(map[string]int64),
	}
	for _, app := range r.apps {
		summary.Total++
		summary.ByStatus[string(app.Status)]++
		summary.ByCountry[app.Country]++
	}
	return summary, nil
}

func (r *fakeApplicationRepo) WithTx(tx *gorm.DB) repository.ApplicationRepo { return r }

type fakeStatusChangeRepo struct {
	changes []funding.StatusChange
}

func (r *fakeStatusChangeRepo) Create(change *funding.StatusChange) error {
	change.ID = uint(len(r.changes) + 1)
	r.changes = append(r.changes, *change)
	return nil
}

func (r *fakeStatusChangeRepo) Query(params repository.StatusChangeQueryParams) ([]funding.StatusChange, error) {
	var out []funding.StatusChange
	for _, c := range r.changes {
		if params.ApplicationID != nil && c.ApplicationID != *params.ApplicationID {
			continue
		}
		if params.ActorID != nil && c.ActorID != *params.ActorID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeStatusChangeRepo) WithTx(tx *gorm.DB) repository.StatusChangeRepo { return r }

type fakeStore struct {
	puts    map[string]int64
	putErr  error
	removed []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{puts: make(map[string]int64)}
}

func (s *fakeStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts[key] = size
	return nil
}

func (s *fakeStore) Remove(ctx context.Context, key string) error {
	s.removed = append(s.removed, key)
	return nil
}

type fixture struct {
	repos        *repository.Repos
	users        *fakeUserRepo
	apps         *fakeApplicationRepo
	statusChange *fakeStatusChangeRepo
	store        *fakeStore
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	apps := newFakeApplicationRepo()
	statusChange := &fakeStatusChangeRepo{}
	return &fixture{
		repos:        repository.NewWithRepos(users, apps, statusChange),
		users:        users,
		apps:         apps,
		statusChange: statusChange,
		store:        newFakeStore(),
	}
}
