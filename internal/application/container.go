package application

import (
	"github.com/fundbridge/intake-go/internal/repository"
	"github.com/fundbridge/intake-go/internal/storage"
)

type Services struct {
	User      *UserService
	Intake    *IntakeService
	Lifecycle *LifecycleService
	Review    *ReviewService
}

func New(repos *repository.Repos, store storage.ObjectStore) *Services {
	return &Services{
		User:      NewUserService(repos),
		Intake:    NewIntakeService(repos, store),
		Lifecycle: NewLifecycleService(repos),
		Review:    NewReviewService(repos),
	}
}
