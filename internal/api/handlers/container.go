package handlers

import (
	"github.com/fundbridge/intake-go/internal/application"
)

type Handlers struct {
	User        *UserHandler
	Intake      *IntakeHandler
	Application *ApplicationHandler
}

func New(services *application.Services) *Handlers {
	return &Handlers{
		User:        NewUserHandler(services.User),
		Intake:      NewIntakeHandler(services.Intake),
		Application: NewApplicationHandler(services.Lifecycle, services.Review),
	}
}
