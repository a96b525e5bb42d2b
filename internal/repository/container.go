package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	User         UserRepo
	Application  ApplicationRepo
	StatusChange StatusChangeRepo

	db *gorm.DB
}

func New(db *gorm.DB) *Repos {
	return &Repos{
		User:         NewUserRepo(db),
		Application:  NewApplicationRepo(db),
		StatusChange: NewStatusChangeRepo(db),
		db:           db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:         r.User.WithTx(tx),
		Application:  r.Application.WithTx(tx),
		StatusChange: r.StatusChange.WithTx(tx),
		db:           tx,
	}
}

// NewWithRepos builds a container around explicit implementations, used by
// tests substituting in-memory repositories. Without an attached database
// ExecTx runs the callback directly.
func NewWithRepos(user UserRepo, app ApplicationRepo, statusChange StatusChangeRepo) *Repos {
	return &Repos{
		User:         user,
		Application:  app,
		StatusChange: statusChange,
	}
}

func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
