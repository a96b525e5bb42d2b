package repository

import (
	"time"

	"github.com/fundbridge/intake-go/internal/domain/funding"
	"gorm.io/gorm"
)

type StatusChangeQueryParams struct {
	ApplicationID *string
	ActorID       *uint
	StartTime     *time.Time
	EndTime       *time.Time
	Limit         int
	Offset        int
}

type StatusChangeRepo interface {
	Create(change *funding.StatusChange) error
	Query(params StatusChangeQueryParams) ([]funding.StatusChange, error)
	WithTx(tx *gorm.DB) StatusChangeRepo
}

type DBStatusChangeRepo struct {
	db *gorm.DB
}

func NewStatusChangeRepo(db *gorm.DB) *DBStatusChangeRepo {
	return &DBStatusChangeRepo{db: db}
}

func (r *DBStatusChangeRepo) Create(change *funding.StatusChange) error {
	return r.db.Create(change).Error
}

func (r *DBStatusChangeRepo) Query(params StatusChangeQueryParams) ([]funding.StatusChange, error) {
	query := r.db.Model(&funding.StatusChange{})

	if params.ApplicationID != nil {
		query = query.Where("application_id = ?", *params.ApplicationID)
	}
	if params.ActorID != nil {
		query = query.Where("actor_id = ?", *params.ActorID)
	}
	if params.StartTime != nil {
		query = query.Where("created_at >= ?", *params.StartTime)
	}
	if params.EndTime != nil {
		query = query.Where("created_at <= ?", *params.EndTime)
	}

	query = query.Order("created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var changes []funding.StatusChange
	err := query.Find(&changes).Error
	return changes, err
}

func (r *DBStatusChangeRepo) WithTx(tx *gorm.DB) StatusChangeRepo {
	return &DBStatusChangeRepo{db: tx}
}
