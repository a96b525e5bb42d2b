package repository

import (
	"strings"

	"github.com/fundbridge/intake-go/internal/domain/funding"
	"gorm.io/gorm"
)

type ApplicationRepo interface {
	Create(app *funding.Application) error
	GetByID(id string) (funding.Application, error)
	ListByApplicant(applicantID uint) ([]funding.Application, error)
	List(filter funding.ReviewFilter) ([]funding.Application, error)
	// UpdateReviewCAS writes the review metadata iff the stored version still
	// equals expectedVersion, bumping the version on success. Returns
	// funding.ErrVersionConflict when the row moved underneath the caller.
	UpdateReviewCAS(app *funding.Application, expectedVersion int) error
	UpdateAssessment(app *funding.Application) error
	Summary() (funding.StatusSummary, error)
	WithTx(tx *gorm.DB) ApplicationRepo
}

type DBApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *DBApplicationRepo {
	return &DBApplicationRepo{db: db}
}

func (r *DBApplicationRepo) Create(app *funding.Application) error {
	return r.db.Create(app).Error
}

func (r *DBApplicationRepo) GetByID(id string) (funding.Application, error) {
	var app funding.Application
	err := r.db.First(&app, "id = ?", id).Error
	return app, err
}

func (r *DBApplicationRepo) ListByApplicant(applicantID uint) ([]funding.Application, error) {
	var apps []funding.Application
	err := r.db.Where("applicant_id = ?", applicantID).
		Order("submission_date DESC, id").
		Find(&apps).Error
	return apps, err
}

func (r *DBApplicationRepo) List(filter funding.ReviewFilter) ([]funding.Application, error) {
	query := r.db.Model(&funding.Application{})

	if term := strings.TrimSpace(filter.Term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(applicant_name) LIKE ? OR LOWER(business_name) LIKE ?", like, like)
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Country != "" && filter.Country != "all" {
		query = query.Where("country = ?", strings.ToLower(filter.Country))
	}
	if filter.ValueChain != "" && filter.ValueChain != "all" {
		query = query.Where("value_chain = ?", filter.ValueChain)
	}
	if filter.From != nil {
		query = query.Where("submission_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("submission_date <= ?", *filter.To)
	}

	// id is the tiebreaker so pagination stays stable across calls
	query = query.Order("submission_date DESC, id")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var apps []funding.Application
	err := query.Find(&apps).Error
	return apps, err
}

func (r *DBApplicationRepo) UpdateReviewCAS(app *funding.Application, expectedVersion int) error {
	result := r.db.Model(&funding.Application{}).
		Where("id = ? AND version = ?", app.ID, expectedVersion).
		Updates(map[string]any{
			"status":      app.Status,
			"review_date": app.ReviewDate,
			"reviewed_by": app.ReviewedBy,
			"version":     expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return funding.ErrVersionConflict
	}
	app.Version = expectedVersion + 1
	return nil
}

func (r *DBApplicationRepo) UpdateAssessment(app *funding.Application) error {
	return r.db.Model(&funding.Application{}).
		Where("id = ?", app.ID).
		Updates(map[string]any{
			"eligibility_score": app.EligibilityScore,
			"risk_level":        app.RiskLevel,
		}).Error
}

func (r *DBApplicationRepo) Summary() (funding.StatusSummary, error) {
	summary := funding.StatusSummary{
		ByStatus:  make(map[string]int64),
		ByCountry: make(map[string]int64),
	}

	if err := r.db.Model(&funding.Application{}).Count(&summary.Total).Error; err != nil {
		return summary, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	if err := r.db.Model(&funding.Application{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return summary, err
	}
	for _, b := range byStatus {
		summary.ByStatus[b.Key] = b.Count
	}

	var byCountry []bucket
	if err := r.db.Model(&funding.Application{}).
		Select("country AS key, COUNT(*) AS count").
		Group("country").
		Scan(&byCountry).Error; err != nil {
		return summary, err
	}
	for _, b := range byCountry {
		summary.ByCountry[b.Key] = b.Count
	}

	return summary, nil
}

func (r *DBApplicationRepo) WithTx(tx *gorm.DB) ApplicationRepo {
	return &DBApplicationRepo{db: tx}
}
