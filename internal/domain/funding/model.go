package funding

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/fundbridge/intake-go/internal/domain/intake"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application is the immutable record created when a draft is submitted.
// Applicant-authored columns never change afterwards; only the review
// metadata block (status, review date, reviewer, assessment) mutates, and
// every such write goes through the version-checked repository update.
type Application struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	ApplicantID    uint      `gorm:"index;not null" json:"applicant_id"`
	SubmissionDate time.Time `gorm:"index;not null" json:"submission_date"`

	// Bio data
	ApplicantName  string `gorm:"size:100;not null" json:"applicant_name"`
	ApplicantEmail string `gorm:"size:100;not null" json:"applicant_email"`
	ApplicantPhone string `gorm:"size:30" json:"applicant_phone"`
	Gender         string `gorm:"size:20" json:"gender"`
	Age            int    `json:"age"`
	Nationality    string `gorm:"size:50" json:"nationality"`
	IDNumber       string `gorm:"size:30" json:"id_number"`
	Education      string `gorm:"size:50" json:"education"`
	Experience     int    `json:"experience"`

	// Business profile
	BusinessName       string  `gorm:"size:100;index" json:"business_name"`
	BusinessType       string  `gorm:"size:50" json:"business_type"`
	RegistrationNumber string  `gorm:"size:50" json:"registration_number"`
	YearsInOperation   int     `json:"years_in_operation"`
	Employees          int     `json:"employees"`
	MaleEmployees      int     `json:"male_employees"`
	FemaleEmployees    int     `json:"female_employees"`
	CurrentRevenue     float64 `json:"current_revenue"`
	RevenueFrequency   string  `gorm:"size:20" json:"revenue_frequency"`

	// Location
	Country             string   `gorm:"size:50;index" json:"country"`
	Region              string   `gorm:"size:50" json:"region"`
	County              string   `gorm:"size:50" json:"county"`
	Address             string   `gorm:"size:200" json:"address"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	LocationDescription string   `gorm:"size:200" json:"location_description"`

	// Socials & web
	Website string         `gorm:"size:200" json:"website"`
	Socials datatypes.JSON `json:"socials"`

	// Proposal
	ValueChain           string         `gorm:"size:50;index" json:"value_chain"`
	LoanType             string         `gorm:"size:50" json:"loan_type"`
	ProposalTitle        string         `gorm:"size:200" json:"proposal_title"`
	RequestedAmount      float64        `json:"requested_amount"`
	Objective            string         `gorm:"type:text" json:"objective"`
	Justification        string         `gorm:"type:text" json:"justification"`
	LoanPurpose          string         `gorm:"type:text" json:"loan_purpose"`
	MarketAnalysis       string         `gorm:"type:text" json:"market_analysis"`
	FinancialProjections string         `gorm:"type:text" json:"financial_projections"`
	Needs                datatypes.JSON `json:"needs"`
	Documents            datatypes.JSON `json:"documents"`

	// Review metadata
	Status     Status     `gorm:"size:20;index;default:'pending';not null" json:"status"`
	ReviewDate *time.Time `json:"review_date"`
	ReviewedBy *uint      `json:"reviewed_by"`

	// Assessment is supplied post-submission by the external scoring service
	// and treated as opaque, optional metadata.
	EligibilityScore *float64 `json:"eligibility_score"`
	RiskLevel        string   `gorm:"size:10" json:"risk_level"`

	// Version is the optimistic-lock token; every review-metadata write is a
	// compare-and-set against it.
	Version int `gorm:"default:1;not null" json:"version"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

var socialFields = []string{"facebook", "instagram", "twitter", "linkedin", "youtube", "tiktok"}

// NewApplication freezes a validated draft into an Application snapshot with
// status pending. The caller has already run intake.Validate; this does not
// re-check completeness.
func NewApplication(applicantID uint, d *intake.Draft, now time.Time) *Application {
	app := &Application{
		ID:             uuid.NewString(),
		ApplicantID:    applicantID,
		SubmissionDate: now,
		Status:         StatusPending,
		Version:        1,

		ApplicantName:  text(d, "applicantName"),
		ApplicantEmail: text(d, "applicantEmail"),
		ApplicantPhone: text(d, "applicantPhone"),
		Gender:         text(d, "gender"),
		Age:            integer(d, "age"),
		Nationality:    text(d, "nationality"),
		IDNumber:       text(d, "idNumber"),
		Education:      text(d, "education"),
		Experience:     integer(d, "experience"),

		BusinessName:       text(d, "businessName"),
		BusinessType:       text(d, "businessType"),
		RegistrationNumber: text(d, "registrationNumber"),
		YearsInOperation:   integer(d, "yearsInOperation"),
		Employees:          integer(d, "employees"),
		MaleEmployees:      integer(d, "maleEmployees"),
		FemaleEmployees:    integer(d, "femaleEmployees"),
		CurrentRevenue:     number(d, "currentRevenue"),
		RevenueFrequency:   text(d, "revenueFrequency"),

		Country:             strings.ToLower(text(d, "country")),
		Region:              text(d, "region"),
		County:              text(d, "county"),
		Address:             text(d, "address"),
		Latitude:            optionalNumber(d, "latitude"),
		Longitude:           optionalNumber(d, "longitude"),
		LocationDescription: text(d, "locationDescription"),

		Website: text(d, "website"),

		ValueChain:           text(d, "valueChain"),
		LoanType:             text(d, "loanType"),
		ProposalTitle:        text(d, "proposalTitle"),
		RequestedAmount:      number(d, "fundsNeeded"),
		Objective:            text(d, "objective"),
		Justification:        text(d, "justification"),
		LoanPurpose:          text(d, "loanPurpose"),
		MarketAnalysis:       text(d, "marketAnalysis"),
		FinancialProjections: text(d, "financialProjections"),
	}

	socials := make(map[string]string)
	for _, field := range socialFields {
		if v := text(d, field); v != "" {
			socials[field] = v
		}
	}
	app.Socials = mustJSON(socials)
	app.Needs = mustJSON(d.Needs)
	app.Documents = mustJSON(d.Documents.Refs)

	return app
}

func text(d *intake.Draft, field string) string {
	return strings.TrimSpace(d.Values[field])
}

func number(d *intake.Draft, field string) float64 {
	v, err := strconv.ParseFloat(text(d, field), 64)
	if err != nil {
		return 0
	}
	return v
}

func optionalNumber(d *intake.Draft, field string) *float64 {
	raw := text(d, field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func integer(d *intake.Draft, field string) int {
	return int(number(d, field))
}

func mustJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}

// StatusChange is one row of the review audit trail, appended on every
// successful transition.
type StatusChange struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID string    `gorm:"size:36;index;not null" json:"application_id"`
	FromStatus    Status    `gorm:"size:20;not null" json:"from_status"`
	ToStatus      Status    `gorm:"size:20;not null" json:"to_status"`
	ActorID       uint      `gorm:"not null" json:"actor_id"`
	CreatedAt     time.Time `json:"created_at"`
}
