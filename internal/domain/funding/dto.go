package funding

import "time"

// ReviewFilter is the ephemeral query object used by the review listing.
// Empty or "all" values leave the corresponding dimension unfiltered.
type ReviewFilter struct {
	Term       string     `form:"term"`
	Status     string     `form:"status"`
	Country    string     `form:"country"`
	ValueChain string     `form:"value_chain"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit"`
	Offset     int        `form:"offset"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" binding:"required"`
	// Version is the optimistic-lock token the caller read; the update fails
	// with a conflict when it is stale.
	Version int `json:"version" binding:"required"`
}

type AssessmentDTO struct {
	EligibilityScore float64 `json:"eligibility_score" binding:"required"`
	RiskLevel        string  `json:"risk_level" binding:"required,oneof=low medium high"`
}

// StatusSummary feeds the external dashboard layer.
type StatusSummary struct {
	Total     int64            `json:"total"`
	ByStatus  map[string]int64 `json:"by_status"`
	ByCountry map[string]int64 `json:"by_country"`
}
