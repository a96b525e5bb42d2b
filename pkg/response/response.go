package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	UID       uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CanReview bool   `json:"can_review"`
}

// ValidationResponse itemizes everything still blocking submission.
type ValidationResponse struct {
	Error            string   `json:"error"`
	MissingFields    []string `json:"missing_fields"`
	MissingDocuments []string `json:"missing_documents"`
}

// ConflictResponse is returned when a status update lost an optimistic-lock race.
type ConflictResponse struct {
	Error          string `json:"error"`
	CurrentStatus  string `json:"current_status"`
	CurrentVersion int    `json:"current_version"`
}
