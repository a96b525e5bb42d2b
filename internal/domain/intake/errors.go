package intake

import (
	"fmt"
	"strings"
)

// ValidationError itemizes everything blocking submission. It is never a bare
// boolean: callers render the exact field and category lists.
type ValidationError struct {
	MissingFields    []string `json:"missing_fields"`
	MissingDocuments []string `json:"missing_documents"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MissingFields) > 0 {
		parts = append(parts, fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", ")))
	}
	if len(e.MissingDocuments) > 0 {
		parts = append(parts, fmt.Sprintf("missing required documents: %s", strings.Join(e.MissingDocuments, ", ")))
	}
	if len(parts) == 0 {
		return "draft is incomplete"
	}
	return strings.Join(parts, "; ")
}

// DocumentError reports a rejected upload (unknown category or file class).
type DocumentError struct {
	Category string
	Reason   string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document upload rejected for %q: %s", e.Category, e.Reason)
}
