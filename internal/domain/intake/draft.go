package intake

import (
	"strings"
	"time"
)

// Draft is the mutable pre-submission working copy. It has no identity of its
// own; the owning session keys it. All form values are kept as entered and
// normalized at read time, matching how the schema checks presence.
type Draft struct {
	Values    map[string]string   `json:"values"`
	Needs     map[string][]string `json:"needs"`
	Documents Bundle              `json:"documents"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewDraft() *Draft {
	return &Draft{
		Values:    make(map[string]string),
		Needs:     make(map[string][]string),
		Documents: NewBundle(),
		UpdatedAt: time.Now(),
	}
}

// SetField commits value if the field exists and the value conforms to the
// field's type. Non-conforming input leaves the prior value in place and
// reports false; this mirrors a form input that refuses the keystroke rather
// than erroring.
func (d *Draft) SetField(field, value string) bool {
	spec, ok := LookupField(field)
	if !ok {
		return false
	}
	if !ValueConforms(spec, value) {
		return false
	}
	d.Values[field] = value
	d.UpdatedAt = time.Now()
	return true
}

// SetNeeds replaces the selected options for one non-financial need category.
func (d *Draft) SetNeeds(category string, options []string) bool {
	if !ValidNeedCategory(category) {
		return false
	}
	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		delete(d.Needs, category)
	} else {
		d.Needs[category] = cleaned
	}
	d.UpdatedAt = time.Now()
	return true
}

// AttachDocument validates the category and file class, then stores the ref.
func (d *Draft) AttachDocument(ref DocumentRef) error {
	spec, ok := LookupCategory(string(ref.Category))
	if !ok {
		return &DocumentError{Category: string(ref.Category), Reason: "unknown document category"}
	}
	if !ExtensionAccepted(spec, ref.FileName) {
		return &DocumentError{Category: string(ref.Category), Reason: "file type not accepted for this category"}
	}
	d.Documents.Attach(ref)
	d.UpdatedAt = time.Now()
	return nil
}

// Progress is the percentage of the cross-section required-field set that is
// present. It is computed over the whole schema so the value is stable no
// matter which section is open. Always within [0,100].
func Progress(d *Draft) float64 {
	total := len(RequiredFields)
	if total == 0 {
		return 100
	}
	completed := 0
	for _, field := range RequiredFields {
		if RequiredFieldPresent(d, field) {
			completed++
		}
	}
	return float64(completed) / float64(total) * 100
}

// CanAdvance never blocks navigation; progress is informational and only the
// final submit is gated.
func CanAdvance(sectionIndex int) bool {
	return sectionIndex >= 0 && sectionIndex < len(Sections)
}

// Validate returns the itemized set of missing required fields and document
// categories, or nil when the draft is submittable.
func Validate(d *Draft) *ValidationError {
	var missingFields []string
	for _, field := range RequiredFields {
		if !RequiredFieldPresent(d, field) {
			missingFields = append(missingFields, field)
		}
	}

	var missingDocs []string
	for _, category := range RequiredCategories() {
		if !RequirementSatisfied(d.Documents, category) {
			missingDocs = append(missingDocs, string(category))
		}
	}

	if len(missingFields) == 0 && len(missingDocs) == 0 {
		return nil
	}
	return &ValidationError{MissingFields: missingFields, MissingDocuments: missingDocs}
}

// CanSubmit is true iff every required field and document category is present.
func CanSubmit(d *Draft) bool {
	return Validate(d) == nil
}
