package intake

import (
	"math"
	"strconv"
	"strings"
)

// FieldType drives type-aware presence checks and SetField validation.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldEmail  FieldType = "email"
	FieldNumber FieldType = "number"
)

type FieldSpec struct {
	Name     string    `json:"name"`
	Required bool      `json:"required"`
	Type     FieldType `json:"type"`
}

type Section struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Fields []FieldSpec `json:"fields"`
}

// Sections declares every intake field in form order. The required set lives
// here and nowhere else; progress and submission gating both read it.
var Sections = []Section{
	{
		ID:    "bio",
		Label: "Bio Data",
		Fields: []FieldSpec{
			{Name: "applicantName", Required: true, Type: FieldText},
			{Name: "applicantEmail", Required: true, Type: FieldEmail},
			{Name: "applicantPhone", Required: true, Type: FieldText},
			{Name: "gender", Required: true, Type: FieldText},
			{Name: "age", Required: true, Type: FieldNumber},
			{Name: "nationality", Required: false, Type: FieldText},
			{Name: "idNumber", Required: false, Type: FieldText},
			{Name: "education", Required: false, Type: FieldText},
			{Name: "experience", Required: false, Type: FieldNumber},
		},
	},
	{
		ID:    "business",
		Label: "Business Info",
		Fields: []FieldSpec{
			{Name: "businessName", Required: true, Type: FieldText},
			{Name: "businessType", Required: true, Type: FieldText},
			{Name: "registrationNumber", Required: false, Type: FieldText},
			{Name: "yearsInOperation", Required: false, Type: FieldNumber},
			{Name: "employees", Required: false, Type: FieldNumber},
			{Name: "maleEmployees", Required: false, Type: FieldNumber},
			{Name: "femaleEmployees", Required: false, Type: FieldNumber},
			{Name: "currentRevenue", Required: false, Type: FieldNumber},
			{Name: "revenueFrequency", Required: false, Type: FieldText},
		},
	},
	{
		ID:    "location",
		Label: "Location",
		Fields: []FieldSpec{
			{Name: "country", Required: true, Type: FieldText},
			{Name: "region", Required: false, Type: FieldText},
			{Name: "county", Required: false, Type: FieldText},
			{Name: "address", Required: false, Type: FieldText},
			{Name: "latitude", Required: false, Type: FieldNumber},
			{Name: "longitude", Required: false, Type: FieldNumber},
			{Name: "locationDescription", Required: false, Type: FieldText},
		},
	},
	{
		ID:    "socials",
		Label: "Socials & Website",
		Fields: []FieldSpec{
			{Name: "website", Required: false, Type: FieldText},
			{Name: "facebook", Required: false, Type: FieldText},
			{Name: "instagram", Required: false, Type: FieldText},
			{Name: "twitter", Required: false, Type: FieldText},
			{Name: "linkedin", Required: false, Type: FieldText},
			{Name: "youtube", Required: false, Type: FieldText},
			{Name: "tiktok", Required: false, Type: FieldText},
		},
	},
	{
		ID:    "proposal",
		Label: "Proposal",
		Fields: []FieldSpec{
			{Name: "valueChain", Required: true, Type: FieldText},
			{Name: "loanType", Required: true, Type: FieldText},
			{Name: "proposalTitle", Required: true, Type: FieldText},
			{Name: "fundsNeeded", Required: true, Type: FieldNumber},
			{Name: "objective", Required: true, Type: FieldText},
			{Name: "justification", Required: false, Type: FieldText},
			{Name: "loanPurpose", Required: false, Type: FieldText},
			{Name: "marketAnalysis", Required: false, Type: FieldText},
			{Name: "financialProjections", Required: false, Type: FieldText},
		},
	},
}

// NeedCategories are the selectable non-financial support categories. They
// never gate submission.
var NeedCategories = []string{
	"mentorship",
	"training",
	"networking",
	"marketing",
	"technical_assistance",
}

var (
	fieldIndex map[string]FieldSpec
	// RequiredFields lists required field names in declaration order.
	RequiredFields []string
	needIndex      map[string]bool
)

func init() {
	fieldIndex = make(map[string]FieldSpec)
	for _, section := range Sections {
		for _, f := range section.Fields {
			fieldIndex[f.Name] = f
			if f.Required {
				RequiredFields = append(RequiredFields, f.Name)
			}
		}
	}
	needIndex = make(map[string]bool, len(NeedCategories))
	for _, n := range NeedCategories {
		needIndex[n] = true
	}
}

// LookupField returns the spec for a field name.
func LookupField(name string) (FieldSpec, bool) {
	spec, ok := fieldIndex[name]
	return spec, ok
}

// ValidNeedCategory reports whether name is a declared non-financial need.
func ValidNeedCategory(name string) bool {
	return needIndex[name]
}

// ValueConforms reports whether raw is acceptable for the field's type.
// Empty input always conforms: clearing a field is a legal edit.
func ValueConforms(spec FieldSpec, raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	if spec.Type == FieldNumber {
		v, err := strconv.ParseFloat(trimmed, 64)
		return err == nil && !math.IsNaN(v)
	}
	return true
}

// RequiredFieldPresent reports whether the field holds a usable value:
// numbers must parse and not be NaN, text must be non-blank after trim.
// Unknown fields are simply not present; this never errors.
func RequiredFieldPresent(d *Draft, field string) bool {
	spec, ok := LookupField(field)
	if !ok {
		return false
	}
	raw := strings.TrimSpace(d.Values[field])
	if raw == "" {
		return false
	}
	if spec.Type == FieldNumber {
		v, err := strconv.ParseFloat(raw, 64)
		return err == nil && !math.IsNaN(v)
	}
	return true
}
