package intake

import (
	"path/filepath"
	"strings"
	"time"
)

type DocumentCategory string

const (
	DocRegistrationCertificate DocumentCategory = "registration_certificate"
	DocFinancialStatements     DocumentCategory = "financial_statements"
	DocBusinessPlan            DocumentCategory = "business_plan"
	DocCollateral              DocumentCategory = "collateral"
	DocPhotos                  DocumentCategory = "photos"
	DocInvoices                DocumentCategory = "invoices"
	DocOther                   DocumentCategory = "other"
)

type CategorySpec struct {
	Category   DocumentCategory `json:"category"`
	Required   bool             `json:"required"`
	Repeatable bool             `json:"repeatable"`
	Extensions []string         `json:"extensions"`
}

var documentExts = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx"}
var imageExts = []string{".pdf", ".png", ".jpg", ".jpeg"}

// Categories declares every document slot. Singular required categories gate
// submission; repeatable ones are satisfied by one or more uploads.
var Categories = []CategorySpec{
	{Category: DocRegistrationCertificate, Required: true, Extensions: documentExts},
	{Category: DocFinancialStatements, Required: true, Extensions: documentExts},
	{Category: DocBusinessPlan, Required: true, Extensions: documentExts},
	{Category: DocCollateral, Required: true, Extensions: documentExts},
	{Category: DocPhotos, Repeatable: true, Extensions: imageExts},
	{Category: DocInvoices, Repeatable: true, Extensions: documentExts},
	{Category: DocOther, Repeatable: true, Extensions: append(documentExts, imageExts...)},
}

var categoryIndex map[DocumentCategory]CategorySpec

func init() {
	categoryIndex = make(map[DocumentCategory]CategorySpec, len(Categories))
	for _, spec := range Categories {
		categoryIndex[spec.Category] = spec
	}
}

func LookupCategory(name string) (CategorySpec, bool) {
	spec, ok := categoryIndex[DocumentCategory(name)]
	return spec, ok
}

// RequiredCategories lists categories that must be satisfied before submit.
func RequiredCategories() []DocumentCategory {
	var out []DocumentCategory
	for _, spec := range Categories {
		if spec.Required {
			out = append(out, spec.Category)
		}
	}
	return out
}

// ExtensionAccepted checks a filename against the category's accepted classes.
func ExtensionAccepted(spec CategorySpec, filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, accepted := range spec.Extensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// DocumentRef points at a stored file. ObjectKey is the stable reference
// returned by the object store; the raw bytes never live in the draft.
type DocumentRef struct {
	Category    DocumentCategory `json:"category"`
	FileName    string           `json:"file_name"`
	ObjectKey   string           `json:"object_key"`
	ContentType string           `json:"content_type"`
	Size        int64            `json:"size"`
	UploadedAt  time.Time        `json:"uploaded_at"`
}

// Bundle holds one slot per singular category and a list per repeatable one.
type Bundle struct {
	Refs map[DocumentCategory][]DocumentRef `json:"refs"`
}

func NewBundle() Bundle {
	return Bundle{Refs: make(map[DocumentCategory][]DocumentRef)}
}

// Attach stores a reference. Singular categories are last-write-wins,
// repeatable categories append. Unknown categories are rejected upstream;
// Attach assumes a validated category.
func (b *Bundle) Attach(ref DocumentRef) {
	spec, ok := categoryIndex[ref.Category]
	if !ok {
		return
	}
	if spec.Repeatable {
		b.Refs[ref.Category] = append(b.Refs[ref.Category], ref)
		return
	}
	b.Refs[ref.Category] = []DocumentRef{ref}
}

// Detach removes the reference at index within a category. Out-of-range
// indices are a no-op.
func (b *Bundle) Detach(category DocumentCategory, index int) {
	refs := b.Refs[category]
	if index < 0 || index >= len(refs) {
		return
	}
	b.Refs[category] = append(refs[:index], refs[index+1:]...)
	if len(b.Refs[category]) == 0 {
		delete(b.Refs, category)
	}
}

// RequirementSatisfied reports whether a category has what submission needs:
// a non-empty slot for singular categories, at least one item for repeatable.
func RequirementSatisfied(b Bundle, category DocumentCategory) bool {
	return len(b.Refs[category]) >= 1
}
