package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fundbridge/intake-go/internal/domain/funding"
	"github.com/fundbridge/intake-go/internal/domain/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillDraft(t *testing.T, svc *IntakeService, applicantID uint) {
	t.Helper()
	values := map[string]string{
		"applicantName":  "Amina Okoro",
		"applicantEmail": "amina@example.com",
		"applicantPhone": "+254700000001",
		"gender":         "female",
		"age":            "31",
		"businessName":   "Okoro Crafts",
		"businessType":   "sole proprietorship",
		"country":        "kenya",
		"valueChain":     "handicrafts",
		"loanType":       "working capital",
		"proposalTitle":  "Workshop expansion",
		"fundsNeeded":    "15000",
		"objective":      "Expand production capacity",
	}
	for name, v := range values {
		_, err := svc.SetField(applicantID, name, v)
		require.NoError(t, err)
	}
	for _, cat := range intake.RequiredCategories() {
		_, err := svc.UploadDocument(context.Background(), applicantID, string(cat),
			string(cat)+".pdf", "application/pdf", 128, strings.NewReader("content"))
		require.NoError(t, err)
	}
}

func TestIntakeDraftSession(t *testing.T) {
	f := newFixture()
	svc := NewIntakeService(f.repos, f.store)

	t.Run("first access creates an empty draft", func(t *testing.T) {
		d := svc.Draft(10)
		assert.Zero(t, intake.Progress(d))
	})

	t.Run("draft persists across calls within the session", func(t *testing.T) {
		_, err := svc.SetField(10, "applicantName", "Amina Okoro")
		require.NoError(t, err)
		assert.Equal(t, "Amina Okoro", svc.Draft(10).Values["applicantName"])
	})

	t.Run("sessions are isolated by applicant", func(t *testing.T) {
		assert.Empty(t, svc.Draft(11).Values["applicantName"])
	})
}

func TestIntakeSetField(t *testing.T) {
	f := newFixture()
	svc := NewIntakeService(f.repos, f.store)

	t.Run("unknown field", func(t *testing.T) {
		_, err := svc.SetField(1, "favouriteColour", "blue")
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("rejected value keeps the prior one", func(t *testing.T) {
		_, err := svc.SetField(1, "fundsNeeded", "15000")
		require.NoError(t, err)
		d, err := svc.SetField(1, "fundsNeeded", "a lot")
		assert.ErrorIs(t, err, ErrValueRejected)
		assert.Equal(t, "15000", d.Values["fundsNeeded"])
	})
}

func TestIntakeSetNeeds(t *testing.T) {
	f := newFixture()
	svc := NewIntakeService(f.repos, f.store)

	d, err := svc.SetNeeds(1, "training", []string{"bookkeeping"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bookkeeping"}, d.Needs["training"])

	_, err = svc.SetNeeds(1, "nonsense", []string{"x"})
	assert.ErrorIs(t, err, ErrUnknownNeedCategory)
}

func TestIntakeUploadDocument(t *testing.T) {
	f := newFixture()
	svc := NewIntakeService(f.repos, f.store)
	ctx := context.Background()

	t.Run("stores the blob and attaches the ref", func(t *testing.T) {
		d, err := svc.UploadDocument(ctx, 1, "business_plan", "plan.pdf", "application/pdf", 256, strings.NewReader("pdf"))
		require.NoError(t, err)

		refs := d.Documents.Refs[intake.DocBusinessPlan]
		require.Len(t, refs, 1)
		assert.Equal(t, "plan.pdf", refs[0].FileName)
		size, ok := f.store.puts[refs[0].ObjectKey]
		require.True(t, ok, "blob should be stored under the ref's key")
		assert.Equal(t, int64(256), size)
	})

	t.Run("validation happens before any byte is stored", func(t *testing.T) {
		before := len(f.store.puts)
		_, err := svc.UploadDocument(ctx, 1, "tax_returns", "returns.pdf", "application/pdf", 10, strings.NewReader("x"))
		var docErr *intake.DocumentError
		require.ErrorAs(t, err, &docErr)

		_, err = svc.UploadDocument(ctx, 1, "photos", "photo.exe", "application/octet-stream", 10, strings.NewReader("x"))
		require.ErrorAs(t, err, &docErr)
		assert.Equal(t, before, len(f.store.puts))
	})

	t.Run("store failure surfaces and nothing is attached", func(t *testing.T) {
		f.store.putErr = errors.New("bucket unavailable")
		defer func() { f.store.putErr = nil }()
		_, err := svc.UploadDocument(ctx, 1, "collateral", "deed.pdf", "application/pdf", 10, strings.NewReader("x"))
		require.Error(t, err)
		assert.Empty(t, svc.Draft(1).Documents.Refs[intake.DocCollateral])
	})

	t.Run("remove detaches by index", func(t *testing.T) {
		d, err := svc.RemoveDocument(1, "business_plan", 0)
		require.NoError(t, err)
		assert.Empty(t, d.Documents.Refs[intake.DocBusinessPlan])
	})
}

func TestIntakeSubmit(t *testing.T) {
	t.Run("incomplete draft fails fast without persistence", func(t *testing.T) {
		f := newFixture()
		svc := NewIntakeService(f.repos, f.store)
		_, err := svc.SetField(1, "applicantName", "Amina Okoro")
		require.NoError(t, err)

		_, err = svc.Submit(1)
		var verr *intake.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.MissingFields)
		assert.NotEmpty(t, verr.MissingDocuments)
		assert.Zero(t, f.apps.creates, "no Create call for an invalid draft")
	})

	t.Run("complete draft becomes a pending application", func(t *testing.T) {
		f := newFixture()
		svc := NewIntakeService(f.repos, f.store)
		fillDraft(t, svc, 1)

		app, err := svc.Submit(1)
		require.NoError(t, err)
		assert.Equal(t, funding.StatusPending, app.Status)
		assert.Equal(t, uint(1), app.ApplicantID)
		assert.Equal(t, 1, f.apps.creates)

		stored, err := f.apps.GetByID(app.ID)
		require.NoError(t, err)
		assert.Equal(t, funding.StatusPending, stored.Status)
	})

	t.Run("submission discards the draft", func(t *testing.T) {
		f := newFixture()
		svc := NewIntakeService(f.repos, f.store)
		fillDraft(t, svc, 1)
		_, err := svc.Submit(1)
		require.NoError(t, err)

		assert.Zero(t, intake.Progress(svc.Draft(1)), "post-submit session starts fresh")
	})
}
