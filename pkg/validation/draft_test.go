package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
	"github.com/Ravularamesh74/Job-Portal/pkg/validation"
)

func validDraft() domain.ApplicationDraft {
	return domain.ApplicationDraft{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@x.com",
		CoverLetter: strings.Repeat("a", 60),
	}
}

func TestValidateDraftAcceptsValidDraft(t *testing.T) {
	d := validDraft()
	errs := validation.ValidateDraft(&d)
	assert.Empty(t, errs)
}

func TestValidateDraftRequiredFields(t *testing.T) {
	d := validDraft()
	d.FirstName = "   "
	d.LastName = ""
	d.Email = ""

	errs := validation.ValidateDraft(&d)

	assert.Equal(t, "First name is required.", errs["firstName"])
	assert.Equal(t, "Last name is required.", errs["lastName"])
	assert.Equal(t, "Email is required.", errs["email"])
}

func TestValidateDraftNameLengthBoundaries(t *testing.T) {
	t.Run("60 characters accepted", func(t *testing.T) {
		d := validDraft()
		d.FirstName = strings.Repeat("a", 60)
		assert.NotContains(t, validation.ValidateDraft(&d), "firstName")
	})

	t.Run("61 characters rejected", func(t *testing.T) {
		d := validDraft()
		d.FirstName = strings.Repeat("a", 61)
		assert.Equal(t, "Max 60 characters.", validation.ValidateDraft(&d)["firstName"])
	})

	t.Run("surrounding whitespace is trimmed before counting", func(t *testing.T) {
		d := validDraft()
		d.FirstName = "  " + strings.Repeat("a", 60) + "  "
		assert.NotContains(t, validation.ValidateDraft(&d), "firstName")
	})
}

func TestValidateDraftEmailShape(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"jane@x.com", true},
		{"jane.doe+tag@sub.example.co", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"two@@x.com", false},
		{"spaces in@x.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			d := validDraft()
			d.Email = tc.email
			errs := validation.ValidateDraft(&d)
			if tc.valid {
				assert.NotContains(t, errs, "email")
			} else {
				assert.Equal(t, "Enter a valid email address.", errs["email"])
			}
		})
	}
}

func TestValidateDraftPhone(t *testing.T) {
	t.Run("absent phone is fine", func(t *testing.T) {
		d := validDraft()
		assert.NotContains(t, validation.ValidateDraft(&d), "phone")
	})

	t.Run("formatted numbers pass", func(t *testing.T) {
		d := validDraft()
		d.Phone = "+1 (555) 000-0000"
		assert.NotContains(t, validation.ValidateDraft(&d), "phone")
	})

	t.Run("too short", func(t *testing.T) {
		d := validDraft()
		d.Phone = "123456"
		assert.Equal(t, "Enter a valid phone number.", validation.ValidateDraft(&d)["phone"])
	})

	t.Run("letters rejected", func(t *testing.T) {
		d := validDraft()
		d.Phone = "555-CALL-NOW"
		assert.Equal(t, "Enter a valid phone number.", validation.ValidateDraft(&d)["phone"])
	})
}

func TestValidateDraftCoverLetterBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		length  int
		message string
	}{
		{"49 rejected", 49, "Cover letter must be at least 50 characters."},
		{"50 accepted", 50, ""},
		{"3000 accepted", 3000, ""},
		{"3001 rejected", 3001, "Cover letter must be under 3,000 characters."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			d.CoverLetter = strings.Repeat("x", tc.length)
			errs := validation.ValidateDraft(&d)
			if tc.message == "" {
				assert.NotContains(t, errs, "coverLetter")
			} else {
				assert.Equal(t, tc.message, errs["coverLetter"])
			}
		})
	}
}

func TestValidateDraftExperienceBucket(t *testing.T) {
	t.Run("every enumerated bucket passes", func(t *testing.T) {
		for _, b := range domain.ExperienceBuckets {
			d := validDraft()
			d.ExperienceBucket = b
			assert.NotContains(t, validation.ValidateDraft(&d), "experienceYears")
		}
	})

	t.Run("unknown bucket rejected", func(t *testing.T) {
		d := validDraft()
		d.ExperienceBucket = "a lifetime"
		assert.Equal(t, "Select a valid experience range.", validation.ValidateDraft(&d)["experienceYears"])
	})
}

func TestValidateDraftIsDeterministic(t *testing.T) {
	d := validDraft()
	d.Email = "not-an-email"
	d.CoverLetter = "short"

	first := validation.ValidateDraft(&d)
	second := validation.ValidateDraft(&d)
	assert.Equal(t, first, second)
}
