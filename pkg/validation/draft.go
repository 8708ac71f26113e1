package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
)

// MsgResumeRequired is the dedicated error surfaced by the submission flow
// when no attachment is present. It is keyed under "resume" alongside the
// field errors produced here.
const MsgResumeRequired = "Please attach your resume."

// draftRules mirrors the draft with pre-trimmed values so length rules
// apply to the trimmed text. Struct field names feed the message table in
// draft_errors.go.
type draftRules struct {
	FirstName        string `validate:"required,max=60"`
	LastName         string `validate:"required,max=60"`
	Email            string `validate:"required,email_shape"`
	Phone            string `validate:"omitempty,phone_shape"`
	ExperienceBucket string `validate:"omitempty,experience_bucket"`
	CoverLetter      string `validate:"min=50,max=3000"`
}

var draftValidate = func() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}()

// ValidateDraft checks every field of the draft against its rule and
// returns a mapping from field name to error message for each violation.
// An empty mapping means the draft is submittable, pending the attachment
// check. Pure function of the draft; no I/O.
func ValidateDraft(d *domain.ApplicationDraft) map[string]string {
	rules := draftRules{
		FirstName:        strings.TrimSpace(d.FirstName),
		LastName:         strings.TrimSpace(d.LastName),
		Email:            strings.TrimSpace(d.Email),
		Phone:            strings.TrimSpace(d.Phone),
		ExperienceBucket: d.ExperienceBucket,
		CoverLetter:      strings.TrimSpace(d.CoverLetter),
	}

	errs := map[string]string{}
	err := draftValidate.Struct(rules)
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["draft"] = err.Error()
		return errs
	}

	for _, e := range validationErrors {
		key := fieldKey(e.StructField())
		if _, seen := errs[key]; seen {
			continue // first violation per field wins
		}
		errs[key] = messageFor(e.StructField(), e.Tag())
	}

	return errs
}
