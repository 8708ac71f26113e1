package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/Ravularamesh74/Job-Portal/internal/domain"
)

// Regex patterns
var (
	// Standard local@domain.tld shape; intentionally loose beyond that
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// 7-20 characters drawn from digits, spaces, +, -, parentheses
	phoneRegex = regexp.MustCompile(`^[\d\s+\-()]{7,20}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("email_shape", EmailShape)
	_ = v.RegisterValidation("phone_shape", PhoneShape)
	_ = v.RegisterValidation("experience_bucket", ExperienceBucket)
}

// EmailShape validates the local@domain.tld shape
func EmailShape(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return emailRegex.MatchString(val)
}

// PhoneShape validates a phone number structure
func PhoneShape(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// ExperienceBucket validates the enumerated years-of-experience ranges
func ExperienceBucket(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	for _, b := range domain.ExperienceBuckets {
		if val == b {
			return true
		}
	}
	return false
}
