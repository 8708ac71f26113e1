package validation

import "fmt"

// fieldKeys maps struct field names to the field names the UI binds
// errors to.
var fieldKeys = map[string]string{
	"FirstName":        "firstName",
	"LastName":         "lastName",
	"Email":            "email",
	"Phone":            "phone",
	"ExperienceBucket": "experienceYears",
	"CoverLetter":      "coverLetter",
}

// draftMessages holds the exact per-field, per-rule messages shown inline.
var draftMessages = map[string]map[string]string{
	"FirstName": {
		"required": "First name is required.",
		"max":      "Max 60 characters.",
	},
	"LastName": {
		"required": "Last name is required.",
		"max":      "Max 60 characters.",
	},
	"Email": {
		"required":    "Email is required.",
		"email_shape": "Enter a valid email address.",
	},
	"Phone": {
		"phone_shape": "Enter a valid phone number.",
	},
	"ExperienceBucket": {
		"experience_bucket": "Select a valid experience range.",
	},
	"CoverLetter": {
		"min": "Cover letter must be at least 50 characters.",
		"max": "Cover letter must be under 3,000 characters.",
	},
}

func fieldKey(structField string) string {
	if key, ok := fieldKeys[structField]; ok {
		return key
	}
	return structField
}

func messageFor(structField, tag string) string {
	if byTag, ok := draftMessages[structField]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	// Fallback for unknown tags
	return fmt.Sprintf("%s: validation failed (%s)", fieldKey(structField), tag)
}
