package security

// Resume gate limits
const (
	// MaxResumeBytes is the hard cap on an attached resume (5 MiB).
	MaxResumeBytes int64 = 5242880
)

// Gate messages. The type message wins when both rules are violated.
const (
	MsgUnsupportedFormat = "Please upload a PDF or Word document (.pdf, .doc, .docx)."
	MsgFileTooLarge      = "File size must be under 5 MB."
)

// Allowed resume media types (strict allow-list)
var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ResumeValidationResult contains the result of resume validation
type ResumeValidationResult struct {
	Valid bool   // Whether the file passed both checks
	Error string // Rejection message if validation failed
}

// ValidateResume checks a candidate file descriptor against the resume
// rules: declared media type must be on the allow-list, declared size must
// not exceed MaxResumeBytes. The type check runs first; ordering is part
// of the contract. Content is never inspected.
func ValidateResume(mediaType string, byteSize int64) ResumeValidationResult {
	if !allowedResumeTypes[mediaType] {
		return ResumeValidationResult{Error: MsgUnsupportedFormat}
	}

	if byteSize > MaxResumeBytes {
		return ResumeValidationResult{Error: MsgFileTooLarge}
	}

	return ResumeValidationResult{Valid: true}
}

// AllowedResumeTypes returns the accepted media types for error messages
// and client hints.
func AllowedResumeTypes() []string {
	types := make([]string, 0, len(allowedResumeTypes))
	for t := range allowedResumeTypes {
		types = append(types, t)
	}
	return types
}
