package domain

import "fmt"

// SinkError is a collaborator-reported failure: a non-2xx response from a
// remote sink, carrying the upstream status and message.
type SinkError struct {
	StatusCode int
	Message    string
}

func (e *SinkError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sink returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("sink returned %d", e.StatusCode)
}

// AuthRequired reports whether the failure means the operation needs a
// valid credential, so the UI can redirect to authentication instead of
// showing a generic network error.
func (e *SinkError) AuthRequired() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
