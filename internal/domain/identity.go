package domain

// Identity is the authenticated principal attached to a session: a stable
// user identifier plus the bearer credential forwarded to remote sinks.
// Absence of an Identity means the session is anonymous.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Token  string `json:"-"`
}
