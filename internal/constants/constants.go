package constants

// Session cookie and session/context keys
const (
	SessionCookieName = "planner_session"

	ContextKeyUsername    = "username"
	ContextKeyRole        = "role"
	ContextKeyDisplayName = "display_name"

	// SessionKeyPendingUser holds the username of an account that
	// authenticated but still has to complete its first-login password
	// setup. While this key is set, no authenticated session exists.
	SessionKeyPendingUser = "pending_password_user"
)

// Password rules
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// FilterAll is the match-all sentinel accepted by every history filter
// dimension (week, collaborator, project, target).
const FilterAll = "all"
