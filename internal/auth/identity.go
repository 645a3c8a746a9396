package auth

import "github.com/google/uuid"

// Identity is the resolved caller attached to the request context after
// authentication succeeds. It is an explicit typed value, request-scoped,
// never shared across requests.
type Identity struct {
	ID       uuid.UUID
	Username string
	Role     string
}
