package auth

import "errors"

// Error messages surface verbatim in GraphQL responses.
var (
	// ErrAuthenticationRequired signals that no caller could be resolved.
	ErrAuthenticationRequired = errors.New("Authentication required")
	// ErrAdminRequired signals that the caller lacks the global admin role.
	ErrAdminRequired = errors.New("Admin access required")
	// ErrUnauthorized signals an ownership check failure.
	ErrUnauthorized = errors.New("Unauthorized")
)

// Actor identifies the caller for authorization decisions inside services.
type Actor struct {
	UserID string
	Admin  bool
}

// CanMutate reports whether the actor may modify a row owned by ownerID.
// The policy is uniform across owned entities: the owner or a global admin.
func (a Actor) CanMutate(ownerID string) bool {
	if a.Admin {
		return true
	}
	return a.UserID != "" && a.UserID == ownerID
}
