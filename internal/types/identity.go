package types

import (
	"github.com/google/uuid"
)

// Identity is the authenticated caller as asserted by the auth provider.
// Email and FullName come from the access token's claims; the profile row
// remains the source of truth for everything user-editable.
type Identity struct {
	ID       uuid.UUID
	Email    string
	FullName string
}
