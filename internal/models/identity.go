package models

import "github.com/google/uuid"

// Capability is the caller's access level, resolved exactly once during
// authentication and carried immutably on the Identity for the rest of
// the request.
type Capability int

const (
	CapabilityStandard Capability = iota
	CapabilityAdmin
)

// CapabilityFromRole maps the provider/profile role string to a Capability.
// Anything that is not an explicit admin role is a standard user.
func CapabilityFromRole(role string) Capability {
	if role == RoleAdmin {
		return CapabilityAdmin
	}
	return CapabilityStandard
}

// Role values mirrored from the identity provider's user metadata.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is the normalized result of a successful token verification.
type Identity struct {
	UserID     uuid.UUID
	Email      string
	Capability Capability
}

// IsAdmin reports whether the identity carries the admin capability.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Capability == CapabilityAdmin
}

// ResourceKind is the closed enumeration of ownable resource types.
// Ownership checks deny any kind outside this set.
type ResourceKind string

const (
	ResourceWorld     ResourceKind = "world"
	ResourceChapter   ResourceKind = "chapter"
	ResourceCharacter ResourceKind = "character"
	ResourceEvent     ResourceKind = "event"
	ResourceScene     ResourceKind = "scene"
	ResourceDialogue  ResourceKind = "dialogue"
)
