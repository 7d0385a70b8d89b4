package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the local mirror of an identity-provider user. The provider
// owns the identity; this row only exists so admin listings and joins do
// not need a provider round trip.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
