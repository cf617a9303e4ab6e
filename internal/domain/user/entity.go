package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user entity in the domain. The reset-token pair is
// stored on the user itself: both fields are always set and cleared
// together, and only the hash of the emailed token is ever persisted.
type User struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	PasswordHashed      string
	ResetTokenHash      *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasPendingReset reports whether a reset token is outstanding at the given
// instant. Expired tokens are rejected lazily at verification time.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetTokenHash != nil && u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}
