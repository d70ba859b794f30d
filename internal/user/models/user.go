package models

import (
	"time"

	emailutil "mcms/pkg/email"
)

// Role is the access level persisted on a user.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleAdmin       Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleParticipant || r == RoleAdmin
}

// User is keyed by email. Role is never taken from client input.
type User struct {
	ID        string    `json:"_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Image     string    `json:"image,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Profile is the self-editable subset of a user.
type Profile struct {
	Name  string
	Phone string
	Image string
}

// NormalizeEmail lowercases and trims an email so lookups are stable.
func NormalizeEmail(addr string) string {
	return emailutil.Normalize(addr)
}

// CreateResult mirrors the idempotent create response: InsertedID is nil when
// the user already existed.
type CreateResult struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}
