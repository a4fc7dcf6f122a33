// Package users holds the account model and its Postgres repository. The
// canonical phone number is the account identifier: it is unique and every
// write path normalizes before touching it.
package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSpecialist Role = "specialist"
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
)

// ValidRole reports whether s is one of the known role tags.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleSpecialist, RoleAdmin, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Avatar       *string   `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins first and last name for report rows.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
