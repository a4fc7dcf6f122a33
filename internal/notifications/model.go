// Package notifications models in-app messages shown to users.
package notifications

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBooking   Type = "booking"
	TypeReminder  Type = "reminder"
	TypeCancelled Type = "cancelled"
)

// ValidType reports whether s is one of the known notification types.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeBooking, TypeReminder, TypeCancelled:
		return true
	}
	return false
}

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
