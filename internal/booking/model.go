// Package booking models appointments and the aggregation reports built on
// top of them.
package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
	StatusMoved    Status = "moved"
)

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled, StatusMoved:
		return true
	}
	return false
}

type Appointment struct {
	ID           uuid.UUID `json:"id"`
	SpecialistID uuid.UUID `json:"specialist_id"`
	ClientID     uuid.UUID `json:"client_id"`
	ServiceID    uuid.UUID `json:"service_id"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Denormalized display names, filled by list queries.
	SpecialistName string `json:"specialist_name,omitempty"`
	ClientName     string `json:"client_name,omitempty"`
	ServiceName    string `json:"service_name,omitempty"`
}
