// Package reviews models client feedback on finished appointments.
package reviews

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	ClientID      uuid.UUID `json:"client_id"`
	Rating        int       `json:"rating"` // 1..5
	Comment       *string   `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidRating reports whether r is within the 1..5 scale.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
