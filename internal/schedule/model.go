// Package schedule models specialist working hours and their time off.
package schedule

import (
	"time"

	"github.com/google/uuid"
)

// WorkSchedule is a specialist's daily working window. Times are stored as
// clock times ("HH:MM") without a date component.
type WorkSchedule struct {
	ID           uuid.UUID `json:"id"`
	SpecialistID uuid.UUID `json:"specialist_id"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TimeOff removes one date from a work schedule.
type TimeOff struct {
	ID             uuid.UUID `json:"id"`
	SpecialistID   uuid.UUID `json:"specialist_id"`
	WorkScheduleID uuid.UUID `json:"work_schedule_id"`
	Date           time.Time `json:"date"`
	Reason         *string   `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
