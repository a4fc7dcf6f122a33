// Package catalog models what businesses sell: services, their sub-services,
// specialist price/duration offers and the workers attached to a service.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	BusinessID  uuid.UUID `json:"business_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SubService struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ServiceID    uuid.UUID `json:"service_id"`
	SpecialistID uuid.UUID `json:"specialist_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SpecialistService is a specialist's concrete offer for a sub-service:
// price in the minor currency unit, duration in minutes.
type SpecialistService struct {
	ID           uuid.UUID `json:"id"`
	SpecialistID uuid.UUID `json:"specialist_id"`
	SubServiceID uuid.UUID `json:"sub_service_id"`
	Price        int64     `json:"price"`
	Duration     int64     `json:"duration"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BusinessWorker attaches a specialist to a service with a position and bio.
type BusinessWorker struct {
	ID                uuid.UUID `json:"id"`
	SpecialistID      uuid.UUID `json:"specialist_id"`
	ServiceID         uuid.UUID `json:"service_id"`
	Position          string    `json:"position"`
	Bio               *string   `json:"bio"`
	YearsOfExperience int64     `json:"years_of_experience"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
