// Package business models the venues appointments happen at.
package business

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeClinic     Type = "clinic"
	TypeBarbershop Type = "barbershop"
	TypeBeautyshop Type = "beautyshop"
	TypeSport      Type = "sport"
)

// ValidType reports whether s is one of the known business types.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeClinic, TypeBarbershop, TypeBeautyshop, TypeSport:
		return true
	}
	return false
}

type Business struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Type         Type            `json:"type"`
	Address      string          `json:"address"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Contact      *string         `json:"contact"`
	OpeningHours json.RawMessage `json:"opening_hours"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
