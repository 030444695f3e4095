package models

import "time"

// Duration is mandatory: a service without one is invalid. Bookings that
// predate the duration column fall back to a single 30-minute slot at the
// read boundary, not here.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	MinServiceDuration = 15
	MaxServiceDuration = 240
)
