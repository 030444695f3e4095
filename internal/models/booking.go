package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	Services []Service `gorm:"many2many:booking_services;" json:"services"`

	// Pre-migration rows stored a single free-text service name here.
	// Normalized into Services by the views layer, never read elsewhere.
	LegacyService string `gorm:"column:service;size:100" json:"-"`

	Date string `gorm:"size:10;index:idx_bookings_barber_date" json:"date"`
	Time string `gorm:"size:5" json:"time"`

	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`
	EndsAt      time.Time `json:"ends_at"`

	// Contact snapshot captured at booking time, independent of any account.
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100;not null" json:"customer_email"`
	CustomerPhone string `gorm:"size:20;not null" json:"customer_phone"`

	UserID *uint `json:"user_id"`
	User   User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
