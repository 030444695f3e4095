package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// WeekdayMap maps lowercase weekday names ("monday"..."sunday") to whether
// the barber works that day. Stored as jsonb.
type WeekdayMap map[string]bool

func (m WeekdayMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *WeekdayMap) Scan(src any) error {
	if src == nil {
		*m = WeekdayMap{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for WeekdayMap")
	}
}

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string `gorm:"size:100;not null" json:"name"`
	Email          string `gorm:"size:100" json:"email"`
	Phone          string `gorm:"size:20" json:"phone"`
	Description    string `gorm:"size:255" json:"description"`
	Specialization string `gorm:"size:100" json:"specialization"`
	ImageURL       string `gorm:"size:255" json:"image_url"`

	// Inactive barbers stay in the database so past bookings keep their
	// reference; they are just hidden from customers.
	Active bool `gorm:"default:true" json:"active"`

	WorkingDays WeekdayMap `gorm:"type:jsonb" json:"working_days"`
	StartTime   string     `gorm:"size:5" json:"start_time"`
	EndTime     string     `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
