package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleBarber   = "barber"
	RoleCustomer = "customer"
)

// StaffRoles are the roles allowed through the admin surface.
var StaffRoles = []string{RoleAdmin, RoleManager, RoleBarber}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'customer'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}
