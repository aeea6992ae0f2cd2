package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleManager = "manager"
	RoleBarber  = "barber"
)

// StaffUser is the only credential store for dashboard access.
type StaffUser struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Role         string  `gorm:"size:20;not null;default:'barber'" json:"role"`
	BarberID     *string `gorm:"type:uuid" json:"barber_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *StaffUser) BeforeCreate(_ *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
