package models

import (
	"time"

	"gorm.io/gorm"
)

// TotalVisits and LastVisit are derived from completed appointments.
type Client struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;index" json:"email,omitempty"`
	Phone string `gorm:"size:20;index" json:"phone,omitempty"`

	TotalVisits       int        `gorm:"not null;default:0" json:"total_visits"`
	LastVisit         *time.Time `json:"last_visit,omitempty"`
	PreferredBarberID *string    `gorm:"type:uuid" json:"preferred_barber_id,omitempty"`
	Notes             string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
