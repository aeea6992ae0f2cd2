package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	BarberID    string `gorm:"type:uuid;not null;index" json:"barber_id"`
	Rating      int    `gorm:"not null" json:"rating"`
	Comment     string `gorm:"type:text;not null" json:"comment"`
	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email,omitempty"`
	Approved    bool   `gorm:"not null;default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(_ *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
