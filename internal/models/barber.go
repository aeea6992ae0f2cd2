package models

import (
	"time"

	"gorm.io/gorm"
)

// Barber counters and rating are maintained by update_barber_stats.
type Barber struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone,omitempty"`
	Specialty string    `gorm:"size:100" json:"specialty,omitempty"`
	Bio       string    `gorm:"type:text" json:"bio,omitempty"`
	PhotoURL  string    `gorm:"size:512" json:"photo_url,omitempty"`
	JoinDate  time.Time `json:"join_date"`

	TotalCuts       int     `gorm:"not null;default:0" json:"total_cuts"`
	AppointmentCuts int     `gorm:"not null;default:0" json:"appointment_cuts"`
	WalkInCuts      int     `gorm:"not null;default:0" json:"walk_in_cuts"`
	CommissionRate  float64 `gorm:"not null;default:0" json:"commission_rate"`
	TotalCommission float64 `gorm:"not null;default:0" json:"total_commission"`

	Active bool     `gorm:"not null;default:true" json:"active"`
	Rating *float64 `json:"rating,omitempty"`

	Reviews []Review `gorm:"foreignKey:BarberID" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) BeforeCreate(_ *gorm.DB) error {
	ensureID(&b.ID)
	if b.JoinDate.IsZero() {
		b.JoinDate = time.Now()
	}
	return nil
}
