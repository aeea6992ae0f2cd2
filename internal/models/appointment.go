package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID         *string `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Client           *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`
	WalkInClientName string  `gorm:"size:100" json:"walk_in_client_name,omitempty"`

	BarberID string  `gorm:"type:uuid;not null;index:idx_appointments_barber_date,priority:1" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber,omitempty"`

	ServiceID string   `gorm:"type:uuid;not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	// Date is YYYY-MM-DD and Time is HH:MM in the shop timezone.
	Date     string `gorm:"type:varchar(10);not null;index:idx_appointments_barber_date,priority:2" json:"date"`
	Time     string `gorm:"type:varchar(5);not null" json:"time"`
	Duration int    `gorm:"not null" json:"duration"`

	Status string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Type   string `gorm:"size:20;not null;default:'appointment'" json:"type"`

	Price            float64 `gorm:"not null" json:"price"`
	CommissionAmount float64 `gorm:"not null;default:0" json:"commission_amount"`

	Notes       string     `gorm:"size:255" json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
