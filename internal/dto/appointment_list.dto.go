package dto

import "time"

type AppointmentListDTO struct {
	ID               string     `json:"id"`
	Date             string     `json:"date"`
	Time             string     `json:"time"`
	Duration         int        `json:"duration"`
	Status           string     `json:"status"`
	Type             string     `json:"type"`
	ClientID         *string    `json:"client_id,omitempty"`
	ClientName       string     `json:"client_name"`
	BarberID         string     `json:"barber_id"`
	BarberName       string     `json:"barber_name"`
	ServiceID        string     `json:"service_id"`
	ServiceName      string     `json:"service_name"`
	Price            float64    `json:"price"`
	CommissionAmount float64    `json:"commission_amount"`
	Notes            string     `json:"notes,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}
