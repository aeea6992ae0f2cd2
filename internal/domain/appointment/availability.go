package appointment

type Availability struct {
	BarberID string   `json:"barber_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
	// Degraded marks a fail-closed result: the lookup failed and no slot is offered.
	Degraded bool `json:"degraded,omitempty"`
}

type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type BarberAvailability struct {
	BarberID  string            `json:"barber_id"`
	Name      string            `json:"name"`
	Specialty string            `json:"specialty,omitempty"`
	PhotoURL  string            `json:"photo_url,omitempty"`
	Days      []DayAvailability `json:"days"`
}
