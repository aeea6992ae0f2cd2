package dto

// Public projections never expose contact data or commission figures.

type PublicBarberDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Specialty     string   `json:"specialty,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	PhotoURL      string   `json:"photo_url,omitempty"`
	AverageRating *float64 `json:"average_rating"`
	TotalReviews  int      `json:"total_reviews"`
}

type PublicReviewDTO struct {
	ID         string `json:"id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	ClientName string `json:"client_name"`
	CreatedAt  string `json:"created_at"`
}

type PublicBookingDTO struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Status  string  `json:"status"`
	Barber  string  `json:"barber"`
	Service string  `json:"service"`
	Price   float64 `json:"price"`
}
