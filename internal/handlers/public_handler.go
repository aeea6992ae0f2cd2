package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/dto"
	domainReview "github.com/BruksfildServices01/amai-mens-care/internal/domain/review"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/httpresp"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/usecase/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/usecase/review"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	availability    *appointment.GetAvailability
	allAvailability *appointment.AllBarbersAvailability
	booking         *appointment.PublicBooking

	submitReview *review.SubmitReview
	listReviews  *review.ListReviews
}

func NewPublicHandler(
	db *gorm.DB,
	availability *appointment.GetAvailability,
	allAvailability *appointment.AllBarbersAvailability,
	booking *appointment.PublicBooking,
	submitReview *review.SubmitReview,
	listReviews *review.ListReviews,
) *PublicHandler {
	return &PublicHandler{
		db:              db,
		availability:    availability,
		allAvailability: allAvailability,
		booking:         booking,
		submitReview:    submitReview,
		listReviews:     listReviews,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	BarberID    string `json:"barber_id" binding:"required"`
	ServiceID   string `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

type PublicReviewRequest struct {
	BarberID    string `json:"barber_id" binding:"required"`
	Rating      int    `json:"rating" binding:"required"`
	Comment     string `json:"comment" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email"`
}

type barberRatingRow struct {
	ID            string
	Name          string
	Specialty     string
	Bio           string
	PhotoURL      string
	AverageRating *float64
	TotalReviews  int
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Order("price ASC, name ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

// ListBarbers returns active barbers with their approved-review rating.
func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var rows []barberRatingRow
	if err := h.db.WithContext(c.Request.Context()).
		Table("barbers").
		Select("barbers.id, barbers.name, barbers.specialty, barbers.bio, barbers.photo_url, " +
			"v.average_rating, COALESCE(v.total_reviews, 0) AS total_reviews").
		Joins("LEFT JOIN barber_ratings_view v ON v.barber_id = barbers.id").
		Where("barbers.active = ?", true).
		Order("barbers.name ASC").
		Scan(&rows).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]dto.PublicBarberDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PublicBarberDTO{
			ID:            r.ID,
			Name:          r.Name,
			Specialty:     r.Specialty,
			Bio:           r.Bio,
			PhotoURL:      r.PhotoURL,
			AverageRating: r.AverageRating,
			TotalReviews:  r.TotalReviews,
		})
	}
	httpresp.List(c, out)
}

func (h *PublicHandler) ListBarberReviews(c *gin.Context) {
	res, err := h.listReviews.ForBarber(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	reviews := make([]dto.PublicReviewDTO, 0, len(res.Reviews))
	for _, rv := range res.Reviews {
		reviews = append(reviews, dto.PublicReviewDTO{
			ID:         rv.ID,
			Rating:     rv.Rating,
			Comment:    rv.Comment,
			ClientName: rv.ClientName,
			CreatedAt:  rv.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": res.Summary,
		"reviews": reviews,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// BarberAvailability never fails: a degraded result is an empty slot list.
func (h *PublicHandler) BarberAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "A date is required.")
		return
	}

	res := h.availability.Execute(c.Request.Context(), c.Param("id"), date)
	c.JSON(http.StatusOK, res)
}

func (h *PublicHandler) AllAvailability(c *gin.Context) {
	res, err := h.allAvailability.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, res)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.booking.Execute(c.Request.Context(), appointment.PublicBookingInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := dto.PublicBookingDTO{
		ID:     ap.ID,
		Date:   ap.Date,
		Time:   ap.Time,
		Status: ap.Status,
		Price:  ap.Price,
	}
	if ap.Barber != nil {
		out.Barber = ap.Barber.Name
	}
	if ap.Service != nil {
		out.Service = ap.Service.Name
	}

	c.JSON(http.StatusCreated, out)
}

func (h *PublicHandler) SubmitReview(c *gin.Context) {
	var req PublicReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rv, err := h.submitReview.Execute(c.Request.Context(), domainReview.Submission{
		BarberID:    req.BarberID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       rv.ID,
		"approved": rv.Approved,
	})
}
