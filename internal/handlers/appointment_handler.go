package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/httpresp"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
	"github.com/BruksfildServices01/amai-mens-care/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create    *appointment.CreateAppointment
	setStatus *appointment.SetAppointmentStatus
	remove    *appointment.DeleteAppointment
	list      *appointment.ListAppointments
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	setStatus *appointment.SetAppointmentStatus,
	remove *appointment.DeleteAppointment,
	list *appointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:    create,
		setStatus: setStatus,
		remove:    remove,
		list:      list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID         string   `json:"client_id"`
	WalkInClientName string   `json:"walk_in_client_name"`
	BarberID         string   `json:"barber_id" binding:"required"`
	ServiceID        string   `json:"service_id" binding:"required"`
	Date             string   `json:"date" binding:"required"`
	Time             string   `json:"time" binding:"required"`
	Type             string   `json:"type"`
	Status           string   `json:"status"`
	Price            *float64 `json:"price"`
	Duration         *int     `json:"duration"`
	Notes            string   `json:"notes"`
}

type SetStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	ClientID string `json:"client_id"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	if date != "" {
		from, to = date, date
	}

	filter := domain.ListFilter{
		BarberID: c.Query("barber_id"),
		DateFrom: from,
		DateTo:   to,
		Status:   c.Query("status"),
		Type:     c.Query("type"),
	}
	if own := middleware.OwnBarberScope(c); own != "" {
		filter.BarberID = own
	}

	items, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if own := middleware.OwnBarberScope(c); own != "" && req.BarberID != own {
		httperr.Respond(c, httperr.ErrForbidden("not_your_appointment"))
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		ClientID:         req.ClientID,
		WalkInClientName: req.WalkInClientName,
		BarberID:         req.BarberID,
		ServiceID:        req.ServiceID,
		Date:             req.Date,
		Time:             req.Time,
		Type:             req.Type,
		Status:           req.Status,
		Price:            req.Price,
		Duration:         req.Duration,
		Notes:            req.Notes,
		ActorID:          middleware.ActorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), appointment.SetStatusInput{
		AppointmentID: c.Param("id"),
		Status:        req.Status,
		ClientID:      req.ClientID,
		OwnBarberID:   middleware.OwnBarberScope(c),
		ActorID:       middleware.ActorID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id"), middleware.ActorID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
