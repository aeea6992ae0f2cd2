package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/httpresp"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	audit audit.Emitter
}

func NewClientHandler(db *gorm.DB, audit audit.Emitter) *ClientHandler {
	return &ClientHandler{db: db, audit: audit}
}

type ClientRequest struct {
	Name              string  `json:"name" binding:"required"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	PreferredBarberID *string `json:"preferred_barber_id"`
	Notes             string  `json:"notes"`
}

// validate normalizes contact fields in place.
func (r *ClientRequest) validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = validators.NormalizePhone(r.Phone)

	if r.Email != "" && !validators.IsEmailSyntaxValid(r.Email) {
		return httperr.ErrBusiness("invalid_email")
	}
	if r.Phone != "" && !validators.IsPhoneValid(r.Phone) {
		return httperr.ErrBusiness("invalid_phone")
	}
	if r.PreferredBarberID != nil && *r.PreferredBarberID == "" {
		r.PreferredBarberID = nil
	}
	return nil
}

// ======================================================
// LIST / SEARCH
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	client := models.Client{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		PreferredBarberID: req.PreferredBarberID,
		Notes:             req.Notes,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	emitAudit(h.audit, c, "client_created", "client", client.ID, nil)
	c.JSON(http.StatusCreated, client)
}

// Update leaves total_visits and last_visit alone; they are derived.
func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		httperr.Respond(c, err)
		return
	}

	client.Name = req.Name
	client.Email = req.Email
	client.Phone = req.Phone
	client.PreferredBarberID = req.PreferredBarberID
	client.Notes = req.Notes

	if err := h.db.WithContext(c.Request.Context()).
		Model(client).
		Select("name", "email", "phone", "preferred_barber_id", "notes").
		Updates(client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	emitAudit(h.audit, c, "client_updated", "client", client.ID, nil)
	c.JSON(http.StatusOK, client)
}

// Delete keeps the client's appointments; their client_id becomes NULL.
func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	emitAudit(h.audit, c, "client_deleted", "client", client.ID, nil)
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) load(c *gin.Context) (*models.Client, bool) {
	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).
		First(&client, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.ErrNotFound("client_not_found"))
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &client, true
}
