package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/httpresp"
	"github.com/BruksfildServices01/amai-mens-care/internal/imaging"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

const maxPhotoBytes = 5 << 20

// PhotoStore keeps barber photos in object storage.
type PhotoStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type BarberHandler struct {
	db     *gorm.DB
	photos PhotoStore
	audit  audit.Emitter
}

func NewBarberHandler(db *gorm.DB, photos PhotoStore, audit audit.Emitter) *BarberHandler {
	return &BarberHandler{db: db, photos: photos, audit: audit}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone"`
	Specialty      string  `json:"specialty"`
	Bio            string  `json:"bio"`
	CommissionRate float64 `json:"commission_rate" binding:"gte=0,lte=100"`
}

// Counters are absent on purpose: only update_barber_stats writes them.
type UpdateBarberRequest struct {
	Name           *string  `json:"name,omitempty"`
	Email          *string  `json:"email,omitempty" binding:"omitempty,email"`
	Phone          *string  `json:"phone,omitempty"`
	Specialty      *string  `json:"specialty,omitempty"`
	Bio            *string  `json:"bio,omitempty"`
	CommissionRate *float64 `json:"commission_rate,omitempty" binding:"omitempty,gte=0,lte=100"`
	Active         *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	switch strings.TrimSpace(c.Query("active")) {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, barber)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	barber := models.Barber{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Specialty:      req.Specialty,
		Bio:            req.Bio,
		CommissionRate: req.CommissionRate,
		Active:         true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "A barber with this email already exists.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	emitAudit(h.audit, c, "barber_created", "barber", barber.ID, nil)
	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		barber.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		barber.Phone = *req.Phone
	}
	if req.Specialty != nil {
		barber.Specialty = *req.Specialty
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}
	if req.CommissionRate != nil {
		barber.CommissionRate = *req.CommissionRate
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Select("name", "email", "phone", "specialty", "bio", "commission_rate", "active").
		Updates(barber).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	emitAudit(h.audit, c, "barber_updated", "barber", barber.ID, nil)
	c.JSON(http.StatusOK, barber)
}

// Deactivate is a soft delete; history keeps pointing at the barber.
func (h *BarberHandler) Deactivate(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(barber).
		Update("active", false).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	emitAudit(h.audit, c, "barber_deactivated", "barber", barber.ID, nil)
	c.Status(http.StatusNoContent)
}

// UploadPhoto accepts multipart field "photo", stores it as WebP and
// removes the previous object.
func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	barber, ok := h.load(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "photo_required", "A photo file is required.")
		return
	}
	if fh.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "The photo must be 5 MB or smaller.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "photo_required", "A photo file is required.")
		return
	}
	defer f.Close()

	body, err := imaging.ToWebP(f, imaging.DefaultOptions())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ctx := c.Request.Context()
	key := "barbers/" + barber.ID + "/" + newObjectName() + ".webp"

	url, err := h.photos.Put(ctx, key, body, imaging.ContentType)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	previous := barber.PhotoURL
	if err := h.db.WithContext(ctx).Model(barber).Update("photo_url", url).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if oldKey, ok := h.photos.KeyFromURL(previous); ok {
		if err := h.photos.Delete(ctx, oldKey); err != nil {
			log.Warn().Err(err).Str("key", oldKey).Msg("failed to delete previous barber photo")
		}
	}

	emitAudit(h.audit, c, "barber_photo_updated", "barber", barber.ID, nil)
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

func (h *BarberHandler) load(c *gin.Context) (*models.Barber, bool) {
	var barber models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		First(&barber, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, httperr.ErrNotFound("barber_not_found"))
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &barber, true
}
