package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	"github.com/BruksfildServices01/amai-mens-care/internal/config"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/httpresp"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  audit.Emitter
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit audit.Emitter) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: audit}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateStaffRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role" binding:"required,oneof=manager barber"`
	BarberID *string `json:"barber_id"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.StaffUser
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := middleware.SignToken(h.config, &user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not sign in.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// CreateStaff is manager-only. Barber accounts must point at a barber profile.
func (h *AuthHandler) CreateStaff(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ctx := c.Request.Context()

	if req.Role == models.RoleBarber {
		if req.BarberID == nil || *req.BarberID == "" {
			httperr.Respond(c, httperr.ErrBusiness("barber_id_required"))
			return
		}
		var n int64
		if err := h.db.WithContext(ctx).Model(&models.Barber{}).
			Where("id = ?", *req.BarberID).Count(&n).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		if n == 0 {
			httperr.Respond(c, httperr.ErrNotFound("barber_not_found"))
			return
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.WithContext(ctx).Model(&models.StaffUser{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "A staff account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create the account.")
		return
	}

	user := models.StaffUser{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}
	if req.Role == models.RoleBarber {
		user.BarberID = req.BarberID
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	emitAudit(h.audit, c, "staff_created", "staff_user", user.ID, gin.H{"role": user.Role})

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) ListStaff(c *gin.Context) {
	var users []models.StaffUser
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, users)
}
