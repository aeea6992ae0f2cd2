package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the signed-in staff user and, for barbers, their profile.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		httperr.Unauthorized(c, "user_not_in_context", "Unauthorized.")
		return
	}

	ctx := c.Request.Context()

	var user models.StaffUser
	if err := h.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "Unauthorized.")
			return
		}
		httperr.Respond(c, err)
		return
	}

	resp := gin.H{"user": user}

	if user.BarberID != nil {
		var barber models.Barber
		if err := h.db.WithContext(ctx).First(&barber, "id = ?", *user.BarberID).Error; err == nil {
			resp["barber"] = barber
		}
	}

	c.JSON(http.StatusOK, resp)
}
