package db

import (
	stderrors "errors"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/config"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

// SeedBootstrapManager creates the first manager account when configured
// and absent. An existing account is never modified.
func SeedBootstrapManager(db *gorm.DB, cfg config.BootstrapManagerConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		return nil
	}

	var existing models.StaffUser
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(err, "failed to look up bootstrap manager")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash bootstrap password")
	}

	user := models.StaffUser{
		Name:         "Manager",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleManager,
	}
	if err := db.Create(&user).Error; err != nil {
		return errors.Wrap(err, "failed to create bootstrap manager")
	}

	log.Info().Str("email", email).Msg("bootstrap manager created")
	return nil
}
