package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/amai-mens-care/internal/config"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	// ContextBarberID is set only for staff linked to a barber profile.
	ContextBarberID = "barberID"
)

// SignToken issues an HS256 token for a staff user.
func SignToken(cfg *config.Config, user *models.StaffUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(cfg.JWTTTL).Unix(),
		"iat":  now.Unix(),
	}
	if user.BarberID != nil {
		claims["barberId"] = *user.BarberID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, httperr.ErrUnauthorized("missing_authorization_header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, httperr.ErrUnauthorized("invalid_authorization_header"))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abort(c, httperr.ErrUnauthorized("invalid_token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, httperr.ErrUnauthorized("invalid_token_claims"))
			return
		}

		userID, ok1 := claims["sub"].(string)
		role, ok2 := claims["role"].(string)
		if !ok1 || !ok2 || userID == "" {
			abort(c, httperr.ErrUnauthorized("invalid_token_payload"))
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		if barberID, ok := claims["barberId"].(string); ok && barberID != "" {
			c.Set(ContextBarberID, barberID)
		}

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abort(c, httperr.ErrForbidden("insufficient_role"))
	}
}

// ActorID returns the authenticated user id, nil for anonymous requests.
func ActorID(c *gin.Context) *string {
	id := c.GetString(ContextUserID)
	if id == "" {
		return nil
	}
	return &id
}

// OwnBarberScope is the barber id a barber-role user is confined to,
// or "" for managers.
func OwnBarberScope(c *gin.Context) string {
	if c.GetString(ContextUserRole) == models.RoleManager {
		return ""
	}
	return c.GetString(ContextBarberID)
}

func abort(c *gin.Context, err error) {
	httperr.Respond(c, err)
	c.Abort()
}
