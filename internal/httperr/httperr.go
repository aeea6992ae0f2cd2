package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

var messages = map[string]string{
	CodeSlotConflict:       "This time slot was just taken. Please pick another time.",
	CodeInvalidTransition:  "The appointment can no longer change to that status.",
	CodeServiceUnavailable: "The service is temporarily unavailable. Please try again later.",
	"service_not_found":     "Service not found.",
	"barber_not_found":      "Barber not found.",
	"client_not_found":      "Client not found.",
	"appointment_not_found": "Appointment not found.",
	"review_not_found":      "Review not found.",
	"forbidden":             "You are not allowed to perform this action.",
}

func messageFor(code string, fallback string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return fallback
}

// Respond maps a usecase error to the HTTP response.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		_ = c.Error(err)
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, messageFor(be.Code, "Not found."))
	case KindConflict:
		Conflict(c, be.Code, messageFor(be.Code, "Conflict."))
	case KindUnauthorized:
		Unauthorized(c, be.Code, messageFor(be.Code, "Unauthorized."))
	case KindForbidden:
		Forbidden(c, be.Code, messageFor(be.Code, "Forbidden."))
	case KindUnavailable:
		Unavailable(c, be.Code, messageFor(be.Code, messages[CodeServiceUnavailable]))
	default:
		BadRequest(c, be.Code, messageFor(be.Code, "Invalid request."))
	}
}
