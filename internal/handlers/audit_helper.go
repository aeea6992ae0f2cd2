package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
)

// emitAudit records a CRUD action performed by the authenticated user.
func emitAudit(
	em audit.Emitter,
	c *gin.Context,
	action string,
	entity string,
	entityID string,
	meta any,
) {
	var id *string
	if entityID != "" {
		id = &entityID
	}

	em.Dispatch(audit.Event{
		UserID:   middleware.ActorID(c),
		Action:   action,
		Entity:   entity,
		EntityID: id,
		Metadata: meta,
		At:       time.Now(),
	})
}
