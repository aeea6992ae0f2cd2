package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
)

// FullReconciler recomputes every derived counter.
type FullReconciler interface {
	ReconcileAll(ctx context.Context) (barbers, clients int, err error)
}

type InternalHandler struct {
	reconciler FullReconciler
}

func NewInternalHandler(reconciler FullReconciler) *InternalHandler {
	return &InternalHandler{reconciler: reconciler}
}

func (h *InternalHandler) Reconcile(c *gin.Context) {
	barbers, clients, err := h.reconciler.ReconcileAll(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	log.Info().Int("barbers", barbers).Int("clients", clients).Msg("reconciliation finished")
	c.JSON(http.StatusOK, gin.H{
		"barbers": barbers,
		"clients": clients,
	})
}
