package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/httpresp"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
	"github.com/BruksfildServices01/amai-mens-care/internal/usecase/review"
)

type ReviewHandler struct {
	list     *review.ListReviews
	approval *review.SetApproval
	remove   *review.DeleteReview
}

func NewReviewHandler(
	list *review.ListReviews,
	approval *review.SetApproval,
	remove *review.DeleteReview,
) *ReviewHandler {
	return &ReviewHandler{list: list, approval: approval, remove: remove}
}

type SetApprovalRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

func (h *ReviewHandler) Pending(c *gin.Context) {
	reviews, err := h.list.Pending(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, reviews)
}

// ForBarber includes unapproved reviews; the summary still counts approved ones only.
func (h *ReviewHandler) ForBarber(c *gin.Context) {
	barberID := c.Param("id")
	if own := middleware.OwnBarberScope(c); own != "" && own != barberID {
		httperr.Respond(c, httperr.ErrForbidden("forbidden"))
		return
	}

	res, err := h.list.ForBarber(c.Request.Context(), barberID, false)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReviewHandler) SetApproval(c *gin.Context) {
	var req SetApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rv, err := h.approval.Execute(c.Request.Context(), c.Param("id"), *req.Approved, middleware.ActorID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id"), middleware.ActorID(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
