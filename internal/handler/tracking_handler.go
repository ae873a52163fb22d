package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/middleware"
	"gamoiwere/internal/service"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	trackingSvc *service.TrackingService
}

func NewTrackingHandler(trackingSvc *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingSvc: trackingSvc}
}

// Upsert is admin-only; milestone notification/SMS side effects are
// best-effort inside the service.
func (h *TrackingHandler) Upsert(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var in service.UpsertTrackingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := h.trackingSvc.Upsert(uint(orderID), in)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tracking update failed"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// GetForOrder serves the admin view of one order's tracking row.
func (h *TrackingHandler) GetForOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	row, err := h.trackingSvc.GetForOrder(uint(orderID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load tracking"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no tracking for order"})
		return
	}
	c.JSON(http.StatusOK, row)
}

// GetMine lists tracking rows for the requesting user's own orders.
func (h *TrackingHandler) GetMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	rows, err := h.trackingSvc.GetForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load tracking"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
