package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/repository"
	"gamoiwere/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	orders   *repository.OrderRepository
	users    *repository.UserRepository
	notifSvc *service.NotificationService
}

func NewAdminHandler(orders *repository.OrderRepository, users *repository.UserRepository, notifSvc *service.NotificationService) *AdminHandler {
	return &AdminHandler{orders: orders, users: users, notifSvc: notifSvc}
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	limit, offset := pagination(c)
	orders, err := h.orders.List(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus goes through the transition gate; an illegal jump
// (e.g. DELIVERED back to PENDING) is rejected, not silently written.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.orders.UpdateStatus(nil, uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		}
		return
	}
	order, err := h.orders.GetByID(uint(id))
	if err == nil {
		_ = h.notifSvc.NotifyOrderStatus(order.UserID, order.ID, order.OrderNumber, order.Status)
	}
	c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.users.List(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// AdjustBalance credits (or, with a negative amount, debits) a user's
// balance; used when a bank-transfer top-up shows up against a balance
// code.
func (h *AdminHandler) AdjustBalance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req struct {
		Amount float64 `json:"amount" binding:"required"` // major units, signed
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	delta := domain.ToMinorUnits(req.Amount)
	if delta < 0 {
		if err := h.users.DebitBalance(nil, uint(id), -delta); err != nil {
			if errors.Is(err, domain.ErrInsufficientBalance) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "balance update failed"})
			return
		}
	} else {
		if err := h.users.CreditBalance(nil, uint(id), delta); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "balance update failed"})
			return
		}
	}
	_ = h.notifSvc.NotifyBalanceAdjusted(uint(id), delta)
	u, _ := h.users.GetByID(uint(id))
	c.JSON(http.StatusOK, u)
}
