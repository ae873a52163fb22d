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

type OrderHandler struct {
	orderSvc   *service.OrderService
	dispatcher *service.Dispatcher
}

func NewOrderHandler(orderSvc *service.OrderService, dispatcher *service.Dispatcher) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, dispatcher: dispatcher}
}

// Create persists the order and answers immediately; confirmation email
// and SMS go through the dispatcher and cannot fail the request.
func (h *OrderHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, events, err := h.orderSvc.Create(userID, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoItems),
			errors.Is(err, service.ErrNoAddress),
			errors.Is(err, service.ErrInvalidTotal),
			errors.Is(err, service.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order creation failed"})
		}
		return
	}
	h.dispatcher.Dispatch(events)
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	orders, err := h.orderSvc.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, err := h.orderSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
