package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/middleware"
	"gamoiwere/internal/repository"
	"gamoiwere/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentSvc *service.PaymentService
	notifSvc   *service.NotificationService
	orders     *repository.OrderRepository
}

func NewPaymentHandler(paymentSvc *service.PaymentService, notifSvc *service.NotificationService, orders *repository.OrderRepository) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, notifSvc: notifSvc, orders: orders}
}

func (h *PaymentHandler) BankTransfer(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		OrderID   uint   `json:"order_id" binding:"required"`
		PayerName string `json:"payer_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := h.paymentSvc.PayWithBankTransfer(userID, req.OrderID, req.PayerName)
	if err != nil {
		paymentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) Balance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		OrderID uint    `json:"order_id" binding:"required"`
		Amount  float64 `json:"amount" binding:"required,gt=0"` // major units
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.paymentSvc.PayWithBalance(userID, req.OrderID, domain.ToMinorUnits(req.Amount))
	if err != nil {
		paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmBankTransfer is admin-only: the manual reconciliation step once
// the transfer shows up on the bank statement.
func (h *PaymentHandler) ConfirmBankTransfer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}
	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := h.paymentSvc.ConfirmBankTransfer(uint(id), req.TransactionID)
	if err != nil {
		paymentError(c, err)
		return
	}
	if order, err := h.orders.GetByID(payment.OrderID); err == nil {
		_ = h.notifSvc.NotifyPaymentConfirmed(payment.UserID, payment.OrderID, order.OrderNumber)
	}
	c.JSON(http.StatusOK, payment)
}

func paymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOrderNotPayable), errors.Is(err, domain.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "ბალანსზე საკმარისი თანხა არ არის"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment failed"})
	}
}
