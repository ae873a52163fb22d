package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"
	"gamoiwere/internal/service"

	"github.com/gin-gonic/gin"
)

// BOGCallback is the gateway's asynchronous payment result. BOG retries
// on non-200, so this handler acknowledges everything it can parse and
// logs what it cannot reconcile.
type BOGCallback struct {
	Event string `json:"event"`
	Body  struct {
		OrderID         string `json:"order_id"`
		ExternalOrderID string `json:"external_order_id"`
		OrderStatus     struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"order_status"`
	} `json:"body"`
}

type BOGWebhookHandler struct {
	orders   *repository.OrderRepository
	payments *repository.PaymentRepository
	notifSvc *service.NotificationService
}

func NewBOGWebhookHandler(orders *repository.OrderRepository, payments *repository.PaymentRepository, notifSvc *service.NotificationService) *BOGWebhookHandler {
	return &BOGWebhookHandler{orders: orders, payments: payments, notifSvc: notifSvc}
}

// Handle reconciles the local order against the gateway's reported status:
// completed -> PAID, rejected -> CANCELLED, anything else leaves the order
// as-is. Always answers 200 once the payload parses; an unknown
// external_order_id means money may have moved with no local record, which
// is logged as CRITICAL for alerting.
func (h *BOGWebhookHandler) Handle(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	var payload BOGCallback
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("[BOG callback] unmarshal error: %v body=%s", err, string(raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	log.Printf("[BOG callback] external_order_id=%s bog_order_id=%s status=%s",
		payload.Body.ExternalOrderID, payload.Body.OrderID, payload.Body.OrderStatus.Key)

	if payload.Body.ExternalOrderID == "" {
		log.Printf("[BOG callback] missing external_order_id, acknowledging")
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	order, err := h.orders.GetByExternalOrderID(payload.Body.ExternalOrderID)
	if err != nil {
		// Gateway knows a payment we do not. Ack anyway to stop retries,
		// but this needs a human.
		log.Printf("[BOG callback] CRITICAL: no local order for external_order_id=%s payload=%s",
			payload.Body.ExternalOrderID, string(raw))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	statusKey := payload.Body.OrderStatus.Key
	if err := h.orders.SetCallbackState(order.ID, statusKey, string(raw)); err != nil {
		log.Printf("[BOG callback] could not store callback state for order %d: %v", order.ID, err)
	}

	switch statusKey {
	case domain.BOGStatusCompleted:
		if err := h.orders.UpdateStatus(nil, order.ID, domain.OrderStatusPaid); err != nil {
			log.Printf("[BOG callback] status update failed for order %d: %v", order.ID, err)
		} else {
			h.recordCardPayment(order, payload.Body.OrderID)
			_ = h.notifSvc.NotifyPaymentConfirmed(order.UserID, order.ID, order.OrderNumber)
		}
	case domain.BOGStatusRejected:
		if err := h.orders.UpdateStatus(nil, order.ID, domain.OrderStatusCancelled); err != nil {
			log.Printf("[BOG callback] cancel failed for order %d: %v", order.ID, err)
		}
	default:
		// in-flight statuses (created, processing): leave the order alone
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// recordCardPayment writes the settled card payment row. BOG retries
// callbacks, so an existing PAID card row for the order means this one was
// already recorded.
func (h *BOGWebhookHandler) recordCardPayment(order *models.Order, bogOrderID string) {
	exists, err := h.payments.ExistsForOrder(order.ID, domain.PaymentMethodCard, domain.PaymentStatusPaid)
	if err != nil {
		log.Printf("[BOG callback] payment lookup failed for order %d: %v", order.ID, err)
		return
	}
	if exists {
		return
	}
	payment := &models.Payment{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        order.TotalAmount,
		Method:        domain.PaymentMethodCard,
		Status:        domain.PaymentStatusPaid,
		TransactionID: bogOrderID,
	}
	if err := h.payments.Create(payment); err != nil {
		log.Printf("[BOG callback] payment record failed for order %d: %v", order.ID, err)
	}
}
