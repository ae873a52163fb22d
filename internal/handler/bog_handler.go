package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"gamoiwere/config"
	"gamoiwere/internal/domain"
	"gamoiwere/internal/middleware"
	"gamoiwere/internal/repository"
	"gamoiwere/internal/service"
	"gamoiwere/pkg/bog"

	"github.com/gin-gonic/gin"
)

type BOGHandler struct {
	cfg        *config.Config
	client     *bog.Client
	orderSvc   *service.OrderService
	orders     *repository.OrderRepository
	users      *repository.UserRepository
	dispatcher *service.Dispatcher
}

func NewBOGHandler(
	cfg *config.Config,
	client *bog.Client,
	orderSvc *service.OrderService,
	orders *repository.OrderRepository,
	users *repository.UserRepository,
	dispatcher *service.Dispatcher,
) *BOGHandler {
	return &BOGHandler{
		cfg:        cfg,
		client:     client,
		orderSvc:   orderSvc,
		orders:     orders,
		users:      users,
		dispatcher: dispatcher,
	}
}

// CreateOrder builds a fresh local order and registers it with the gateway
// in one call. If the gateway step fails the local order stays PENDING
// with empty gateway fields; the client may retry via CreateOrderPayment.
func (h *BOGHandler) CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var in service.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.NumberPrefix = "BOG"
	in.PaymentMethod = domain.PaymentMethodCard
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
	h.registerWithGateway(c, order.ID)
}

// CreateOrderPayment starts a gateway payment for an order that already
// exists, e.g. a retry after a failed attempt or a bank-transfer switch.
func (h *BOGHandler) CreateOrderPayment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.GetByID(req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}
	if order.Status == domain.OrderStatusPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "order already paid"})
		return
	}
	h.registerWithGateway(c, order.ID)
}

// registerWithGateway runs the token + create-order sequence and back-fills
// the gateway correlation fields on success.
func (h *BOGHandler) registerWithGateway(c *gin.Context, orderID uint) {
	order, err := h.orders.GetByID(orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
		return
	}
	user, err := h.users.GetByID(order.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
		return
	}

	externalOrderID := uuid.New().String()
	basket := make([]bog.BasketItem, 0, len(order.Items))
	for _, it := range order.Items {
		basket = append(basket, bog.BasketItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}
	req := bog.CreateOrderRequest{
		ExternalOrderID: externalOrderID,
		TotalAmount:     order.TotalAmount + order.ShippingCost,
		Basket:          basket,
		BuyerName:       order.RecipientName,
		BuyerPhone:      user.Phone,
		BuyerEmail:      user.Email,
		CallbackURL:     h.cfg.BOG.CallbackURL,
		SuccessURL:      h.cfg.Server.PublicURL + "/payment/success?order=" + order.OrderNumber,
		FailURL:         h.cfg.Server.PublicURL + "/payment/fail?order=" + order.OrderNumber,
	}
	resp, err := h.client.CreateOrder(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bog.ErrAuthFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "გადახდის სისტემასთან ავტორიზაცია ვერ მოხერხდა"})
		case errors.Is(err, bog.ErrMalformedResponse):
			c.JSON(http.StatusBadGateway, gin.H{"error": "გადახდის სისტემის პასუხი დაზიანებულია"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "გადახდის ინიცირება ვერ მოხერხდა, სცადეთ თავიდან"})
		}
		return
	}
	if err := h.orders.SetGatewayFields(order.ID, externalOrderID, resp.OrderID, resp.RedirectURL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record gateway reference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order_id":          order.ID,
		"order_number":      order.OrderNumber,
		"external_order_id": externalOrderID,
		"bog_order_id":      resp.OrderID,
		"payment_url":       resp.RedirectURL,
	})
}

// Status is the client polling fallback: local row plus, when on file, the
// gateway's receipt view.
func (h *BOGHandler) Status(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, err := h.orders.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
		return
	}
	resp := gin.H{"order": order}
	if order.BOGOrderID != "" {
		details, err := h.client.GetPaymentDetails(c.Request.Context(), order.BOGOrderID)
		if err == nil {
			resp["gateway"] = details
		} else {
			resp["gateway_error"] = "gateway status unavailable"
		}
	}
	c.JSON(http.StatusOK, resp)
}
