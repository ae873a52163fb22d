package service

import (
	"errors"
	"fmt"
	"time"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"
)

var (
	ErrNoItems         = errors.New("order must contain at least one item")
	ErrNoAddress       = errors.New("shipping address is required")
	ErrInvalidTotal    = errors.New("total amount must be positive")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
)

// OrderItemInput carries prices in major units (GEL); conversion to tetri
// happens here and only here.
type OrderItemInput struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

type CreateOrderInput struct {
	Items              []OrderItemInput `json:"items"`
	TotalAmount        float64          `json:"total_amount"`
	ShippingCost       float64          `json:"shipping_cost"`
	ShippingAddress    string           `json:"shipping_address"`
	ShippingCity       string           `json:"shipping_city"`
	ShippingPostalCode string           `json:"shipping_postal_code"`
	RecipientName      string           `json:"recipient_name"`
	RecipientPhone     string           `json:"recipient_phone"`
	DeliveryMethod     string           `json:"delivery_method"`
	PaymentMethod      string           `json:"payment_method"`
	Notes              string           `json:"notes"`

	// NumberPrefix distinguishes storefront orders (GAM) from orders born
	// in the gateway flow (BOG). Defaults to GAM.
	NumberPrefix string `json:"-"`
}

// OrderEvent is emitted by Create for the dispatcher to drain. Side-effect
// delivery never blocks or fails order creation.
type OrderEvent struct {
	Type  string
	Order *models.Order
	User  *models.User
}

const EventOrderCreated = "ORDER_CREATED"

type OrderService struct {
	orders *repository.OrderRepository
	users  *repository.UserRepository
}

func NewOrderService(orders *repository.OrderRepository, users *repository.UserRepository) *OrderService {
	return &OrderService{orders: orders, users: users}
}

// Create validates the cart, converts amounts to minor units, persists the
// order as PENDING and returns it alongside the events to dispatch.
func (s *OrderService) Create(userID uint, in CreateOrderInput) (*models.Order, []OrderEvent, error) {
	if len(in.Items) == 0 {
		return nil, nil, ErrNoItems
	}
	if in.ShippingAddress == "" {
		return nil, nil, ErrNoAddress
	}
	if in.TotalAmount <= 0 {
		return nil, nil, ErrInvalidTotal
	}
	items := make(models.OrderItems, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, nil, ErrInvalidQuantity
		}
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     domain.ToMinorUnits(it.Price),
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}

	prefix := in.NumberPrefix
	if prefix == "" {
		prefix = "GAM"
	}
	now := time.Now()
	estimate := now.AddDate(0, 0, domain.DeliveryEstimateDays(in.DeliveryMethod))
	method := in.DeliveryMethod
	if method == "" {
		method = domain.DeliveryMethodAir
	}
	order := &models.Order{
		OrderNumber:           fmt.Sprintf("%s-%d-%d", prefix, now.UnixMilli(), userID),
		UserID:                userID,
		Status:                domain.OrderStatusPending,
		Items:                 items,
		TotalAmount:           domain.ToMinorUnits(in.TotalAmount),
		ShippingCost:          domain.ToMinorUnits(in.ShippingCost),
		ShippingAddress:       in.ShippingAddress,
		ShippingCity:          in.ShippingCity,
		ShippingPostalCode:    in.ShippingPostalCode,
		RecipientName:         in.RecipientName,
		RecipientPhone:        in.RecipientPhone,
		DeliveryMethod:        method,
		EstimatedDeliveryDate: &estimate,
		PaymentMethod:         in.PaymentMethod,
		Notes:                 in.Notes,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, nil, err
	}
	events := []OrderEvent{{Type: EventOrderCreated, Order: order, User: user}}
	return order, events, nil
}

func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	return s.orders.GetByID(id)
}

func (s *OrderService) ListByUserID(userID uint, limit, offset int) ([]models.Order, error) {
	return s.orders.ListByUserID(userID, limit, offset)
}
