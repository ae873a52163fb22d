package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusPaid       = "PAID"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

const (
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodBalance      = "BALANCE"
	PaymentMethodCard         = "CARD"
)

const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

const (
	DeliveryMethodAir    = "AIR"
	DeliveryMethodGround = "GROUND"
	DeliveryMethodSea    = "SEA"
)

const (
	DeliveryStatusOrdered          = "ORDERED"
	DeliveryStatusReceivedChina    = "RECEIVED_CHINA"
	DeliveryStatusSentTbilisi      = "SENT_TBILISI"
	DeliveryStatusDeliveredTbilisi = "DELIVERED_TBILISI"
)

// BOG gateway order status keys as reported in callbacks.
const (
	BOGStatusCompleted = "completed"
	BOGStatusRejected  = "rejected"
)

// DeliveryEstimateDays returns how many days after order creation the
// shipment is expected, keyed by delivery method. Unknown or empty methods
// fall back to air.
func DeliveryEstimateDays(method string) int {
	switch method {
	case DeliveryMethodGround:
		return 30
	case DeliveryMethodSea:
		return 45
	default:
		return 14
	}
}
