package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// OrderItem is a denormalized snapshot of a catalog product at purchase
// time, not a foreign key into a live catalog. Price is in tetri.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// OrderItems is stored as a JSON column on the order row.
type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *OrderItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	case nil:
		*i = nil
		return nil
	}
	return errors.New("unsupported type for OrderItems")
}

type Order struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderNumber string     `gorm:"uniqueIndex;size:64;not null" json:"order_number"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	Items       OrderItems `gorm:"type:json" json:"items"`
	// Amounts in tetri.
	TotalAmount           int64      `gorm:"not null" json:"total_amount"`
	ShippingCost          int64      `gorm:"not null;default:0" json:"shipping_cost"`
	ShippingAddress       string     `gorm:"size:512;not null" json:"shipping_address"`
	ShippingCity          string     `gorm:"size:128" json:"shipping_city"`
	ShippingPostalCode    string     `gorm:"size:16" json:"shipping_postal_code"`
	RecipientName         string     `gorm:"size:128" json:"recipient_name"`
	RecipientPhone        string     `gorm:"size:32" json:"recipient_phone"`
	DeliveryMethod        string     `gorm:"size:10" json:"delivery_method"` // AIR | GROUND | SEA
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	PaymentMethod         string     `gorm:"size:20" json:"payment_method"`
	// Gateway correlation. ExternalOrderID is ours (sent to BOG and echoed
	// back in callbacks), BOGOrderID is theirs.
	ExternalOrderID     *string        `gorm:"uniqueIndex;size:64" json:"external_order_id"`
	BOGOrderID          string         `gorm:"size:64;index" json:"bog_order_id"`
	BOGPaymentURL       string         `gorm:"size:512" json:"bog_payment_url"`
	BOGStatus           string         `gorm:"size:32" json:"bog_status"`
	BOGCallbackPayload  string         `gorm:"type:text" json:"-"`
	SMSNotificationSent bool           `gorm:"default:false" json:"sms_notification_sent"`
	Notes               string         `gorm:"type:text" json:"notes"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}
