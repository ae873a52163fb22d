package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment records one payment attempt against an order. An order may carry
// several rows (partial balance payment topped up by card); nothing forces
// the amounts to sum to the order total.
type Payment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OrderID       uint   `gorm:"not null;index" json:"order_id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	Amount        int64  `gorm:"not null" json:"amount"` // tetri
	Method        string `gorm:"size:20;not null" json:"method"`
	Status        string `gorm:"size:20;not null;index" json:"status"`
	TransactionID string `gorm:"size:128" json:"transaction_id"`
	PayerName     string `gorm:"size:128" json:"payer_name"`
	// BankDetails is a JSON snapshot of the transfer instructions handed to
	// the customer at payment time.
	BankDetails string         `gorm:"type:text" json:"bank_details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
