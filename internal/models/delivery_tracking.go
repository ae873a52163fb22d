package models

import "time"

// DeliveryTracking is the admin-maintained shipment record for an order.
// One row per order, enforced by the unique index on order_id.
type DeliveryTracking struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	OrderID        uint    `gorm:"uniqueIndex;not null" json:"order_id"`
	DeliveryStatus string  `gorm:"size:32" json:"delivery_status"`
	TrackingNumber string  `gorm:"size:64" json:"tracking_number"`
	ProductWeight  float64 `json:"product_weight"` // kg
	// TransportationPrice in tetri. Changing it adjusts the owning user's
	// pending_transportation_fees by the delta.
	TransportationPrice int64      `gorm:"not null;default:0" json:"transportation_price"`
	OrderedAt           *time.Time `json:"ordered_at"`
	ReceivedChinaAt     *time.Time `json:"received_china_at"`
	SentTbilisiAt       *time.Time `json:"sent_tbilisi_at"`
	DeliveredTbilisiAt  *time.Time `json:"delivered_tbilisi_at"`
	Notes               string     `gorm:"type:text" json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (DeliveryTracking) TableName() string {
	return "delivery_tracking"
}

// TransportFeeEntry is the append-only ledger behind
// users.pending_transportation_fees, so the counter can be audited and
// rebuilt by replay.
type TransportFeeEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Delta     int64     `gorm:"not null" json:"delta"` // tetri, may be negative
	Reason    string    `gorm:"size:128" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (TransportFeeEntry) TableName() string {
	return "transport_fee_entries"
}
