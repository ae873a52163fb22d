package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Phone        string `gorm:"size:32" json:"phone"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // user | admin
	// Balance in tetri. Mutated only by the balance payment strategy and
	// admin adjustments.
	Balance int64 `gorm:"not null;default:0" json:"balance"`
	// BalanceCode is the 6-digit reference customers quote on bank-transfer
	// top-ups so deposits can be matched to the account.
	BalanceCode        string `gorm:"size:6;index" json:"balance_code"`
	VerificationStatus string `gorm:"size:20;default:'unverified'" json:"verification_status"`
	// PendingTransportationFees accumulates shipment cost deltas entered by
	// admins on delivery tracking rows. The transport_fee_entries ledger
	// holds the per-change history.
	PendingTransportationFees int64          `gorm:"not null;default:0" json:"pending_transportation_fees"`
	DefaultAddressID          *uint          `json:"default_address_id"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
	DeletedAt                 gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == "admin" }
