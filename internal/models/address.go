package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a saved delivery address. At most one row per user has
// is_default set; the repository clears siblings in the same transaction.
type Address struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Title          string         `gorm:"size:64" json:"title"`
	RecipientName  string         `gorm:"size:128" json:"recipient_name"`
	RecipientPhone string         `gorm:"size:32" json:"recipient_phone"`
	StreetAddress  string         `gorm:"size:512;not null" json:"street_address"`
	City           string         `gorm:"size:128" json:"city"`
	PostalCode     string         `gorm:"size:16" json:"postal_code"`
	Region         string         `gorm:"size:128" json:"region"`
	IsDefault      bool           `gorm:"default:false;index" json:"is_default"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
