package models

import "time"

// Favorite is a saved catalog product. Like order items it is a snapshot
// (name/price/image at save time), since the catalog lives upstream.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_fav_user_product,unique" json:"user_id"`
	ProductID string    `gorm:"size:64;not null;index:idx_fav_user_product,unique" json:"product_id"`
	Name      string    `gorm:"size:255" json:"name"`
	Price     int64     `json:"price"` // tetri
	ImageURL  string    `gorm:"size:512" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}
