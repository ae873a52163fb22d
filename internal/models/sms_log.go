package models

import "time"

// SMSLog records every outbound SMS attempt, successful or not, with the
// raw gateway response for operational debugging.
type SMSLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Message   string    `gorm:"type:text" json:"message"`
	Success   bool      `gorm:"index" json:"success"`
	Response  string    `gorm:"type:text" json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

func (SMSLog) TableName() string {
	return "sms_logs"
}
