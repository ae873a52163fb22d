package repository

import (
	"errors"

	"gamoiwere/internal/models"

	"gorm.io/gorm"
)

type TrackingRepository struct {
	db *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

func (r *TrackingRepository) GetByOrderID(orderID uint) (*models.DeliveryTracking, error) {
	var t models.DeliveryTracking
	err := r.db.Where("order_id = ?", orderID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUserID joins through orders so a customer sees tracking for their
// own orders only.
func (r *TrackingRepository) ListByUserID(userID uint) ([]models.DeliveryTracking, error) {
	var list []models.DeliveryTracking
	err := r.db.
		Joins("JOIN orders ON orders.id = delivery_tracking.order_id").
		Where("orders.user_id = ?", userID).
		Order("delivery_tracking.updated_at DESC").
		Find(&list).Error
	return list, err
}

func (r *TrackingRepository) AppendFeeEntry(tx *gorm.DB, e *models.TransportFeeEntry) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(e).Error
}
