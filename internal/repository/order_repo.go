package repository

import (
	"errors"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *models.Order) error {
	return r.db.Create(o).Error
}

func (r *OrderRepository) GetByID(id uint) (*models.Order, error) {
	var o models.Order
	err := r.db.First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByExternalOrderID(externalID string) (*models.Order, error) {
	var o models.Order
	err := r.db.Where("external_order_id = ?", externalID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByUserID(userID uint, limit, offset int) ([]models.Order, error) {
	var list []models.Order
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// List is the admin view; status filters when non-empty.
func (r *OrderRepository) List(status string, limit, offset int) ([]models.Order, error) {
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Order
	err := q.Find(&list).Error
	return list, err
}

// UpdateStatus is the single gate for order status writes. It re-reads the
// row inside a transaction and rejects moves the transition table does not
// allow. Pass a tx to join a caller-owned transaction.
func (r *OrderRepository) UpdateStatus(tx *gorm.DB, orderID uint, to string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		if !domain.CanTransition(o.Status, to) {
			return domain.ErrInvalidTransition
		}
		if o.Status == to {
			return nil
		}
		return tx.Model(&o).Update("status", to).Error
	})
}

// SetGatewayFields back-fills the BOG correlation data after remote order
// creation succeeds.
func (r *OrderRepository) SetGatewayFields(orderID uint, externalOrderID, bogOrderID, paymentURL string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"external_order_id": externalOrderID,
		"bog_order_id":      bogOrderID,
		"bog_payment_url":   paymentURL,
	}).Error
}

func (r *OrderRepository) SetCallbackState(orderID uint, bogStatus, rawPayload string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"bog_status":           bogStatus,
		"bog_callback_payload": rawPayload,
	}).Error
}

func (r *OrderRepository) MarkSMSNotificationSent(orderID uint) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Update("sms_notification_sent", true).Error
}
