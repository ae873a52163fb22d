package repository

import (
	"errors"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var p models.Payment
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ExistsForOrder reports whether the order already has a payment with the
// given method and status. Used to keep retried gateway callbacks from
// inserting duplicate rows.
func (r *PaymentRepository) ExistsForOrder(orderID uint, method, status string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).
		Where("order_id = ? AND method = ? AND status = ?", orderID, method, status).
		Count(&count).Error
	return count > 0, err
}

func (r *PaymentRepository) ListByOrderID(orderID uint) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&list).Error
	return list, err
}

// Update persists the full payment row. Pass a tx to join a caller-owned
// transaction.
func (r *PaymentRepository) Update(tx *gorm.DB, p *models.Payment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(p).Error
}
