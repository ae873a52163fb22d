package repository

import (
	"gamoiwere/internal/models"

	"gorm.io/gorm"
)

type SMSLogRepository struct {
	db *gorm.DB
}

func NewSMSLogRepository(db *gorm.DB) *SMSLogRepository {
	return &SMSLogRepository{db: db}
}

func (r *SMSLogRepository) Create(l *models.SMSLog) error {
	return r.db.Create(l).Error
}

func (r *SMSLogRepository) List(limit, offset int) ([]models.SMSLog, error) {
	var list []models.SMSLog
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
