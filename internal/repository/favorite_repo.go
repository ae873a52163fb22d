package repository

import (
	"gamoiwere/internal/models"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(f *models.Favorite) error {
	return r.db.Create(f).Error
}

func (r *FavoriteRepository) Remove(userID uint, productID string) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{}).Error
}

func (r *FavoriteRepository) IsFavorite(userID uint, productID string) (bool, error) {
	var c int64
	err := r.db.Model(&models.Favorite{}).Where("user_id = ? AND product_id = ?", userID, productID).Count(&c).Error
	return c > 0, err
}

func (r *FavoriteRepository) ListByUserID(userID uint, limit, offset int) ([]models.Favorite, error) {
	var list []models.Favorite
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
