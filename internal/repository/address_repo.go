package repository

import (
	"gamoiwere/internal/models"

	"gorm.io/gorm"
)

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) GetByID(id uint) (*models.Address, error) {
	var a models.Address
	err := r.db.First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) ListByUserID(userID uint) ([]models.Address, error) {
	var list []models.Address
	err := r.db.Where("user_id = ?", userID).Order("is_default DESC, created_at DESC").Find(&list).Error
	return list, err
}

// Create inserts the address; when it is marked default the sibling flags
// and the user's default_address_id back-reference are updated in the same
// transaction.
func (r *AddressRepository) Create(a *models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefault(tx, a.UserID); err != nil {
				return err
			}
		}
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if a.IsDefault {
			return tx.Model(&models.User{}).Where("id = ?", a.UserID).Update("default_address_id", a.ID).Error
		}
		return nil
	})
}

func (r *AddressRepository) Update(a *models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := clearDefault(tx, a.UserID); err != nil {
				return err
			}
		}
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		if a.IsDefault {
			return tx.Model(&models.User{}).Where("id = ?", a.UserID).Update("default_address_id", a.ID).Error
		}
		return nil
	})
}

func (r *AddressRepository) Delete(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		// Drop the back-reference if it pointed at the deleted row.
		return tx.Model(&models.User{}).
			Where("id = ? AND default_address_id = ?", userID, id).
			Update("default_address_id", nil).Error
	})
}

// SetDefault marks one address default and clears the rest.
func (r *AddressRepository) SetDefault(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var a models.Address
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
			return err
		}
		if err := clearDefault(tx, userID); err != nil {
			return err
		}
		if err := tx.Model(&a).Update("is_default", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("default_address_id", a.ID).Error
	})
}

func clearDefault(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true).Update("is_default", false).Error
}
