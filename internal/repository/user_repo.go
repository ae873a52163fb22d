package repository

import (
	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByBalanceCode(code string) (*models.User, error) {
	var u models.User
	err := r.db.Where("balance_code = ?", code).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) List(limit, offset int) ([]models.User, error) {
	var list []models.User
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// DebitBalance decrements the user's balance by amount in a single
// conditional UPDATE so two concurrent payments cannot both pass a stale
// balance check. Returns ErrInsufficientBalance when the guard fails.
func (r *UserRepository) DebitBalance(tx *gorm.DB, userID uint, amount int64) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// CreditBalance adds amount to the user's balance (admin top-up).
func (r *UserRepository) CreditBalance(tx *gorm.DB, userID uint, amount int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
}

// AddPendingTransportationFees applies a (possibly negative) delta to the
// accumulator. Callers append the matching TransportFeeEntry in the same
// transaction.
func (r *UserRepository) AddPendingTransportationFees(tx *gorm.DB, userID uint, delta int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("pending_transportation_fees", gorm.Expr("pending_transportation_fees + ?", delta)).Error
}
