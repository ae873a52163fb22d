package database

import (
	"fmt"
	"log"
	"math/rand"

	"gamoiwere/config"
	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Order{},
		&models.Payment{},
		&models.DeliveryTracking{},
		&models.TransportFeeEntry{},
		&models.Favorite{},
		&models.Notification{},
		&models.SMSLog{},
	)
}

// SeedAdmin creates the back-office account on first boot if missing.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	admin := &models.User{
		Username:     "admin",
		Email:        "admin@gamoiwere.ge",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		BalanceCode:  NewBalanceCode(),
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	log.Printf("seeded admin user %s, change the default password", admin.Email)
}

// NewBalanceCode returns a 6-digit code used as the bank reference for
// balance top-ups. Uniqueness is not required; the code narrows the lookup
// and the admin matches the payer name.
func NewBalanceCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
