package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"gamoiwere/internal/database"
	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, balance int64) *models.User {
	t.Helper()
	u := &models.User{
		Username:    fmt.Sprintf("buyer%d", testDBSeq.Add(1)),
		Email:       fmt.Sprintf("buyer%d@example.ge", testDBSeq.Add(1)),
		Phone:       "+995599123456",
		Role:        domain.RoleUser,
		Balance:     balance,
		BalanceCode: "123456",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, status string, totalTetri int64) *models.Order {
	t.Helper()
	o := &models.Order{
		OrderNumber: fmt.Sprintf("GAM-test-%d", testDBSeq.Add(1)),
		UserID:      userID,
		Status:      status,
		Items: models.OrderItems{
			{ProductID: "p-1", Name: "USB კაბელი", Price: totalTetri, Quantity: 1},
		},
		TotalAmount:     totalTetri,
		ShippingAddress: "რუსთაველის გამზ. 12, თბილისი",
		DeliveryMethod:  domain.DeliveryMethodAir,
		RecipientPhone:  "+995599123456",
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

// fakeSMSSender records outbound messages; fail makes every send error.
type fakeSMSSender struct {
	sent []fakeSMS
	fail bool
}

type fakeSMS struct {
	Phone   string
	Message string
}

func (f *fakeSMSSender) Send(_ context.Context, phone, message string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("gateway unavailable")
	}
	f.sent = append(f.sent, fakeSMS{Phone: phone, Message: message})
	return `{"statusID":1}`, nil
}

func newTrackingService(db *gorm.DB, sender *fakeSMSSender) *TrackingService {
	users := repository.NewUserRepository(db)
	return NewTrackingService(
		db,
		repository.NewTrackingRepository(db),
		repository.NewOrderRepository(db),
		users,
		repository.NewSMSLogRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
		sender,
	)
}
