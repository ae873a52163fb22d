package service

import (
	"testing"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertTrackingCreate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPaid, 4550)
	sender := &fakeSMSSender{}
	svc := newTrackingService(db, sender)

	row, err := svc.Upsert(order.ID, UpsertTrackingInput{
		DeliveryStatus:      domain.DeliveryStatusOrdered,
		TrackingNumber:      "YT2026080112345",
		ProductWeight:       1.2,
		TransportationPrice: 10.00,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), row.TransportationPrice)
	assert.NotNil(t, row.OrderedAt)
	assert.Nil(t, row.ReceivedChinaAt)

	// first insert charges the full price
	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(1000), u.PendingTransportationFees)

	var entries []models.TransportFeeEntry
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1000), entries[0].Delta)
}

func TestUpsertTrackingPriceDelta(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPaid, 4550)
	sender := &fakeSMSSender{}
	svc := newTrackingService(db, sender)

	_, err := svc.Upsert(order.ID, UpsertTrackingInput{
		DeliveryStatus:      domain.DeliveryStatusOrdered,
		TransportationPrice: 10.00,
	})
	require.NoError(t, err)

	row, err := svc.Upsert(order.ID, UpsertTrackingInput{
		DeliveryStatus:      domain.DeliveryStatusReceivedChina,
		TransportationPrice: 15.00,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), row.TransportationPrice)
	assert.NotNil(t, row.OrderedAt)
	assert.NotNil(t, row.ReceivedChinaAt)

	// only the delta lands on the accumulator
	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(1500), u.PendingTransportationFees)

	var entries []models.TransportFeeEntry
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1000), entries[0].Delta)
	assert.Equal(t, int64(500), entries[1].Delta)

	// milestone notification in Georgian
	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id ASC").Find(&notifs).Error)
	require.Len(t, notifs, 2)
	assert.Equal(t, "შეკვეთა მივიდა საწყობში", notifs[1].Title)
	assert.Contains(t, notifs[1].Message, order.OrderNumber)

	// SMS attempted and logged
	require.Len(t, sender.sent, 2)
	assert.Equal(t, user.Phone, sender.sent[1].Phone)
	var logs []models.SMSLog
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
	assert.Len(t, logs, 2)
	assert.True(t, logs[1].Success)
}

func TestUpsertTrackingNegativeDelta(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPaid, 4550)
	svc := newTrackingService(db, &fakeSMSSender{})

	_, err := svc.Upsert(order.ID, UpsertTrackingInput{TransportationPrice: 20.00})
	require.NoError(t, err)
	_, err = svc.Upsert(order.ID, UpsertTrackingInput{TransportationPrice: 12.50})
	require.NoError(t, err)

	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(1250), u.PendingTransportationFees)
}

func TestUpsertTrackingUnchangedPriceWritesNoEntry(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPaid, 4550)
	svc := newTrackingService(db, &fakeSMSSender{})

	_, err := svc.Upsert(order.ID, UpsertTrackingInput{TransportationPrice: 10.00})
	require.NoError(t, err)
	_, err = svc.Upsert(order.ID, UpsertTrackingInput{
		DeliveryStatus:      domain.DeliveryStatusSentTbilisi,
		TransportationPrice: 10.00,
	})
	require.NoError(t, err)

	var count int64
	db.Model(&models.TransportFeeEntry{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpsertTrackingSMSFailureStillLogged(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPaid, 4550)
	sender := &fakeSMSSender{fail: true}
	svc := newTrackingService(db, sender)

	_, err := svc.Upsert(order.ID, UpsertTrackingInput{
		DeliveryStatus:      domain.DeliveryStatusDeliveredTbilisi,
		TransportationPrice: 10.00,
	})
	require.NoError(t, err)

	// the notification row is still written
	var notifs []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&notifs).Error)
	require.Len(t, notifs, 1)

	// and the failed attempt is in the log
	var logs []models.SMSLog
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
	assert.Contains(t, logs[0].Response, "gateway unavailable")
}

func TestUpsertTrackingUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTrackingService(db, &fakeSMSSender{})

	_, err := svc.Upsert(99999, UpsertTrackingInput{TransportationPrice: 10.00})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestMilestoneTimestampNotRestamped(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPaid, 4550)
	svc := newTrackingService(db, &fakeSMSSender{})

	first, err := svc.Upsert(order.ID, UpsertTrackingInput{
		DeliveryStatus:      domain.DeliveryStatusOrdered,
		TransportationPrice: 10.00,
	})
	require.NoError(t, err)
	stamped := *first.OrderedAt

	second, err := svc.Upsert(order.ID, UpsertTrackingInput{
		DeliveryStatus:      domain.DeliveryStatusOrdered,
		TransportationPrice: 10.00,
	})
	require.NoError(t, err)
	assert.True(t, second.OrderedAt.Equal(stamped))
}
