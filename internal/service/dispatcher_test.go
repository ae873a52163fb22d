package service

import (
	"testing"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, body string
	fail              bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.fail {
		return assert.AnError
	}
	f.to, f.subject, f.body = to, subject, body
	return nil
}

func TestOrderConfirmation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)

	mail := &fakeMailer{}
	sender := &fakeSMSSender{}
	d := NewDispatcher(mail, sender, repository.NewOrderRepository(db), repository.NewSMSLogRepository(db))

	d.sendOrderConfirmation(order, user)

	assert.Equal(t, user.Email, mail.to)
	assert.Contains(t, mail.subject, order.OrderNumber)
	assert.Contains(t, mail.body, user.Username)
	assert.Contains(t, mail.body, "45.50")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, user.Phone, sender.sent[0].Phone)

	// success latches the flag and logs the attempt
	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.True(t, o.SMSNotificationSent)

	var logs []models.SMSLog
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Success)
}

func TestOrderConfirmationSMSFailure(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)

	d := NewDispatcher(&fakeMailer{}, &fakeSMSSender{fail: true}, repository.NewOrderRepository(db), repository.NewSMSLogRepository(db))
	d.sendOrderConfirmation(order, user)

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.False(t, o.SMSNotificationSent)

	var logs []models.SMSLog
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
}

func TestOrderConfirmationSkipsMissingChannels(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	user.Phone = ""
	require.NoError(t, db.Save(user).Error)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)

	sender := &fakeSMSSender{}
	d := NewDispatcher(&fakeMailer{}, sender, repository.NewOrderRepository(db), repository.NewSMSLogRepository(db))
	d.sendOrderConfirmation(order, user)

	assert.Len(t, sender.sent, 0)
	var count int64
	db.Model(&models.SMSLog{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
