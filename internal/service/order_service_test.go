package service

import (
	"strings"
	"testing"
	"time"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewUserRepository(db))

	in := CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: "p-1", Name: "ყურსასმენი", Price: 45.50, Quantity: 1},
		},
		TotalAmount:     45.50,
		ShippingCost:    5.00,
		ShippingAddress: "ჭავჭავაძის 5, თბილისი",
		DeliveryMethod:  domain.DeliveryMethodAir,
	}
	order, events, err := svc.Create(user.ID, in)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(4550), order.TotalAmount)
	assert.Equal(t, int64(500), order.ShippingCost)
	assert.Equal(t, int64(4550), order.Items[0].Price)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "GAM-"))
	require.NotNil(t, order.EstimatedDeliveryDate)
	wantDay := time.Now().AddDate(0, 0, 14).Format("2006-01-02")
	assert.Equal(t, wantDay, order.EstimatedDeliveryDate.Format("2006-01-02"))

	require.Len(t, events, 1)
	assert.Equal(t, EventOrderCreated, events[0].Type)
	assert.Equal(t, user.ID, events[0].User.ID)
}

func TestCreateOrderNumberPrefix(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewUserRepository(db))

	in := CreateOrderInput{
		Items:           []OrderItemInput{{ProductID: "p", Name: "n", Price: 1, Quantity: 1}},
		TotalAmount:     1,
		ShippingAddress: "addr",
		NumberPrefix:    "BOG",
	}
	order, _, err := svc.Create(user.ID, in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "BOG-"))
}

func TestCreateOrderEstimateByMethod(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewUserRepository(db))

	tests := []struct {
		method string
		days   int
	}{
		{domain.DeliveryMethodAir, 14},
		{domain.DeliveryMethodGround, 30},
		{domain.DeliveryMethodSea, 45},
		{"", 14},
	}
	for _, tt := range tests {
		in := CreateOrderInput{
			Items:           []OrderItemInput{{ProductID: "p", Name: "n", Price: 10, Quantity: 1}},
			TotalAmount:     10,
			ShippingAddress: "addr",
			DeliveryMethod:  tt.method,
		}
		order, _, err := svc.Create(user.ID, in)
		require.NoError(t, err)
		want := time.Now().AddDate(0, 0, tt.days).Format("2006-01-02")
		assert.Equal(t, want, order.EstimatedDeliveryDate.Format("2006-01-02"), "method %q", tt.method)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	svc := NewOrderService(repository.NewOrderRepository(db), repository.NewUserRepository(db))

	valid := CreateOrderInput{
		Items:           []OrderItemInput{{ProductID: "p", Name: "n", Price: 10, Quantity: 1}},
		TotalAmount:     10,
		ShippingAddress: "addr",
	}

	noItems := valid
	noItems.Items = nil
	_, _, err := svc.Create(user.ID, noItems)
	assert.ErrorIs(t, err, ErrNoItems)

	noAddr := valid
	noAddr.ShippingAddress = ""
	_, _, err = svc.Create(user.ID, noAddr)
	assert.ErrorIs(t, err, ErrNoAddress)

	badTotal := valid
	badTotal.TotalAmount = 0
	_, _, err = svc.Create(user.ID, badTotal)
	assert.ErrorIs(t, err, ErrInvalidTotal)

	badQty := valid
	badQty.Items = []OrderItemInput{{ProductID: "p", Name: "n", Price: 10, Quantity: 0}}
	_, _, err = svc.Create(user.ID, badQty)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
