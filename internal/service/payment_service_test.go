package service

import (
	"encoding/json"
	"testing"

	"gamoiwere/config"
	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testBank = config.BankConfig{
	BankName:      "საქართველოს ბანკი",
	Beneficiary:   "შპს გამოიწერე",
	AccountNumber: "GE29BG0000000123456789",
	SwiftCode:     "BAGAGE22",
}

func newPaymentService(db *gorm.DB) *PaymentService {
	return NewPaymentService(
		db,
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewUserRepository(db),
		testBank,
	)
}

func TestPayWithBalanceFull(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 10000)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)
	svc := newPaymentService(db)

	res, err := svc.PayWithBalance(user.ID, order.ID, 4550)
	require.NoError(t, err)

	assert.True(t, res.FullyPaid)
	assert.Equal(t, int64(0), res.RemainingAmount)
	assert.Equal(t, domain.OrderStatusPaid, res.NewOrderStatus)
	assert.Equal(t, domain.PaymentStatusPaid, res.Payment.Status)
	assert.Equal(t, domain.PaymentMethodBalance, res.Payment.Method)

	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(5450), u.Balance)

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, domain.OrderStatusPaid, o.Status)
}

func TestPayWithBalancePartial(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 3000)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)
	svc := newPaymentService(db)

	res, err := svc.PayWithBalance(user.ID, order.ID, 3000)
	require.NoError(t, err)

	assert.False(t, res.FullyPaid)
	assert.Equal(t, int64(1550), res.RemainingAmount)
	assert.Equal(t, domain.OrderStatusProcessing, res.NewOrderStatus)

	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(0), u.Balance)
}

func TestPayWithBalanceInsufficient(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 1000)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)
	svc := newPaymentService(db)

	_, err := svc.PayWithBalance(user.ID, order.ID, 4550)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// nothing moved
	var u models.User
	require.NoError(t, db.First(&u, user.ID).Error)
	assert.Equal(t, int64(1000), u.Balance)

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, domain.OrderStatusPending, o.Status)

	var count int64
	db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPayWithBalanceRejections(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, 10000)
	stranger := seedUser(t, db, 10000)
	order := seedOrder(t, db, owner.ID, domain.OrderStatusPending, 4550)
	svc := newPaymentService(db)

	_, err := svc.PayWithBalance(stranger.ID, order.ID, 4550)
	assert.ErrorIs(t, err, domain.ErrOrderNotOwned)

	paid := seedOrder(t, db, owner.ID, domain.OrderStatusPaid, 4550)
	_, err = svc.PayWithBalance(owner.ID, paid.ID, 4550)
	assert.ErrorIs(t, err, domain.ErrOrderNotPayable)

	_, err = svc.PayWithBalance(owner.ID, order.ID, 0)
	assert.ErrorIs(t, err, domain.ErrOrderNotPayable)

	// amount above the order total is refused
	_, err = svc.PayWithBalance(owner.ID, order.ID, 5000)
	assert.ErrorIs(t, err, domain.ErrOrderNotPayable)

	_, err = svc.PayWithBalance(owner.ID, 99999, 4550)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestPayWithBalanceTopsUpProcessingOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 4550)
	order := seedOrder(t, db, user.ID, domain.OrderStatusProcessing, 4550)
	svc := newPaymentService(db)

	res, err := svc.PayWithBalance(user.ID, order.ID, 4550)
	require.NoError(t, err)
	assert.True(t, res.FullyPaid)
	assert.Equal(t, domain.OrderStatusPaid, res.NewOrderStatus)
}

func TestPayWithBankTransfer(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)
	svc := newPaymentService(db)

	payment, err := svc.PayWithBankTransfer(user.ID, order.ID, "გიორგი ბერიძე")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Equal(t, int64(4550), payment.Amount)
	assert.Equal(t, "გიორგი ბერიძე", payment.PayerName)

	var details map[string]string
	require.NoError(t, json.Unmarshal([]byte(payment.BankDetails), &details))
	assert.Equal(t, testBank.AccountNumber, details["account_number"])
	assert.Equal(t, testBank.SwiftCode, details["swift_code"])

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, domain.OrderStatusProcessing, o.Status)

	// a second transfer against the held order is refused
	_, err = svc.PayWithBankTransfer(user.ID, order.ID, "გიორგი ბერიძე")
	assert.ErrorIs(t, err, domain.ErrOrderNotPayable)
}

func TestConfirmBankTransfer(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)
	svc := newPaymentService(db)

	payment, err := svc.PayWithBankTransfer(user.ID, order.ID, "ნინო კაპანაძე")
	require.NoError(t, err)

	confirmed, err := svc.ConfirmBankTransfer(payment.ID, "TBC-20260830-001")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, confirmed.Status)
	assert.Equal(t, "TBC-20260830-001", confirmed.TransactionID)

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, domain.OrderStatusPaid, o.Status)

	// confirming twice must not double-settle
	_, err = svc.ConfirmBankTransfer(payment.ID, "TBC-20260830-002")
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)

	_, err = svc.ConfirmBankTransfer(99999, "x")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestConfirmBankTransferAtomicWithOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, 0)
	order := seedOrder(t, db, user.ID, domain.OrderStatusPending, 4550)
	svc := newPaymentService(db)

	payment, err := svc.PayWithBankTransfer(user.ID, order.ID, "ლევან წიკლაური")
	require.NoError(t, err)

	// the order gets cancelled while the transfer sits unconfirmed; the
	// confirm must fail and the payment row must stay PENDING
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", domain.OrderStatusCancelled).Error)

	_, err = svc.ConfirmBankTransfer(payment.ID, "TBC-20260830-003")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	var p models.Payment
	require.NoError(t, db.First(&p, payment.ID).Error)
	assert.Equal(t, domain.PaymentStatusPending, p.Status)
	assert.Empty(t, p.TransactionID)

	var o models.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, domain.OrderStatusCancelled, o.Status)
}
