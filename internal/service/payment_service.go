package service

import (
	"encoding/json"

	"gamoiwere/config"
	"gamoiwere/internal/domain"
	"gamoiwere/internal/models"
	"gamoiwere/internal/repository"

	"gorm.io/gorm"
)

// PaymentService implements the bank-transfer and balance strategies. The
// card strategy lives in the BOG handler because its lifecycle is driven
// by the gateway callback rather than a synchronous call.
type PaymentService struct {
	db       *gorm.DB
	orders   *repository.OrderRepository
	payments *repository.PaymentRepository
	users    *repository.UserRepository
	bank     config.BankConfig
}

func NewPaymentService(db *gorm.DB, orders *repository.OrderRepository, payments *repository.PaymentRepository, users *repository.UserRepository, bank config.BankConfig) *PaymentService {
	return &PaymentService{db: db, orders: orders, payments: payments, users: users, bank: bank}
}

// isPayable is the per-strategy payability rule. Bank transfer starts the
// PROCESSING hold itself so it only accepts PENDING; balance may top up an
// order another strategy already moved to PROCESSING.
func isPayable(order *models.Order, method string) bool {
	switch method {
	case domain.PaymentMethodBankTransfer:
		return order.Status == domain.OrderStatusPending
	case domain.PaymentMethodBalance, domain.PaymentMethodCard:
		return order.Status == domain.OrderStatusPending || order.Status == domain.OrderStatusProcessing
	}
	return false
}

func (s *PaymentService) checkOrder(requesterID, orderID uint, method string) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID {
		return nil, domain.ErrOrderNotOwned
	}
	if !isPayable(order, method) {
		return nil, domain.ErrOrderNotPayable
	}
	return order, nil
}

// PayWithBankTransfer records a PENDING payment carrying the static bank
// details snapshot and puts the order on PROCESSING hold until an admin
// confirms the transfer arrived.
func (s *PaymentService) PayWithBankTransfer(requesterID, orderID uint, payerName string) (*models.Payment, error) {
	order, err := s.checkOrder(requesterID, orderID, domain.PaymentMethodBankTransfer)
	if err != nil {
		return nil, err
	}
	details, _ := json.Marshal(map[string]string{
		"bank_name":      s.bank.BankName,
		"beneficiary":    s.bank.Beneficiary,
		"account_number": s.bank.AccountNumber,
		"swift_code":     s.bank.SwiftCode,
	})
	payment := &models.Payment{
		OrderID:     order.ID,
		UserID:      requesterID,
		Amount:      order.TotalAmount,
		Method:      domain.PaymentMethodBankTransfer,
		Status:      domain.PaymentStatusPending,
		PayerName:   payerName,
		BankDetails: string(details),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", domain.OrderStatusProcessing).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// ConfirmBankTransfer is the admin reconciliation step: the human verified
// the transfer on the bank statement. Confirming an already-PAID payment
// is rejected so nothing is credited twice. The payment and order writes
// share one transaction; either both settle or neither does.
func (s *PaymentService) ConfirmBankTransfer(paymentID uint, transactionID string) (*models.Payment, error) {
	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == domain.PaymentStatusPaid {
		return nil, domain.ErrAlreadyConfirmed
	}
	payment.Status = domain.PaymentStatusPaid
	payment.TransactionID = transactionID
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.payments.Update(tx, payment); err != nil {
			return err
		}
		return s.orders.UpdateStatus(tx, payment.OrderID, domain.OrderStatusPaid)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

type BalancePaymentResult struct {
	Payment         *models.Payment `json:"payment"`
	FullyPaid       bool            `json:"fully_paid"`
	RemainingAmount int64           `json:"remaining_amount"`
	NewOrderStatus  string          `json:"new_order_status"`
}

// PayWithBalance debits the user and records a PAID payment in one
// transaction. The debit is a conditional UPDATE guarded on the current
// balance, so concurrent payments cannot overdraw. amount is in tetri,
// already re-validated against the order total by the caller contract: it
// must not exceed the order total.
func (s *PaymentService) PayWithBalance(requesterID, orderID uint, amount int64) (*BalancePaymentResult, error) {
	order, err := s.checkOrder(requesterID, orderID, domain.PaymentMethodBalance)
	if err != nil {
		return nil, err
	}
	if amount <= 0 || amount > order.TotalAmount {
		return nil, domain.ErrOrderNotPayable
	}
	newStatus := domain.OrderStatusProcessing
	if amount >= order.TotalAmount {
		newStatus = domain.OrderStatusPaid
	}
	payment := &models.Payment{
		OrderID: order.ID,
		UserID:  requesterID,
		Amount:  amount,
		Method:  domain.PaymentMethodBalance,
		Status:  domain.PaymentStatusPaid,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.DebitBalance(tx, requesterID, amount); err != nil {
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", newStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return &BalancePaymentResult{
		Payment:         payment,
		FullyPaid:       newStatus == domain.OrderStatusPaid,
		RemainingAmount: order.TotalAmount - amount,
		NewOrderStatus:  newStatus,
	}, nil
}
