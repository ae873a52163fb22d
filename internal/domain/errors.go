package domain

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotOwned       = errors.New("order does not belong to requester")
	ErrOrderNotPayable     = errors.New("order is not in a payable status")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyConfirmed    = errors.New("payment already confirmed")
	ErrPaymentNotFound     = errors.New("payment not found")
)
