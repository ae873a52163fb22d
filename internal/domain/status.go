package domain

import "errors"

var ErrInvalidTransition = errors.New("invalid order status transition")

// orderTransitions lists the allowed forward moves for an order.
// CANCELLED is terminal and only reachable before money has settled.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusPaid, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to
// another. Same-status writes are allowed so repeated gateway callbacks
// stay idempotent.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
