// Package payment defines the payment gateway contract and its
// implementations. Callers must never conflate "card declined" (a rejected
// Authorization) with "service down" (ErrGatewayUnavailable).
package payment

import (
	"context"

	"heartgift-be/internal/entity"
)

type Status string

const (
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Authorization struct {
	PaymentID string
	Status    Status
}

// Gateway authorizes a purchase against a plan price. The caller supplies
// the order id so provider notifications can be correlated back to the gift.
// Transport failures surface as entity.ErrGatewayUnavailable; a deadline
// expiry surfaces as entity.ErrGatewayTimeout. A declined card is a
// successful call returning StatusRejected.
type Gateway interface {
	Authorize(ctx context.Context, orderId string, tier entity.PlanTier, amountBRL float64) (*Authorization, error)
}
