package payment

import (
	"context"
	"fmt"

	"heartgift-be/internal/entity"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransGateway charges through the Midtrans core API. One charge per
// checkout attempt; the caller's order id doubles as our payment id so
// webhook notifications can be correlated back to the gift.
type MidtransGateway struct {
	client  coreapi.Client
	timeout TimeoutFunc
}

// TimeoutFunc lets tests replace the deadline guard.
type TimeoutFunc func(ctx context.Context, call func() (*Authorization, error)) (*Authorization, error)

func NewMidtransGateway(serverKey string, isProduction bool) *MidtransGateway {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(serverKey, env)

	return &MidtransGateway{
		client:  client,
		timeout: guardWithContext,
	}
}

func (g *MidtransGateway) Authorize(ctx context.Context, orderId string, tier entity.PlanTier, amountBRL float64) (*Authorization, error) {
	call := func() (*Authorization, error) {
		req := &coreapi.ChargeReq{
			PaymentType: coreapi.PaymentTypeQris,
			TransactionDetails: midtrans.TransactionDetails{
				OrderID:  orderId,
				GrossAmt: int64(amountBRL * 100),
			},
			Items: &[]midtrans.ItemDetails{
				{
					ID:    string(tier),
					Price: int64(amountBRL * 100),
					Qty:   1,
					Name:  fmt.Sprintf("Gift page (%s plan)", tier),
				},
			},
		}

		resp, midErr := g.client.ChargeTransaction(req)
		if midErr != nil {
			// A declined card arrives as a successful response with a deny
			// status; an error here means the service itself failed.
			return nil, fmt.Errorf("%w: %s", entity.ErrGatewayUnavailable, midErr.GetMessage())
		}

		auth := &Authorization{PaymentID: orderId}
		switch resp.TransactionStatus {
		case "capture", "settlement":
			auth.Status = StatusApproved
		default:
			auth.Status = StatusRejected
		}
		return auth, nil
	}

	return g.timeout(ctx, call)
}

// guardWithContext runs the charge call and abandons it when the context's
// deadline expires, returning the distinct timeout error kind.
func guardWithContext(ctx context.Context, call func() (*Authorization, error)) (*Authorization, error) {
	type result struct {
		auth *Authorization
		err  error
	}

	done := make(chan result, 1)
	go func() {
		auth, err := call()
		done <- result{auth, err}
	}()

	select {
	case r := <-done:
		return r.auth, r.err
	case <-ctx.Done():
		return nil, entity.ErrGatewayTimeout
	}
}
