package payment

import (
	"context"
	"strings"

	"heartgift-be/internal/entity"
)

// SandboxGateway is the deterministic stand-in used in development and
// tests: approves everything unless configured otherwise.
type SandboxGateway struct {
	// RejectTiers forces a rejected authorization for the listed tiers.
	RejectTiers []entity.PlanTier
	// Unavailable makes every call fail with ErrGatewayUnavailable.
	Unavailable bool
}

func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{}
}

func (g *SandboxGateway) Authorize(ctx context.Context, orderId string, tier entity.PlanTier, amountBRL float64) (*Authorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, entity.ErrGatewayTimeout
	}
	if g.Unavailable {
		return nil, entity.ErrGatewayUnavailable
	}

	auth := &Authorization{
		PaymentID: orderId,
		Status:    StatusApproved,
	}

	for _, t := range g.RejectTiers {
		if t == tier {
			auth.Status = StatusRejected
			break
		}
	}

	return auth, nil
}

// NewGateway picks an implementation by provider name. Unknown names fall
// back to the sandbox so a misconfigured environment never charges anyone.
func NewGateway(provider, serverKey string, isProduction bool) Gateway {
	switch strings.ToLower(provider) {
	case "midtrans":
		return NewMidtransGateway(serverKey, isProduction)
	default:
		return NewSandboxGateway()
	}
}
