package contract

import (
	"context"

	"heartgift-be/internal/entity"
	"heartgift-be/internal/repository/specification"

	"github.com/google/uuid"
)

// GiftRepository is the persistence gateway for finalized gift
// configurations. Create assigns the identifier; callers must not assume the
// record exists until Create returns without error.
type GiftRepository interface {
	Create(ctx context.Context, gift *entity.GiftConfiguration) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GiftConfiguration, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GiftConfiguration, error)
	Count(ctx context.Context, specs ...specification.Specification) (int, error)

	// UpdatePaymentStatus is idempotent: repeating a call with the same
	// (id, paymentId, status) triple leaves the record unchanged. A transition
	// out of a terminal state fails with entity.ErrInvalidTransition.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentId string, status entity.PaymentStatus) error
}
