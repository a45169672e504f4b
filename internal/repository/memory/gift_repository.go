package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"heartgift-be/internal/entity"
	"heartgift-be/internal/repository/contract"
	"heartgift-be/internal/repository/specification"

	"github.com/google/uuid"
)

// GiftRepository is an in-memory implementation of the gift persistence
// gateway. It backs the service tests and lets the server boot without
// Postgres in development.
type GiftRepository struct {
	mu    sync.RWMutex
	gifts map[uuid.UUID]*entity.GiftConfiguration
}

func NewGiftRepository() *GiftRepository {
	return &GiftRepository{
		gifts: make(map[uuid.UUID]*entity.GiftConfiguration),
	}
}

func (r *GiftRepository) Create(ctx context.Context, gift *entity.GiftConfiguration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gift.Id == uuid.Nil {
		gift.Id = uuid.New()
	}
	now := time.Now()
	gift.CreatedAt = now
	gift.UpdatedAt = now

	stored := *gift
	r.gifts[gift.Id] = &stored
	return nil
}

// match interprets the gorm-oriented specifications against an in-memory
// record. Unknown specification types are ignored, mirroring how an
// unconstrained query behaves.
func match(g *entity.GiftConfiguration, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if g.Id != spec.ID {
				return false
			}
		case specification.ByPaymentStatus:
			if g.PaymentStatus != spec.Status {
				return false
			}
		case specification.BySenderName:
			if g.SenderName != spec.SenderName {
				return false
			}
		case specification.ByTheme:
			if g.Theme != spec.Theme {
				return false
			}
		}
	}
	return true
}

func (r *GiftRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GiftConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.gifts {
		if match(g, specs) {
			copied := *g
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *GiftRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GiftConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.GiftConfiguration
	for _, g := range r.gifts {
		if match(g, specs) {
			copied := *g
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok {
			if p.Offset >= len(result) {
				return nil, nil
			}
			end := p.Offset + p.Limit
			if end > len(result) {
				end = len(result)
			}
			result = result[p.Offset:end]
		}
	}
	return result, nil
}

func (r *GiftRepository) Count(ctx context.Context, specs ...specification.Specification) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, g := range r.gifts {
		if match(g, specs) {
			count++
		}
	}
	return count, nil
}

func (r *GiftRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentId string, status entity.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.gifts[id]
	if !ok {
		return entity.ErrGiftNotFound
	}
	if g.PaymentStatus == status && g.PaymentId == paymentId {
		return nil
	}
	if !g.PaymentStatus.CanTransitionTo(status) {
		return entity.ErrInvalidTransition
	}
	g.PaymentId = paymentId
	g.PaymentStatus = status
	g.UpdatedAt = time.Now()
	return nil
}

var _ contract.GiftRepository = (*GiftRepository)(nil)
