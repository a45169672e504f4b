package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"heartgift-be/internal/entity"
	"heartgift-be/internal/mapper"
	"heartgift-be/internal/model"
	"heartgift-be/internal/repository/contract"
	"heartgift-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GiftRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GiftMapper
}

func NewGiftRepository(db *gorm.DB) contract.GiftRepository {
	return &GiftRepositoryImpl{
		db:     db,
		mapper: mapper.NewGiftMapper(),
	}
}

func (r *GiftRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GiftRepositoryImpl) Create(ctx context.Context, gift *entity.GiftConfiguration) error {
	if gift.Id == uuid.Nil {
		gift.Id = uuid.New()
	}
	m := r.mapper.ToModel(gift)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("%w: %v", entity.ErrPersistenceFailed, err)
	}
	*gift = *r.mapper.ToEntity(m)
	return nil
}

func (r *GiftRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GiftConfiguration, error) {
	var m model.Gift
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GiftRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GiftConfiguration, error) {
	var models []*model.Gift
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.GiftConfiguration, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *GiftRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Gift{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *GiftRepositoryImpl) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, paymentId string, status entity.PaymentStatus) error {
	var m model.Gift
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrGiftNotFound
		}
		return err
	}

	current := entity.PaymentStatus(m.PaymentStatus)
	if current == status && m.PaymentId == paymentId {
		// Webhook retry, nothing to do.
		return nil
	}
	if !current.CanTransitionTo(status) {
		return entity.ErrInvalidTransition
	}

	return r.db.WithContext(ctx).Model(&model.Gift{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_id":     paymentId,
			"payment_status": string(status),
			"updated_at":     time.Now(),
		}).Error
}
