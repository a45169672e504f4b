package memory

import (
	"context"
	"fmt"

	"heartgift-be/internal/repository/contract"
	"heartgift-be/internal/repository/unitofwork"
)

// Factory satisfies unitofwork.RepositoryFactory over the in-memory store.
// Begin/Commit/Rollback are no-ops; there is no transactional backend.
type Factory struct {
	gifts *GiftRepository
}

func NewFactory() *Factory {
	return &Factory{gifts: NewGiftRepository()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &uow{gifts: f.gifts}
}

type uow struct {
	gifts *GiftRepository
	inTx  bool
}

func (u *uow) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *uow) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.inTx = false
	return nil
}

func (u *uow) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.inTx = false
	return nil
}

func (u *uow) GiftRepository() contract.GiftRepository {
	return u.gifts
}
