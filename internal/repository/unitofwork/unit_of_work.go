package unitofwork

import (
	"context"

	"heartgift-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GiftRepository() contract.GiftRepository
}
