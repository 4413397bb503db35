package unitofwork

import "context"

// RepositoryFactory hands out unit-of-work instances. Services hold the
// factory, never a live transaction.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
