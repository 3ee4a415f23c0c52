package stock

import (
	"context"

	"github.com/siteops/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories a
// consumption posting touches. The consumption record and the stock
// deductions for every line must commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock-side repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// SiteStockRepo returns the site stock repository scoped to the current transaction
	SiteStockRepo() stock.SiteStockRepository
	// ConsumptionRepo returns the daily consumption repository scoped to the current transaction
	ConsumptionRepo() stock.DailyConsumptionRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	stockRepo       stock.SiteStockRepository
	consumptionRepo stock.DailyConsumptionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stockRepo stock.SiteStockRepository,
	consumptionRepo stock.DailyConsumptionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:       stockRepo,
		consumptionRepo: consumptionRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SiteStockRepo returns the site stock repository.
func (s *NoOpTransactionScope) SiteStockRepo() stock.SiteStockRepository {
	return s.stockRepo
}

// ConsumptionRepo returns the daily consumption repository.
func (s *NoOpTransactionScope) ConsumptionRepo() stock.DailyConsumptionRepository {
	return s.consumptionRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
