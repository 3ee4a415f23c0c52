package procurement

import (
	"context"

	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the procurement
// repositories. A goods receipt posting writes the bill, the purchase order
// progress and the site stock increments together; an indent conversion
// writes the new order and the indent status together. Each group must
// commit or roll back as one.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the procurement-side
// repositories within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// PurchaseOrderRepo returns the purchase order repository scoped to the current transaction
	PurchaseOrderRepo() procurement.PurchaseOrderRepository
	// IndentRepo returns the indent repository scoped to the current transaction
	IndentRepo() procurement.IndentRepository
	// InwardBillRepo returns the inward bill repository scoped to the current transaction
	InwardBillRepo() procurement.InwardBillRepository
	// SiteStockRepo returns the site stock repository scoped to the current transaction
	SiteStockRepo() stock.SiteStockRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	orderRepo  procurement.PurchaseOrderRepository
	indentRepo procurement.IndentRepository
	billRepo   procurement.InwardBillRepository
	stockRepo  stock.SiteStockRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo procurement.PurchaseOrderRepository,
	indentRepo procurement.IndentRepository,
	billRepo procurement.InwardBillRepository,
	stockRepo stock.SiteStockRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:  orderRepo,
		indentRepo: indentRepo,
		billRepo:   billRepo,
		stockRepo:  stockRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseOrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) PurchaseOrderRepo() procurement.PurchaseOrderRepository {
	return s.orderRepo
}

// IndentRepo returns the indent repository.
func (s *NoOpTransactionScope) IndentRepo() procurement.IndentRepository {
	return s.indentRepo
}

// InwardBillRepo returns the inward bill repository.
func (s *NoOpTransactionScope) InwardBillRepo() procurement.InwardBillRepository {
	return s.billRepo
}

// SiteStockRepo returns the site stock repository.
func (s *NoOpTransactionScope) SiteStockRepo() stock.SiteStockRepository {
	return s.stockRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
