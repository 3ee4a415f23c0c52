package persistence

import (
	"context"

	"gorm.io/gorm"

	appprocurement "github.com/siteops/backend/internal/application/procurement"
	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/stock"
)

// GormProcurementTransactionScope implements the procurement transaction
// scope using GORM transactions. Goods receipt postings run the bill write,
// the purchase order progress update and the stock increment in one
// database transaction.
type GormProcurementTransactionScope struct {
	db *gorm.DB
}

// NewGormProcurementTransactionScope creates a new GormProcurementTransactionScope
func NewGormProcurementTransactionScope(db *gorm.DB) *GormProcurementTransactionScope {
	return &GormProcurementTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormProcurementTransactionScope) Execute(ctx context.Context, fn func(repos appprocurement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProcurementRepositories{tx: tx})
	})
}

// gormProcurementRepositories provides repositories bound to a transaction
type gormProcurementRepositories struct {
	tx *gorm.DB
}

// PurchaseOrderRepo returns the purchase order repository scoped to the transaction
func (r *gormProcurementRepositories) PurchaseOrderRepo() procurement.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// IndentRepo returns the indent repository scoped to the transaction
func (r *gormProcurementRepositories) IndentRepo() procurement.IndentRepository {
	return NewGormIndentRepository(r.tx)
}

// InwardBillRepo returns the inward bill repository scoped to the transaction
func (r *gormProcurementRepositories) InwardBillRepo() procurement.InwardBillRepository {
	return NewGormInwardBillRepository(r.tx)
}

// SiteStockRepo returns the site stock repository scoped to the transaction
func (r *gormProcurementRepositories) SiteStockRepo() stock.SiteStockRepository {
	return NewGormSiteStockRepository(r.tx)
}

// Ensure interface compliance
var _ appprocurement.TransactionScope = (*GormProcurementTransactionScope)(nil)
var _ appprocurement.TransactionalRepositories = (*gormProcurementRepositories)(nil)
