package persistence

import (
	"context"

	"gorm.io/gorm"

	appstock "github.com/siteops/backend/internal/application/stock"
	"github.com/siteops/backend/internal/domain/stock"
)

// GormStockTransactionScope implements the stock transaction scope using
// GORM transactions. Consumption postings decrement the stock rows and write
// the consumption record in one database transaction.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStockRepositories{tx: tx})
	})
}

// gormStockRepositories provides repositories bound to a transaction
type gormStockRepositories struct {
	tx *gorm.DB
}

// SiteStockRepo returns the site stock repository scoped to the transaction
func (r *gormStockRepositories) SiteStockRepo() stock.SiteStockRepository {
	return NewGormSiteStockRepository(r.tx)
}

// ConsumptionRepo returns the daily consumption repository scoped to the transaction
func (r *gormStockRepositories) ConsumptionRepo() stock.DailyConsumptionRepository {
	return NewGormDailyConsumptionRepository(r.tx)
}

// Ensure interface compliance
var _ appstock.TransactionScope = (*GormStockTransactionScope)(nil)
var _ appstock.TransactionalRepositories = (*gormStockRepositories)(nil)
