package persistence

import (
	"context"

	"gorm.io/gorm"

	appworkforce "github.com/siteops/backend/internal/application/workforce"
	"github.com/siteops/backend/internal/domain/workforce"
)

// GormWorkforceTransactionScope implements the workforce transaction scope
// using GORM transactions. Transfers update the worker's site and write the
// transfer record in one database transaction.
type GormWorkforceTransactionScope struct {
	db *gorm.DB
}

// NewGormWorkforceTransactionScope creates a new GormWorkforceTransactionScope
func NewGormWorkforceTransactionScope(db *gorm.DB) *GormWorkforceTransactionScope {
	return &GormWorkforceTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormWorkforceTransactionScope) Execute(ctx context.Context, fn func(repos appworkforce.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormWorkforceRepositories{tx: tx})
	})
}

// gormWorkforceRepositories provides repositories bound to a transaction
type gormWorkforceRepositories struct {
	tx *gorm.DB
}

// ManpowerRepo returns the worker repository scoped to the transaction
func (r *gormWorkforceRepositories) ManpowerRepo() workforce.ManpowerRepository {
	return NewGormManpowerRepository(r.tx)
}

// AttendanceRepo returns the attendance repository scoped to the transaction
func (r *gormWorkforceRepositories) AttendanceRepo() workforce.AttendanceRepository {
	return NewGormAttendanceRepository(r.tx)
}

// TransferRepo returns the transfer repository scoped to the transaction
func (r *gormWorkforceRepositories) TransferRepo() workforce.TransferRepository {
	return NewGormTransferRepository(r.tx)
}

// Ensure interface compliance
var _ appworkforce.TransactionScope = (*GormWorkforceTransactionScope)(nil)
var _ appworkforce.TransactionalRepositories = (*gormWorkforceRepositories)(nil)
