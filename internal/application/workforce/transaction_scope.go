package workforce

import (
	"context"

	"github.com/siteops/backend/internal/domain/workforce"
)

// TransactionScope provides transactional access to the workforce
// repositories. Bulk attendance and site transfers write several rows that
// must commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the workforce repositories
// within a transaction.
type TransactionalRepositories interface {
	// ManpowerRepo returns the worker repository scoped to the current transaction
	ManpowerRepo() workforce.ManpowerRepository
	// AttendanceRepo returns the attendance repository scoped to the current transaction
	AttendanceRepo() workforce.AttendanceRepository
	// TransferRepo returns the transfer repository scoped to the current transaction
	TransferRepo() workforce.TransferRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	manpowerRepo   workforce.ManpowerRepository
	attendanceRepo workforce.AttendanceRepository
	transferRepo   workforce.TransferRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	manpowerRepo workforce.ManpowerRepository,
	attendanceRepo workforce.AttendanceRepository,
	transferRepo workforce.TransferRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		manpowerRepo:   manpowerRepo,
		attendanceRepo: attendanceRepo,
		transferRepo:   transferRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ManpowerRepo returns the worker repository.
func (s *NoOpTransactionScope) ManpowerRepo() workforce.ManpowerRepository {
	return s.manpowerRepo
}

// AttendanceRepo returns the attendance repository.
func (s *NoOpTransactionScope) AttendanceRepo() workforce.AttendanceRepository {
	return s.attendanceRepo
}

// TransferRepo returns the transfer repository.
func (s *NoOpTransactionScope) TransferRepo() workforce.TransferRepository {
	return s.transferRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
