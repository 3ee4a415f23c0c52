package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/shared"
)

// ManpowerRepository defines persistence operations for workers
type ManpowerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Manpower, error)
	FindByCode(ctx context.Context, code string) (*Manpower, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Manpower, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*Manpower, error)
	FindActiveBySite(ctx context.Context, siteID uuid.UUID) ([]*Manpower, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Manpower, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountBySite(ctx context.Context, siteID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, worker *Manpower) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttendanceRepository defines persistence operations for attendance records
type AttendanceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Attendance, error)
	FindByManpowerAndDate(ctx context.Context, manpowerID uuid.UUID, date time.Time) (*Attendance, error)
	FindBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) ([]*Attendance, error)
	FindByManpowerAndRange(ctx context.Context, manpowerID uuid.UUID, from, to time.Time) ([]*Attendance, error)
	FindBySiteAndRange(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]*Attendance, error)
	ExistsByManpowerAndDate(ctx context.Context, manpowerID uuid.UUID, date time.Time) (bool, error)
	Save(ctx context.Context, attendance *Attendance) error
	SaveAll(ctx context.Context, records []*Attendance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransferRepository defines persistence operations for transfers
type TransferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error)
	FindByManpower(ctx context.Context, manpowerID uuid.UUID) ([]*Transfer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Transfer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, transfer *Transfer) error
}
