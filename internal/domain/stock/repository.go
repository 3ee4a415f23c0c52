package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/shared"
)

// SiteStockRepository defines persistence operations for site stock rows.
// FindForUpdate takes a row lock so receipt and consumption postings
// serialize per site and item.
type SiteStockRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SiteStock, error)
	FindBySiteAndItem(ctx context.Context, siteID, itemID uuid.UUID) (*SiteStock, error)
	FindForUpdate(ctx context.Context, siteID, itemID uuid.UUID) (*SiteStock, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*SiteStock, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, stock *SiteStock) error
}

// DailyConsumptionRepository defines persistence operations for daily
// consumption records
type DailyConsumptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DailyConsumption, error)
	FindBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) (*DailyConsumption, error)
	FindBySiteAndRange(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]*DailyConsumption, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*DailyConsumption, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) (bool, error)
	Save(ctx context.Context, consumption *DailyConsumption) error
	ReplaceLines(ctx context.Context, consumption *DailyConsumption) error
}
