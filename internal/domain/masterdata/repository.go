package masterdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/siteops/backend/internal/domain/shared"
)

// StateRepository defines the interface for state persistence
type StateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*State, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]State, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, state *State) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CityRepository defines the interface for city persistence
type CityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*City, error)
	FindByState(ctx context.Context, stateID uuid.UUID, filter shared.Filter) ([]City, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]City, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, stateID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, city *City) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ZoneRepository defines the interface for zone persistence
type ZoneRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Zone, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Zone, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, zone *Zone) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SiteRepository defines the interface for site persistence
type SiteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Site, error)
	FindByCode(ctx context.Context, code string) (*Site, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Site, error)
	FindByZone(ctx context.Context, zoneID uuid.UUID, filter shared.Filter) ([]Site, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status SiteStatus) (int64, error)
	CountByZone(ctx context.Context, zoneID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, site *Site) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByCode(ctx context.Context, code string) (*Vendor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status VendorStatus) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, vendor *Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemCategoryRepository defines the interface for item category persistence
type ItemCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemCategory, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ItemCategory, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, category *ItemCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByCode(ctx context.Context, code string) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}
