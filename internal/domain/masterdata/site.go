package masterdata

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siteops/backend/internal/domain/shared"
)

// ZoneStatus represents the status of a zone
type ZoneStatus string

const (
	ZoneStatusActive   ZoneStatus = "active"
	ZoneStatusInactive ZoneStatus = "inactive"
)

// Zone is an operational region grouping sites
type Zone struct {
	shared.BaseAggregateRoot
	Name   string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status ZoneStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Zone) TableName() string {
	return "zones"
}

// NewZone creates a new zone
func NewZone(name string) (*Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Zone name must be 1-100 characters")
	}
	return &Zone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            ZoneStatusActive,
	}, nil
}

// Rename updates the zone name
func (z *Zone) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Zone name must be 1-100 characters")
	}
	z.Name = name
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
	return nil
}

// Deactivate marks the zone inactive
func (z *Zone) Deactivate() error {
	if z.Status == ZoneStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Zone is already inactive")
	}
	z.Status = ZoneStatusInactive
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
	return nil
}

// Activate marks the zone active
func (z *Zone) Activate() error {
	if z.Status == ZoneStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Zone is already active")
	}
	z.Status = ZoneStatusActive
	z.UpdatedAt = time.Now()
	z.IncrementVersion()
	return nil
}

// SiteStatus represents the operational status of a site
type SiteStatus string

const (
	SiteStatusActive SiteStatus = "active"
	SiteStatusOnHold SiteStatus = "on_hold"
	SiteStatusClosed SiteStatus = "closed"
)

// Site represents a construction project location. It is the primary
// scoping entity for procurement, workforce, finance and stock data.
type Site struct {
	shared.BaseAggregateRoot
	Code      string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string     `gorm:"type:varchar(200);not null"`
	ZoneID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CityID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Address   string     `gorm:"type:text"`
	StartDate time.Time  `gorm:"type:date;not null"`
	Status    SiteStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes     string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Site) TableName() string {
	return "sites"
}

// NewSite creates a new site with required fields
func NewSite(code, name string, zoneID, cityID uuid.UUID, startDate time.Time) (*Site, error) {
	if err := validateCode(code, "Site"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Site name must be 1-200 characters")
	}
	if zoneID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ZONE_ID", "Site requires a zone")
	}
	if cityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CITY_ID", "Site requires a city")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Site requires a start date")
	}

	return &Site{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              name,
		ZoneID:            zoneID,
		CityID:            cityID,
		StartDate:         startDate,
		Status:            SiteStatusActive,
	}, nil
}

// Update updates the mutable site details
func (s *Site) Update(name, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Site name must be 1-200 characters")
	}
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	s.Name = name
	s.Address = address
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Relocate changes the zone and city of a site
func (s *Site) Relocate(zoneID, cityID uuid.UUID) error {
	if zoneID == uuid.Nil || cityID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Zone and city are required")
	}
	s.ZoneID = zoneID
	s.CityID = cityID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Hold puts an active site on hold
func (s *Site) Hold() error {
	if s.Status != SiteStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active sites can be put on hold")
	}
	s.Status = SiteStatusOnHold
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Resume reactivates a site that is on hold
func (s *Site) Resume() error {
	if s.Status != SiteStatusOnHold {
		return shared.NewDomainError("INVALID_STATE", "Only sites on hold can be resumed")
	}
	s.Status = SiteStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Close permanently closes a site
func (s *Site) Close() error {
	if s.Status == SiteStatusClosed {
		return shared.NewDomainError("ALREADY_CLOSED", "Site is already closed")
	}
	s.Status = SiteStatusClosed
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsActive returns true if the site accepts new transactions
func (s *Site) IsActive() bool {
	return s.Status == SiteStatusActive
}

func validateCode(code, kind string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", kind+" code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", kind+" code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", kind+" code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
