package workforce

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// ManpowerStatus represents the employment status of a worker
type ManpowerStatus string

const (
	ManpowerStatusActive   ManpowerStatus = "active"
	ManpowerStatusInactive ManpowerStatus = "inactive"
	ManpowerStatusExited   ManpowerStatus = "exited"
)

// IsValid checks if the status is a valid ManpowerStatus
func (s ManpowerStatus) IsValid() bool {
	switch s {
	case ManpowerStatusActive, ManpowerStatusInactive, ManpowerStatusExited:
		return true
	}
	return false
}

// Trade values commonly used on site. Free-form trades are allowed; these
// are the defaults seeded by the migration.
const (
	TradeMason      = "mason"
	TradeCarpenter  = "carpenter"
	TradeBarBender  = "bar_bender"
	TradeElectrician = "electrician"
	TradePlumber    = "plumber"
	TradeHelper     = "helper"
	TradeOperator   = "operator"
	TradeSupervisor = "supervisor"
)

var manpowerCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Manpower is a labourer or staff member assigned to a site
type Manpower struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Trade       string          `gorm:"type:varchar(50);not null;index"`
	SiteID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContractorID *uuid.UUID     `gorm:"type:uuid;index"`
	DailyWage   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Phone       string          `gorm:"type:varchar(20)"`
	IDProof     string          `gorm:"type:varchar(100)"`
	JoinedOn    time.Time       `gorm:"type:date;not null"`
	ExitedOn    *time.Time      `gorm:"type:date"`
	Status      ManpowerStatus  `gorm:"type:varchar(20);not null;index"`
	Notes       string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Manpower) TableName() string {
	return "manpower"
}

// NewManpower creates a new active worker record
func NewManpower(code, name, trade string, siteID uuid.UUID, contractorID *uuid.UUID, dailyWage decimal.Decimal, joinedOn time.Time) (*Manpower, error) {
	if code == "" || len(code) > 50 || !manpowerCodePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Manpower code must be 1-50 characters of letters, digits, hyphen or underscore")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if trade == "" {
		return nil, shared.NewDomainError("INVALID_TRADE", "Trade cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if dailyWage.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_WAGE", "Daily wage must be positive")
	}
	if joinedOn.IsZero() {
		return nil, shared.NewDomainError("INVALID_JOIN_DATE", "Joining date cannot be empty")
	}

	return &Manpower{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Trade:             trade,
		SiteID:            siteID,
		ContractorID:      contractorID,
		DailyWage:         dailyWage,
		JoinedOn:          joinedOn,
		Status:            ManpowerStatusActive,
	}, nil
}

// Update changes the editable worker attributes
func (m *Manpower) Update(name, trade, phone, idProof, notes string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if trade == "" {
		return shared.NewDomainError("INVALID_TRADE", "Trade cannot be empty")
	}
	m.Name = name
	m.Trade = trade
	m.Phone = phone
	m.IDProof = idProof
	m.Notes = notes
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// ReviseWage sets a new daily wage
func (m *Manpower) ReviseWage(dailyWage decimal.Decimal) error {
	if dailyWage.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_WAGE", "Daily wage must be positive")
	}
	m.DailyWage = dailyWage
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// MoveToSite reassigns the worker to another site. Used by transfers.
func (m *Manpower) MoveToSite(siteID uuid.UUID) error {
	if siteID == uuid.Nil {
		return shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if m.Status != ManpowerStatusActive {
		return shared.NewDomainError("MANPOWER_NOT_ACTIVE", "Only active workers can be transferred")
	}
	if m.SiteID == siteID {
		return shared.NewDomainError("SAME_SITE", "Worker is already assigned to this site")
	}
	m.SiteID = siteID
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// Deactivate suspends the worker without ending employment
func (m *Manpower) Deactivate() error {
	if m.Status != ManpowerStatusActive {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only active workers can be deactivated")
	}
	m.Status = ManpowerStatusInactive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// Activate restores a deactivated worker
func (m *Manpower) Activate() error {
	if m.Status != ManpowerStatusInactive {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Only inactive workers can be activated")
	}
	m.Status = ManpowerStatusActive
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// Exit permanently ends the worker's employment
func (m *Manpower) Exit(exitedOn time.Time) error {
	if m.Status == ManpowerStatusExited {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Worker has already exited")
	}
	if exitedOn.Before(m.JoinedOn) {
		return shared.NewDomainError("INVALID_EXIT_DATE", "Exit date cannot be before joining date")
	}
	m.Status = ManpowerStatusExited
	m.ExitedOn = &exitedOn
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// IsActive returns true if the worker is currently working
func (m *Manpower) IsActive() bool {
	return m.Status == ManpowerStatusActive
}
