package workforce

import (
	"time"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/shared"
)

// Transfer records a worker's move from one site to another. Applying the
// transfer updates the worker's site assignment in the same transaction.
type Transfer struct {
	shared.BaseAggregateRoot
	ManpowerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FromSiteID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ToSiteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TransferDate time.Time `gorm:"type:date;not null"`
	Reason       string    `gorm:"type:varchar(500)"`
	TransferredBy uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Transfer) TableName() string {
	return "manpower_transfers"
}

// NewTransfer creates a transfer record for a worker
func NewTransfer(manpowerID, fromSiteID, toSiteID, transferredBy uuid.UUID, transferDate time.Time, reason string) (*Transfer, error) {
	if manpowerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANPOWER", "Manpower ID cannot be empty")
	}
	if fromSiteID == uuid.Nil || toSiteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site IDs cannot be empty")
	}
	if fromSiteID == toSiteID {
		return nil, shared.NewDomainError("SAME_SITE", "Source and destination sites must differ")
	}
	if transferredBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Transferred-by user ID cannot be empty")
	}
	if transferDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Transfer date cannot be empty")
	}
	if truncateToDate(transferDate).After(truncateToDate(time.Now())) {
		return nil, shared.NewDomainError("FUTURE_DATE", "Transfer date cannot be in the future")
	}

	return &Transfer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ManpowerID:        manpowerID,
		FromSiteID:        fromSiteID,
		ToSiteID:          toSiteID,
		TransferDate:      truncateToDate(transferDate),
		Reason:            reason,
		TransferredBy:     transferredBy,
	}, nil
}
