package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLedgerRow is a read model of one item's stock movement at a site
// over a period: closing = opening + inward - consumed.
type StockLedgerRow struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ItemCode    string          `json:"item_code"`
	ItemName    string          `json:"item_name"`
	Unit        string          `json:"unit"`
	OpeningQty  decimal.Decimal `json:"opening_qty"`
	InwardQty   decimal.Decimal `json:"inward_qty"`
	ConsumedQty decimal.Decimal `json:"consumed_qty"`
	ClosingQty  decimal.Decimal `json:"closing_qty"`
}

// StockLedgerFilter selects the ledger slice
type StockLedgerFilter struct {
	SiteID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	ItemID    *uuid.UUID
}

// CurrentStockRow is the live on-hand view of one site item
type CurrentStockRow struct {
	ItemID   uuid.UUID       `json:"item_id"`
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// StockReportRepository provides the stock read models
type StockReportRepository interface {
	GetStockLedger(filter StockLedgerFilter) ([]StockLedgerRow, error)
	GetCurrentStock(siteID uuid.UUID) ([]CurrentStockRow, error)
}
