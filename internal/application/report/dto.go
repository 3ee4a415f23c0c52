package report

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceReportRequest selects the attendance summary slice
type AttendanceReportRequest struct {
	SiteID    uuid.UUID `form:"site_id" binding:"required"`
	StartDate time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
	Trade     string    `form:"trade"`
	Refresh   bool      `form:"refresh"`
}

// BillingMatrixRequest selects the work order whose RA billing progress
// is reported
type BillingMatrixRequest struct {
	WorkOrderID uuid.UUID `form:"work_order_id" binding:"required"`
	Refresh     bool      `form:"refresh"`
}

// StockLedgerRequest selects the stock ledger slice
type StockLedgerRequest struct {
	SiteID    uuid.UUID  `form:"site_id" binding:"required"`
	StartDate time.Time  `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time  `form:"end_date" time_format:"2006-01-02" binding:"required"`
	ItemID    *uuid.UUID `form:"item_id"`
	Refresh   bool       `form:"refresh"`
}

// CashbookSummaryRequest selects the cashbook ledger slice
type CashbookSummaryRequest struct {
	CashbookID uuid.UUID `form:"cashbook_id" binding:"required"`
	StartDate  time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate    time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
	Refresh    bool      `form:"refresh"`
}

// ExportFile is a generated report document ready to stream to the client
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
