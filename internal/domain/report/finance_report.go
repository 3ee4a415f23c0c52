package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingMatrixRow is a read model of cumulative RA billing progress for
// one awarded work order item.
type BillingMatrixRow struct {
	WorkOrderItemID uuid.UUID       `json:"work_order_item_id"`
	ItemNo          string          `json:"item_no"`
	Description     string          `json:"description"`
	Unit            string          `json:"unit"`
	AwardedQty      decimal.Decimal `json:"awarded_qty"`
	Rate            decimal.Decimal `json:"rate"`
	AwardedAmount   decimal.Decimal `json:"awarded_amount"`
	BilledQty       decimal.Decimal `json:"billed_qty"`
	BilledAmount    decimal.Decimal `json:"billed_amount"`
	RemainingQty    decimal.Decimal `json:"remaining_qty"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
}

// CashbookSummaryRow is one voucher with the running balance after it
type CashbookSummaryRow struct {
	VoucherID      uuid.UUID       `json:"voucher_id"`
	VoucherNumber  string          `json:"voucher_number"`
	VoucherDate    time.Time       `json:"voucher_date"`
	Type           string          `json:"type"`
	Mode           string          `json:"mode"`
	PartyName      string          `json:"party_name"`
	Head           string          `json:"head"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// CashbookSummary is the ledger view of a cashbook over a period
type CashbookSummary struct {
	CashbookID     uuid.UUID            `json:"cashbook_id"`
	SiteID         uuid.UUID            `json:"site_id"`
	PeriodStart    time.Time            `json:"period_start"`
	PeriodEnd      time.Time            `json:"period_end"`
	OpeningBalance decimal.Decimal      `json:"opening_balance"`
	TotalReceipts  decimal.Decimal      `json:"total_receipts"`
	TotalPayments  decimal.Decimal      `json:"total_payments"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
	Rows           []CashbookSummaryRow `json:"rows"`
}

// CashbookSummaryFilter selects the cashbook slice
type CashbookSummaryFilter struct {
	CashbookID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
}

// FinanceReportRepository provides the financial read models
type FinanceReportRepository interface {
	GetBillingMatrix(workOrderID uuid.UUID) ([]BillingMatrixRow, error)
	GetCashbookRows(filter CashbookSummaryFilter) ([]CashbookSummaryRow, error)
	GetCashFlows(cashbookID uuid.UUID, until time.Time) (receipts, payments decimal.Decimal, err error)
}
