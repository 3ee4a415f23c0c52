package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/report"
)

// GormFinanceReportRepository provides the financial read models straight
// from SQL. Only certified RA bills count toward billing progress;
// cancelled vouchers are excluded everywhere.
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

// GetBillingMatrix aggregates cumulative billed quantities per work order item
func (r *GormFinanceReportRepository) GetBillingMatrix(workOrderID uuid.UUID) ([]report.BillingMatrixRow, error) {
	query := `
		SELECT wi.id AS work_order_item_id,
		       wi.item_no AS item_no,
		       wi.description AS description,
		       wi.unit AS unit,
		       wi.awarded_qty AS awarded_qty,
		       wi.rate AS rate,
		       COALESCE(SUM(bl.this_bill_qty), 0) AS billed_qty
		FROM work_order_items wi
		LEFT JOIN work_order_bill_lines bl ON bl.work_order_item_id = wi.id
			AND bl.bill_id IN (SELECT id FROM work_order_bills WHERE status = 'certified')
		WHERE wi.work_order_id = ?
		GROUP BY wi.id, wi.item_no, wi.description, wi.unit, wi.awarded_qty, wi.rate
		ORDER BY wi.item_no ASC`

	var rows []report.BillingMatrixRow
	if err := r.db.Raw(query, workOrderID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCashbookRows lists non-cancelled vouchers of the cashbook within the
// period, oldest first
func (r *GormFinanceReportRepository) GetCashbookRows(filter report.CashbookSummaryFilter) ([]report.CashbookSummaryRow, error) {
	query := `
		SELECT v.id AS voucher_id,
		       v.voucher_number AS voucher_number,
		       v.voucher_date AS voucher_date,
		       v.type AS type,
		       v.mode AS mode,
		       v.party_name AS party_name,
		       v.head AS head,
		       v.amount AS amount
		FROM cashbook_vouchers v
		WHERE v.cashbook_id = ? AND v.cancelled = false
			AND v.voucher_date >= ? AND v.voucher_date <= ?
		ORDER BY v.voucher_date ASC, v.created_at ASC`

	var rows []report.CashbookSummaryRow
	if err := r.db.Raw(query, filter.CashbookID, filter.StartDate, filter.EndDate).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCashFlows sums non-cancelled receipts and payments dated strictly
// before until
func (r *GormFinanceReportRepository) GetCashFlows(cashbookID uuid.UUID, until time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var flows struct {
		Receipts decimal.Decimal
		Payments decimal.Decimal
	}
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'receipt' THEN amount ELSE 0 END), 0) AS receipts,
		       COALESCE(SUM(CASE WHEN type = 'payment' THEN amount ELSE 0 END), 0) AS payments
		FROM cashbook_vouchers
		WHERE cashbook_id = ? AND cancelled = false AND voucher_date < ?`

	if err := r.db.Raw(query, cashbookID, until).Scan(&flows).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return flows.Receipts, flows.Payments, nil
}

// Ensure GormFinanceReportRepository implements FinanceReportRepository
var _ report.FinanceReportRepository = (*GormFinanceReportRepository)(nil)
