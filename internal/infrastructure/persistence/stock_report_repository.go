package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/report"
)

// GormStockReportRepository provides the stock read models straight from
// SQL. The opening quantity is derived from the live on-hand quantity by
// backing out all movements dated on or after the period start; the service
// computes the closing column from opening + inward - consumed.
type GormStockReportRepository struct {
	db *gorm.DB
}

// NewGormStockReportRepository creates a new GormStockReportRepository
func NewGormStockReportRepository(db *gorm.DB) *GormStockReportRepository {
	return &GormStockReportRepository{db: db}
}

// GetStockLedger aggregates per-item movement for the site and period
func (r *GormStockReportRepository) GetStockLedger(filter report.StockLedgerFilter) ([]report.StockLedgerRow, error) {
	query := `
		WITH inward AS (
			SELECT l.item_id,
			       SUM(CASE WHEN b.bill_date >= ? AND b.bill_date <= ? THEN l.received_qty ELSE 0 END) AS period_qty,
			       SUM(CASE WHEN b.bill_date >= ? THEN l.received_qty ELSE 0 END) AS since_qty
			FROM inward_bill_lines l
			JOIN inward_bills b ON b.id = l.bill_id
			WHERE b.site_id = ?
			GROUP BY l.item_id
		), consumed AS (
			SELECT l.item_id,
			       SUM(CASE WHEN c.date >= ? AND c.date <= ? THEN l.quantity ELSE 0 END) AS period_qty,
			       SUM(CASE WHEN c.date >= ? THEN l.quantity ELSE 0 END) AS since_qty
			FROM daily_consumption_lines l
			JOIN daily_consumptions c ON c.id = l.consumption_id
			WHERE c.site_id = ?
			GROUP BY l.item_id
		)
		SELECT i.id AS item_id,
		       i.code AS item_code,
		       i.name AS item_name,
		       i.unit AS unit,
		       COALESCE(s.quantity, 0) - COALESCE(inw.since_qty, 0) + COALESCE(con.since_qty, 0) AS opening_qty,
		       COALESCE(inw.period_qty, 0) AS inward_qty,
		       COALESCE(con.period_qty, 0) AS consumed_qty
		FROM items i
		LEFT JOIN site_stocks s ON s.item_id = i.id AND s.site_id = ?
		LEFT JOIN inward inw ON inw.item_id = i.id
		LEFT JOIN consumed con ON con.item_id = i.id
		WHERE (s.id IS NOT NULL OR inw.item_id IS NOT NULL OR con.item_id IS NOT NULL)`

	args := []interface{}{
		filter.StartDate, filter.EndDate, filter.StartDate, filter.SiteID,
		filter.StartDate, filter.EndDate, filter.StartDate, filter.SiteID,
		filter.SiteID,
	}
	if filter.ItemID != nil {
		query += " AND i.id = ?"
		args = append(args, *filter.ItemID)
	}
	query += " ORDER BY i.code ASC"

	var rows []report.StockLedgerRow
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCurrentStock lists the live on-hand quantities at a site
func (r *GormStockReportRepository) GetCurrentStock(siteID uuid.UUID) ([]report.CurrentStockRow, error) {
	query := `
		SELECT i.id AS item_id,
		       i.code AS item_code,
		       i.name AS item_name,
		       COALESCE(c.name, '') AS category,
		       i.unit AS unit,
		       s.quantity AS quantity
		FROM site_stocks s
		JOIN items i ON i.id = s.item_id
		LEFT JOIN item_categories c ON c.id = i.category_id
		WHERE s.site_id = ?
		ORDER BY i.code ASC`

	var rows []report.CurrentStockRow
	if err := r.db.Raw(query, siteID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormStockReportRepository implements StockReportRepository
var _ report.StockReportRepository = (*GormStockReportRepository)(nil)
