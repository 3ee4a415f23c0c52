package persistence

import (
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/report"
)

// GormAttendanceReportRepository provides the aggregated attendance read
// model straight from SQL. Derived columns (payable days, wage amounts)
// are computed by the report service.
type GormAttendanceReportRepository struct {
	db *gorm.DB
}

// NewGormAttendanceReportRepository creates a new GormAttendanceReportRepository
func NewGormAttendanceReportRepository(db *gorm.DB) *GormAttendanceReportRepository {
	return &GormAttendanceReportRepository{db: db}
}

// GetAttendanceSummary aggregates attendance marks per worker for the period
func (r *GormAttendanceReportRepository) GetAttendanceSummary(filter report.AttendanceReportFilter) ([]report.AttendanceReportRow, error) {
	query := `
		SELECT m.id AS manpower_id,
		       m.code AS manpower_code,
		       m.name AS manpower_name,
		       m.trade AS trade,
		       m.daily_wage AS daily_wage,
		       COALESCE(SUM(CASE WHEN a.mark = 'present' THEN 1 ELSE 0 END), 0) AS present_days,
		       COALESCE(SUM(CASE WHEN a.mark = 'half_day' THEN 1 ELSE 0 END), 0) AS half_days,
		       COALESCE(SUM(CASE WHEN a.mark = 'absent' THEN 1 ELSE 0 END), 0) AS absent_days,
		       COALESCE(SUM(a.overtime_hours), 0) AS overtime_hours
		FROM attendance a
		JOIN manpower m ON m.id = a.manpower_id
		WHERE a.site_id = ? AND a.date >= ? AND a.date <= ?`

	args := []interface{}{filter.SiteID, filter.StartDate, filter.EndDate}
	if filter.Trade != "" {
		query += " AND m.trade = ?"
		args = append(args, filter.Trade)
	}
	query += `
		GROUP BY m.id, m.code, m.name, m.trade, m.daily_wage
		ORDER BY m.code ASC`

	var rows []report.AttendanceReportRow
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormAttendanceReportRepository implements AttendanceReportRepository
var _ report.AttendanceReportRepository = (*GormAttendanceReportRepository)(nil)
