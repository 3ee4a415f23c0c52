package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttendanceReportRow is a read model summarising one worker's attendance
// over a period. Wages are computed as
// (presentDays + halfDays/2) * dailyWage + overtimeHours * dailyWage/8.
type AttendanceReportRow struct {
	ManpowerID    uuid.UUID       `json:"manpower_id"`
	ManpowerCode  string          `json:"manpower_code"`
	ManpowerName  string          `json:"manpower_name"`
	Trade         string          `json:"trade"`
	DailyWage     decimal.Decimal `json:"daily_wage"`
	PresentDays   int64           `json:"present_days"`
	HalfDays      int64           `json:"half_days"`
	AbsentDays    int64           `json:"absent_days"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	PayableDays   decimal.Decimal `json:"payable_days"`
	WageAmount    decimal.Decimal `json:"wage_amount"`
}

// AttendanceReport is the full attendance summary for a site and period
type AttendanceReport struct {
	SiteID      uuid.UUID             `json:"site_id"`
	SiteName    string                `json:"site_name"`
	PeriodStart time.Time             `json:"period_start"`
	PeriodEnd   time.Time             `json:"period_end"`
	Rows        []AttendanceReportRow `json:"rows"`
	TotalWages  decimal.Decimal       `json:"total_wages"`
}

// AttendanceReportFilter selects the report slice
type AttendanceReportFilter struct {
	SiteID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Trade     string
}

// AttendanceReportRepository provides the aggregated attendance read model
type AttendanceReportRepository interface {
	GetAttendanceSummary(filter AttendanceReportFilter) ([]AttendanceReportRow, error)
}
