package workforce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// AttendanceMark represents a day's attendance result
type AttendanceMark string

const (
	AttendancePresent AttendanceMark = "present"
	AttendanceAbsent  AttendanceMark = "absent"
	AttendanceHalfDay AttendanceMark = "half_day"
)

// IsValid checks if the mark is a valid AttendanceMark
func (m AttendanceMark) IsValid() bool {
	switch m {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay:
		return true
	}
	return false
}

// String returns the string representation of AttendanceMark
func (m AttendanceMark) String() string {
	return string(m)
}

const maxOvertimeHours = 12

// Attendance is one worker's attendance for one calendar date.
// A worker has at most one record per date.
type Attendance struct {
	shared.BaseAggregateRoot
	ManpowerID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_manpower_date"`
	SiteID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	Date          time.Time      `gorm:"type:date;not null;uniqueIndex:idx_attendance_manpower_date"`
	Mark          AttendanceMark `gorm:"type:varchar(20);not null"`
	OvertimeHours decimal.Decimal `gorm:"type:decimal(4,2);not null;default:0"`
	Remark        string         `gorm:"type:varchar(500)"`
	MarkedBy      uuid.UUID      `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Attendance) TableName() string {
	return "attendance"
}

// truncateToDate drops the time-of-day component
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NewAttendance creates an attendance record for a worker and date
func NewAttendance(manpowerID, siteID, markedBy uuid.UUID, date time.Time, mark AttendanceMark, overtimeHours decimal.Decimal) (*Attendance, error) {
	if manpowerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANPOWER", "Manpower ID cannot be empty")
	}
	if siteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SITE", "Site ID cannot be empty")
	}
	if markedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MARKER", "Marked-by user ID cannot be empty")
	}
	if !mark.IsValid() {
		return nil, shared.NewDomainError("INVALID_MARK", "Attendance mark must be present, absent or half_day")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Attendance date cannot be empty")
	}

	day := truncateToDate(date)
	if day.After(truncateToDate(time.Now())) {
		return nil, shared.NewDomainError("FUTURE_DATE", "Attendance cannot be marked for a future date")
	}
	if err := validateOvertime(mark, overtimeHours); err != nil {
		return nil, err
	}

	return &Attendance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ManpowerID:        manpowerID,
		SiteID:            siteID,
		Date:              day,
		Mark:              mark,
		OvertimeHours:     overtimeHours,
		MarkedBy:          markedBy,
	}, nil
}

func validateOvertime(mark AttendanceMark, hours decimal.Decimal) error {
	if hours.IsNegative() || hours.GreaterThan(decimal.NewFromInt(maxOvertimeHours)) {
		return shared.NewDomainError("INVALID_OVERTIME", "Overtime hours must be between 0 and 12")
	}
	if mark == AttendanceAbsent && hours.IsPositive() {
		return shared.NewDomainError("INVALID_OVERTIME", "Absent workers cannot have overtime")
	}
	return nil
}

// Correct revises the mark and overtime for an already marked day
func (a *Attendance) Correct(mark AttendanceMark, overtimeHours decimal.Decimal, remark string, correctedBy uuid.UUID) error {
	if !mark.IsValid() {
		return shared.NewDomainError("INVALID_MARK", "Attendance mark must be present, absent or half_day")
	}
	if correctedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_MARKER", "Corrected-by user ID cannot be empty")
	}
	if err := validateOvertime(mark, overtimeHours); err != nil {
		return err
	}

	a.Mark = mark
	a.OvertimeHours = overtimeHours
	a.Remark = remark
	a.MarkedBy = correctedBy
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// DayValue returns the wage-day fraction the mark is worth:
// 1 for present, 0.5 for half day, 0 for absent.
func (a *Attendance) DayValue() decimal.Decimal {
	switch a.Mark {
	case AttendancePresent:
		return decimal.NewFromInt(1)
	case AttendanceHalfDay:
		return decimal.NewFromFloat(0.5)
	}
	return decimal.Zero
}
