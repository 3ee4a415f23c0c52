package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/workforce"
)

// GormAttendanceRepository implements AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByID finds an attendance record by its ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Attendance, error) {
	var record workforce.Attendance
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByManpowerAndDate finds the attendance record for a worker on a date
func (r *GormAttendanceRepository) FindByManpowerAndDate(ctx context.Context, manpowerID uuid.UUID, date time.Time) (*workforce.Attendance, error) {
	var record workforce.Attendance
	if err := r.db.WithContext(ctx).
		Where("manpower_id = ? AND date = ?", manpowerID, date).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindBySiteAndDate finds all attendance records at a site on a date
func (r *GormAttendanceRepository) FindBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) ([]*workforce.Attendance, error) {
	var records []*workforce.Attendance
	if err := r.db.WithContext(ctx).
		Where("site_id = ? AND date = ?", siteID, date).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByManpowerAndRange finds a worker's attendance records within a date range
func (r *GormAttendanceRepository) FindByManpowerAndRange(ctx context.Context, manpowerID uuid.UUID, from, to time.Time) ([]*workforce.Attendance, error) {
	var records []*workforce.Attendance
	if err := r.db.WithContext(ctx).
		Where("manpower_id = ? AND date >= ? AND date <= ?", manpowerID, from, to).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBySiteAndRange finds attendance records at a site within a date range
func (r *GormAttendanceRepository) FindBySiteAndRange(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]*workforce.Attendance, error) {
	var records []*workforce.Attendance
	if err := r.db.WithContext(ctx).
		Where("site_id = ? AND date >= ? AND date <= ?", siteID, from, to).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ExistsByManpowerAndDate checks whether an attendance record exists for a worker on a date
func (r *GormAttendanceRepository) ExistsByManpowerAndDate(ctx context.Context, manpowerID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&workforce.Attendance{}).
		Where("manpower_id = ? AND date = ?", manpowerID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an attendance record
func (r *GormAttendanceRepository) Save(ctx context.Context, attendance *workforce.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

// SaveAll creates or updates a batch of attendance records in one transaction
func (r *GormAttendanceRepository) SaveAll(ctx context.Context, records []*workforce.Attendance) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := tx.Save(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an attendance record
func (r *GormAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workforce.Attendance{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAttendanceRepository implements AttendanceRepository
var _ workforce.AttendanceRepository = (*GormAttendanceRepository)(nil)
