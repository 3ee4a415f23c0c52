package workforce

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/workforce"
)

// AttendanceService handles daily attendance marking and corrections
type AttendanceService struct {
	attendanceRepo workforce.AttendanceRepository
	manpowerRepo   workforce.ManpowerRepository
	txScope        TransactionScope
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo workforce.AttendanceRepository,
	manpowerRepo workforce.ManpowerRepository,
	txScope TransactionScope,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		manpowerRepo:   manpowerRepo,
		txScope:        txScope,
	}
}

// Mark records attendance for one worker on one date. Marking a worker who is
// already marked for that date revises the existing record in place.
func (s *AttendanceService) Mark(ctx context.Context, markedBy uuid.UUID, req MarkAttendanceRequest) (*AttendanceResponse, error) {
	worker, err := s.manpowerRepo.FindByID(ctx, req.ManpowerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsActive() {
		return nil, shared.NewDomainError("WORKER_NOT_ACTIVE", "Attendance can only be marked for active workers")
	}

	record, err := s.attendanceRepo.FindByManpowerAndDate(ctx, req.ManpowerID, req.Date)
	switch {
	case err == nil:
		if err := record.Correct(workforce.AttendanceMark(req.Mark), req.OvertimeHours, req.Remark, markedBy); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		record, err = workforce.NewAttendance(worker.ID, worker.SiteID, markedBy, req.Date, workforce.AttendanceMark(req.Mark), req.OvertimeHours)
		if err != nil {
			return nil, err
		}
		record.Remark = req.Remark
	default:
		return nil, err
	}

	if err := s.attendanceRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// BulkMark records one date's muster for a whole site in a single
// transaction. Every entry must be a distinct active worker of that site.
// Entries for workers already marked on that date revise the existing records.
func (s *AttendanceService) BulkMark(ctx context.Context, markedBy uuid.UUID, req BulkMarkAttendanceRequest) ([]AttendanceResponse, error) {
	ids := make([]uuid.UUID, 0, len(req.Entries))
	seen := make(map[uuid.UUID]bool, len(req.Entries))
	for _, entry := range req.Entries {
		if seen[entry.ManpowerID] {
			return nil, shared.NewDomainError("DUPLICATE_WORKER", fmt.Sprintf("Worker %s appears more than once", entry.ManpowerID))
		}
		seen[entry.ManpowerID] = true
		ids = append(ids, entry.ManpowerID)
	}

	workers, err := s.manpowerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*workforce.Manpower, len(workers))
	for _, worker := range workers {
		byID[worker.ID] = worker
	}

	records := make([]*workforce.Attendance, 0, len(req.Entries))
	for _, entry := range req.Entries {
		worker, ok := byID[entry.ManpowerID]
		if !ok {
			return nil, shared.NewDomainError("WORKER_NOT_FOUND", fmt.Sprintf("Worker %s does not exist", entry.ManpowerID))
		}
		if !worker.IsActive() {
			return nil, shared.NewDomainError("WORKER_NOT_ACTIVE", fmt.Sprintf("Worker %s is not active", worker.Code))
		}
		if worker.SiteID != req.SiteID {
			return nil, shared.NewDomainError("SITE_MISMATCH", fmt.Sprintf("Worker %s is not posted at this site", worker.Code))
		}
		record, err := workforce.NewAttendance(worker.ID, req.SiteID, markedBy, req.Date, workforce.AttendanceMark(entry.Mark), entry.OvertimeHours)
		if err != nil {
			return nil, err
		}
		record.Remark = entry.Remark
		records = append(records, record)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		fresh := make([]*workforce.Attendance, 0, len(records))
		for i, record := range records {
			existing, err := repos.AttendanceRepo().FindByManpowerAndDate(ctx, record.ManpowerID, record.Date)
			switch {
			case err == nil:
				if err := existing.Correct(record.Mark, record.OvertimeHours, record.Remark, markedBy); err != nil {
					return err
				}
				if err := repos.AttendanceRepo().Save(ctx, existing); err != nil {
					return err
				}
				records[i] = existing
			case errors.Is(err, shared.ErrNotFound):
				fresh = append(fresh, record)
			default:
				return err
			}
		}
		if len(fresh) == 0 {
			return nil
		}
		return repos.AttendanceRepo().SaveAll(ctx, fresh)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToAttendanceResponse(record))
	}
	return responses, nil
}

// Correct amends an existing attendance record
func (s *AttendanceService) Correct(ctx context.Context, id, correctedBy uuid.UUID, req CorrectAttendanceRequest) (*AttendanceResponse, error) {
	record, err := s.attendanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := record.Correct(workforce.AttendanceMark(req.Mark), req.OvertimeHours, req.Remark, correctedBy); err != nil {
		return nil, err
	}
	if err := s.attendanceRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	resp := ToAttendanceResponse(record)
	return &resp, nil
}

// GetSiteMuster retrieves all marks for a site on a date
func (s *AttendanceService) GetSiteMuster(ctx context.Context, siteID uuid.UUID, date time.Time) ([]AttendanceResponse, error) {
	records, err := s.attendanceRepo.FindBySiteAndDate(ctx, siteID, date)
	if err != nil {
		return nil, err
	}
	responses := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToAttendanceResponse(record))
	}
	return responses, nil
}

// GetWorkerHistory retrieves a worker's marks over a date range
func (s *AttendanceService) GetWorkerHistory(ctx context.Context, manpowerID uuid.UUID, from, to time.Time) ([]AttendanceResponse, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End date cannot be before start date")
	}
	records, err := s.attendanceRepo.FindByManpowerAndRange(ctx, manpowerID, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToAttendanceResponse(record))
	}
	return responses, nil
}
