package workforce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/workforce"
)

// =============================================================================
// Manpower DTOs
// =============================================================================

// CreateManpowerRequest represents a request to register a worker
type CreateManpowerRequest struct {
	Code         string          `json:"code" binding:"required,min=1,max=50"`
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Trade        string          `json:"trade" binding:"required,min=1,max=50"`
	SiteID       uuid.UUID       `json:"site_id" binding:"required"`
	ContractorID *uuid.UUID      `json:"contractor_id"`
	DailyWage    decimal.Decimal `json:"daily_wage" binding:"required"`
	Phone        string          `json:"phone" binding:"max=20"`
	IDProof      string          `json:"id_proof" binding:"max=100"`
	JoinedOn     time.Time       `json:"joined_on" binding:"required"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// UpdateManpowerRequest represents a partial worker update
type UpdateManpowerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Trade   *string `json:"trade" binding:"omitempty,min=1,max=50"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	IDProof *string `json:"id_proof" binding:"omitempty,max=100"`
	Notes   *string `json:"notes" binding:"omitempty,max=500"`
}

// ReviseWageRequest changes a worker's daily wage
type ReviseWageRequest struct {
	DailyWage decimal.Decimal `json:"daily_wage" binding:"required"`
}

// ExitManpowerRequest marks a worker as exited
type ExitManpowerRequest struct {
	ExitedOn time.Time `json:"exited_on" binding:"required"`
}

// ManpowerResponse represents a worker in API responses
type ManpowerResponse struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Trade        string          `json:"trade"`
	SiteID       uuid.UUID       `json:"site_id"`
	ContractorID *uuid.UUID      `json:"contractor_id,omitempty"`
	DailyWage    decimal.Decimal `json:"daily_wage"`
	Phone        string          `json:"phone,omitempty"`
	IDProof      string          `json:"id_proof,omitempty"`
	JoinedOn     time.Time       `json:"joined_on"`
	ExitedOn     *time.Time      `json:"exited_on,omitempty"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToManpowerResponse converts a domain worker to a response DTO
func ToManpowerResponse(m *workforce.Manpower) ManpowerResponse {
	return ManpowerResponse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Trade:        m.Trade,
		SiteID:       m.SiteID,
		ContractorID: m.ContractorID,
		DailyWage:    m.DailyWage,
		Phone:        m.Phone,
		IDProof:      m.IDProof,
		JoinedOn:     m.JoinedOn,
		ExitedOn:     m.ExitedOn,
		Status:       string(m.Status),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// =============================================================================
// Attendance DTOs
// =============================================================================

// MarkAttendanceRequest marks one worker for one date
type MarkAttendanceRequest struct {
	ManpowerID    uuid.UUID       `json:"manpower_id" binding:"required"`
	Date          time.Time       `json:"date" binding:"required"`
	Mark          string          `json:"mark" binding:"required,oneof=present absent half_day"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Remark        string          `json:"remark" binding:"max=500"`
}

// BulkAttendanceEntry is one worker's mark within a bulk sheet
type BulkAttendanceEntry struct {
	ManpowerID    uuid.UUID       `json:"manpower_id" binding:"required"`
	Mark          string          `json:"mark" binding:"required,oneof=present absent half_day"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Remark        string          `json:"remark" binding:"max=500"`
}

// BulkMarkAttendanceRequest marks a whole site muster for one date
type BulkMarkAttendanceRequest struct {
	SiteID  uuid.UUID             `json:"site_id" binding:"required"`
	Date    time.Time             `json:"date" binding:"required"`
	Entries []BulkAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// CorrectAttendanceRequest corrects an existing attendance record
type CorrectAttendanceRequest struct {
	Mark          string          `json:"mark" binding:"required,oneof=present absent half_day"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Remark        string          `json:"remark" binding:"max=500"`
}

// AttendanceResponse represents an attendance record in API responses
type AttendanceResponse struct {
	ID            uuid.UUID       `json:"id"`
	ManpowerID    uuid.UUID       `json:"manpower_id"`
	SiteID        uuid.UUID       `json:"site_id"`
	Date          time.Time       `json:"date"`
	Mark          string          `json:"mark"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Remark        string          `json:"remark,omitempty"`
	MarkedBy      uuid.UUID       `json:"marked_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToAttendanceResponse converts a domain attendance record to a response DTO
func ToAttendanceResponse(a *workforce.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		ManpowerID:    a.ManpowerID,
		SiteID:        a.SiteID,
		Date:          a.Date,
		Mark:          a.Mark.String(),
		OvertimeHours: a.OvertimeHours,
		Remark:        a.Remark,
		MarkedBy:      a.MarkedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// =============================================================================
// Transfer DTOs
// =============================================================================

// TransferManpowerRequest moves a worker to another site
type TransferManpowerRequest struct {
	ToSiteID     uuid.UUID `json:"to_site_id" binding:"required"`
	TransferDate time.Time `json:"transfer_date" binding:"required"`
	Reason       string    `json:"reason" binding:"max=500"`
}

// TransferResponse represents a transfer record in API responses
type TransferResponse struct {
	ID            uuid.UUID `json:"id"`
	ManpowerID    uuid.UUID `json:"manpower_id"`
	FromSiteID    uuid.UUID `json:"from_site_id"`
	ToSiteID      uuid.UUID `json:"to_site_id"`
	TransferDate  time.Time `json:"transfer_date"`
	Reason        string    `json:"reason,omitempty"`
	TransferredBy uuid.UUID `json:"transferred_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToTransferResponse converts a domain transfer to a response DTO
func ToTransferResponse(tr *workforce.Transfer) TransferResponse {
	return TransferResponse{
		ID:            tr.ID,
		ManpowerID:    tr.ManpowerID,
		FromSiteID:    tr.FromSiteID,
		ToSiteID:      tr.ToSiteID,
		TransferDate:  tr.TransferDate,
		Reason:        tr.Reason,
		TransferredBy: tr.TransferredBy,
		CreatedAt:     tr.CreatedAt,
	}
}
