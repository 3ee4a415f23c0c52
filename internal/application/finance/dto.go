package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/finance"
)

// =============================================================================
// BOQ DTOs
// =============================================================================

// BOQItemRequest represents a line on a BOQ request
type BOQItemRequest struct {
	ItemNo      string          `json:"item_no" binding:"required,min=1,max=30"`
	Description string          `json:"description" binding:"required,min=1,max=1000"`
	Unit        string          `json:"unit" binding:"required,min=1,max=20"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

// CreateBOQRequest represents a request to create a bill of quantities
type CreateBOQRequest struct {
	SiteID uuid.UUID        `json:"site_id" binding:"required"`
	Title  string           `json:"title" binding:"required,min=1,max=200"`
	Remark string           `json:"remark" binding:"max=500"`
	Items  []BOQItemRequest `json:"items" binding:"dive"`
}

// UpdateBOQItemRequest changes quantity and rate on a draft BOQ line
type UpdateBOQItemRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
}

// BOQItemResponse represents a BOQ line in API responses
type BOQItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemNo      string          `json:"item_no"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// BOQResponse represents a BOQ in API responses
type BOQResponse struct {
	ID          uuid.UUID         `json:"id"`
	BOQNumber   string            `json:"boq_number"`
	SiteID      uuid.UUID         `json:"site_id"`
	Title       string            `json:"title"`
	Status      string            `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Remark      string            `json:"remark,omitempty"`
	CreatedBy   uuid.UUID         `json:"created_by"`
	FinalizedBy *uuid.UUID        `json:"finalized_by,omitempty"`
	FinalizedAt *time.Time        `json:"finalized_at,omitempty"`
	Items       []BOQItemResponse `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ToBOQResponse converts a domain BOQ to a response DTO
func ToBOQResponse(b *finance.BOQ) BOQResponse {
	items := make([]BOQItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, BOQItemResponse{
			ID:          item.ID,
			ItemNo:      item.ItemNo,
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
	}
	return BOQResponse{
		ID:          b.ID,
		BOQNumber:   b.BOQNumber,
		SiteID:      b.SiteID,
		Title:       b.Title,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		Remark:      b.Remark,
		CreatedBy:   b.CreatedBy,
		FinalizedBy: b.FinalizedBy,
		FinalizedAt: b.FinalizedAt,
		Items:       items,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// =============================================================================
// Work Order DTOs
// =============================================================================

// WorkOrderItemRequest awards a BOQ line to a contractor
type WorkOrderItemRequest struct {
	BOQItemID  uuid.UUID       `json:"boq_item_id" binding:"required"`
	AwardedQty decimal.Decimal `json:"awarded_qty" binding:"required"`
	Rate       decimal.Decimal `json:"rate" binding:"required"`
}

// CreateWorkOrderRequest represents a request to award a work order
type CreateWorkOrderRequest struct {
	SiteID       uuid.UUID              `json:"site_id" binding:"required"`
	BOQID        uuid.UUID              `json:"boq_id" binding:"required"`
	ContractorID uuid.UUID              `json:"contractor_id" binding:"required"`
	AwardDate    time.Time              `json:"award_date" binding:"required"`
	Terms        string                 `json:"terms" binding:"max=1000"`
	Items        []WorkOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CancelWorkOrderRequest carries the mandatory cancellation reason
type CancelWorkOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// WorkOrderItemResponse represents a work order line in API responses
type WorkOrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	BOQItemID   uuid.UUID       `json:"boq_item_id"`
	ItemNo      string          `json:"item_no"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	AwardedQty  decimal.Decimal `json:"awarded_qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// WorkOrderResponse represents a work order in API responses
type WorkOrderResponse struct {
	ID           uuid.UUID               `json:"id"`
	OrderNumber  string                  `json:"order_number"`
	SiteID       uuid.UUID               `json:"site_id"`
	BOQID        uuid.UUID               `json:"boq_id"`
	ContractorID uuid.UUID               `json:"contractor_id"`
	Status       string                  `json:"status"`
	AwardDate    time.Time               `json:"award_date"`
	TotalAmount  decimal.Decimal         `json:"total_amount"`
	Terms        string                  `json:"terms,omitempty"`
	CreatedBy    uuid.UUID               `json:"created_by"`
	IssuedAt     *time.Time              `json:"issued_at,omitempty"`
	CompletedAt  *time.Time              `json:"completed_at,omitempty"`
	CancelledAt  *time.Time              `json:"cancelled_at,omitempty"`
	CancelReason string                  `json:"cancel_reason,omitempty"`
	Items        []WorkOrderItemResponse `json:"items"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ToWorkOrderResponse converts a domain work order to a response DTO
func ToWorkOrderResponse(w *finance.WorkOrder) WorkOrderResponse {
	items := make([]WorkOrderItemResponse, 0, len(w.Items))
	for _, item := range w.Items {
		items = append(items, WorkOrderItemResponse{
			ID:          item.ID,
			BOQItemID:   item.BOQItemID,
			ItemNo:      item.ItemNo,
			Description: item.Description,
			Unit:        item.Unit,
			AwardedQty:  item.AwardedQty,
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
	}
	return WorkOrderResponse{
		ID:           w.ID,
		OrderNumber:  w.OrderNumber,
		SiteID:       w.SiteID,
		BOQID:        w.BOQID,
		ContractorID: w.ContractorID,
		Status:       string(w.Status),
		AwardDate:    w.AwardDate,
		TotalAmount:  w.TotalAmount,
		Terms:        w.Terms,
		CreatedBy:    w.CreatedBy,
		IssuedAt:     w.IssuedAt,
		CompletedAt:  w.CompletedAt,
		CancelledAt:  w.CancelledAt,
		CancelReason: w.CancelReason,
		Items:        items,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// =============================================================================
// RA Bill DTOs
// =============================================================================

// RABillLineRequest bills progress quantity against a work order line
type RABillLineRequest struct {
	WorkOrderItemID uuid.UUID       `json:"work_order_item_id" binding:"required"`
	ThisBillQty     decimal.Decimal `json:"this_bill_qty" binding:"required"`
}

// CreateRABillRequest represents a running-account bill against a work order
type CreateRABillRequest struct {
	WorkOrderID uuid.UUID           `json:"work_order_id" binding:"required"`
	BillDate    time.Time           `json:"bill_date" binding:"required"`
	Remark      string              `json:"remark" binding:"max=500"`
	Lines       []RABillLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RABillLineResponse represents an RA bill line in API responses
type RABillLineResponse struct {
	ID                uuid.UUID       `json:"id"`
	WorkOrderItemID   uuid.UUID       `json:"work_order_item_id"`
	ItemNo            string          `json:"item_no"`
	Description       string          `json:"description"`
	Unit              string          `json:"unit"`
	AwardedQty        decimal.Decimal `json:"awarded_qty"`
	PrevCumulativeQty decimal.Decimal `json:"prev_cumulative_qty"`
	ThisBillQty       decimal.Decimal `json:"this_bill_qty"`
	CumulativeQty     decimal.Decimal `json:"cumulative_qty"`
	Rate              decimal.Decimal `json:"rate"`
	Amount            decimal.Decimal `json:"amount"`
	ProgressPercent   decimal.Decimal `json:"progress_percent"`
}

// RABillResponse represents an RA bill in API responses
type RABillResponse struct {
	ID          uuid.UUID            `json:"id"`
	BillNumber  string               `json:"bill_number"`
	WorkOrderID uuid.UUID            `json:"work_order_id"`
	SiteID      uuid.UUID            `json:"site_id"`
	RANumber    int                  `json:"ra_number"`
	Status      string               `json:"status"`
	BillDate    time.Time            `json:"bill_date"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Remark      string               `json:"remark,omitempty"`
	CreatedBy   uuid.UUID            `json:"created_by"`
	CertifiedBy *uuid.UUID           `json:"certified_by,omitempty"`
	CertifiedAt *time.Time           `json:"certified_at,omitempty"`
	Lines       []RABillLineResponse `json:"lines"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToRABillResponse converts a domain RA bill to a response DTO
func ToRABillResponse(b *finance.WorkOrderBill) RABillResponse {
	lines := make([]RABillLineResponse, 0, len(b.Lines))
	for i := range b.Lines {
		line := &b.Lines[i]
		lines = append(lines, RABillLineResponse{
			ID:                line.ID,
			WorkOrderItemID:   line.WorkOrderItemID,
			ItemNo:            line.ItemNo,
			Description:       line.Description,
			Unit:              line.Unit,
			AwardedQty:        line.AwardedQty,
			PrevCumulativeQty: line.PrevCumulativeQty,
			ThisBillQty:       line.ThisBillQty,
			CumulativeQty:     line.CumulativeQty(),
			Rate:              line.Rate,
			Amount:            line.Amount,
			ProgressPercent:   line.ProgressPercent(),
		})
	}
	return RABillResponse{
		ID:          b.ID,
		BillNumber:  b.BillNumber,
		WorkOrderID: b.WorkOrderID,
		SiteID:      b.SiteID,
		RANumber:    b.RANumber,
		Status:      string(b.Status),
		BillDate:    b.BillDate,
		TotalAmount: b.TotalAmount,
		Remark:      b.Remark,
		CreatedBy:   b.CreatedBy,
		CertifiedBy: b.CertifiedBy,
		CertifiedAt: b.CertifiedAt,
		Lines:       lines,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// =============================================================================
// Cashbook DTOs
// =============================================================================

// OpenCashbookRequest opens the cashbook of a site
type OpenCashbookRequest struct {
	SiteID         uuid.UUID       `json:"site_id" binding:"required"`
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpenedOn       time.Time       `json:"opened_on" binding:"required"`
}

// CashbookResponse represents a cashbook in API responses
type CashbookResponse struct {
	ID             uuid.UUID       `json:"id"`
	SiteID         uuid.UUID       `json:"site_id"`
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	OpenedOn       time.Time       `json:"opened_on"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToCashbookResponse converts a domain cashbook to a response DTO
func ToCashbookResponse(c *finance.Cashbook) CashbookResponse {
	return CashbookResponse{
		ID:             c.ID,
		SiteID:         c.SiteID,
		Name:           c.Name,
		OpeningBalance: c.OpeningBalance,
		OpenedOn:       c.OpenedOn,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// CreateVoucherRequest records a payment or receipt in a cashbook
type CreateVoucherRequest struct {
	Type        string          `json:"type" binding:"required,oneof=payment receipt"`
	Mode        string          `json:"mode" binding:"required,oneof=cash bank upi"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	VoucherDate time.Time       `json:"voucher_date" binding:"required"`
	PartyName   string          `json:"party_name" binding:"required,min=1,max=200"`
	VendorID    *uuid.UUID      `json:"vendor_id"`
	Head        string          `json:"head" binding:"required,min=1,max=100"`
	Narration   string          `json:"narration" binding:"max=1000"`
	Reference   string          `json:"reference" binding:"max=100"`
}

// CancelVoucherRequest carries the mandatory cancellation reason
type CancelVoucherRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// VoucherResponse represents a voucher in API responses
type VoucherResponse struct {
	ID            uuid.UUID       `json:"id"`
	VoucherNumber string          `json:"voucher_number"`
	CashbookID    uuid.UUID       `json:"cashbook_id"`
	Type          string          `json:"type"`
	Mode          string          `json:"mode"`
	Amount        decimal.Decimal `json:"amount"`
	VoucherDate   time.Time       `json:"voucher_date"`
	PartyName     string          `json:"party_name"`
	VendorID      *uuid.UUID      `json:"vendor_id,omitempty"`
	Head          string          `json:"head"`
	Narration     string          `json:"narration,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	EnteredBy     uuid.UUID       `json:"entered_by"`
	Cancelled     bool            `json:"cancelled"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToVoucherResponse converts a domain voucher to a response DTO
func ToVoucherResponse(v *finance.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:            v.ID,
		VoucherNumber: v.VoucherNumber,
		CashbookID:    v.CashbookID,
		Type:          string(v.Type),
		Mode:          string(v.Mode),
		Amount:        v.Amount,
		VoucherDate:   v.VoucherDate,
		PartyName:     v.PartyName,
		VendorID:      v.VendorID,
		Head:          v.Head,
		Narration:     v.Narration,
		Reference:     v.Reference,
		EnteredBy:     v.EnteredBy,
		Cancelled:     v.Cancelled,
		CancelReason:  v.CancelReason,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// =============================================================================
// Rent DTOs
// =============================================================================

// CreateRentAgreementRequest registers a rent agreement for a site asset
type CreateRentAgreementRequest struct {
	SiteID           uuid.UUID       `json:"site_id" binding:"required"`
	LandlordName     string          `json:"landlord_name" binding:"required,min=1,max=200"`
	VendorID         *uuid.UUID      `json:"vendor_id"`
	AssetDescription string          `json:"asset_description" binding:"required,min=1,max=500"`
	MonthlyRent      decimal.Decimal `json:"monthly_rent" binding:"required"`
	Deposit          decimal.Decimal `json:"deposit"`
	StartDate        time.Time       `json:"start_date" binding:"required"`
	Notes            string          `json:"notes" binding:"max=500"`
}

// ReviseRentRequest changes the monthly rent of an active agreement
type ReviseRentRequest struct {
	MonthlyRent decimal.Decimal `json:"monthly_rent" binding:"required"`
}

// CloseRentAgreementRequest ends an agreement
type CloseRentAgreementRequest struct {
	EndDate time.Time `json:"end_date" binding:"required"`
}

// RecordRentPaymentRequest records one month's rent payment
type RecordRentPaymentRequest struct {
	Year      int             `json:"year" binding:"required"`
	Month     int             `json:"month" binding:"required,min=1,max=12"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	PaidOn    time.Time       `json:"paid_on" binding:"required"`
	Mode      string          `json:"mode" binding:"required,oneof=cash bank upi"`
	Reference string          `json:"reference" binding:"max=100"`
	Remark    string          `json:"remark" binding:"max=500"`
}

// RentAgreementResponse represents a rent agreement in API responses
type RentAgreementResponse struct {
	ID               uuid.UUID       `json:"id"`
	AgreementNumber  string          `json:"agreement_number"`
	SiteID           uuid.UUID       `json:"site_id"`
	LandlordName     string          `json:"landlord_name"`
	VendorID         *uuid.UUID      `json:"vendor_id,omitempty"`
	AssetDescription string          `json:"asset_description"`
	MonthlyRent      decimal.Decimal `json:"monthly_rent"`
	Deposit          decimal.Decimal `json:"deposit"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToRentAgreementResponse converts a domain rent agreement to a response DTO
func ToRentAgreementResponse(r *finance.RentAgreement) RentAgreementResponse {
	return RentAgreementResponse{
		ID:               r.ID,
		AgreementNumber:  r.AgreementNumber,
		SiteID:           r.SiteID,
		LandlordName:     r.LandlordName,
		VendorID:         r.VendorID,
		AssetDescription: r.AssetDescription,
		MonthlyRent:      r.MonthlyRent,
		Deposit:          r.Deposit,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Status:           string(r.Status),
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// RentPaymentResponse represents a rent payment in API responses
type RentPaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	AgreementID uuid.UUID       `json:"agreement_id"`
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	PaidOn      time.Time       `json:"paid_on"`
	Mode        string          `json:"mode"`
	Reference   string          `json:"reference,omitempty"`
	Remark      string          `json:"remark,omitempty"`
	EnteredBy   uuid.UUID       `json:"entered_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToRentPaymentResponse converts a domain rent payment to a response DTO
func ToRentPaymentResponse(p *finance.RentPayment) RentPaymentResponse {
	return RentPaymentResponse{
		ID:          p.ID,
		AgreementID: p.AgreementID,
		Year:        p.Year,
		Month:       p.Month,
		Amount:      p.Amount,
		PaidOn:      p.PaidOn,
		Mode:        string(p.Mode),
		Reference:   p.Reference,
		Remark:      p.Remark,
		EnteredBy:   p.EnteredBy,
		CreatedAt:   p.CreatedAt,
	}
}
