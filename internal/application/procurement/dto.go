package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/procurement"
)

// =============================================================================
// Indent DTOs
// =============================================================================

// IndentItemRequest represents a line item on an indent request
type IndentItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateIndentRequest represents a request to raise a material indent
type CreateIndentRequest struct {
	SiteID     uuid.UUID           `json:"site_id" binding:"required"`
	RequiredBy *time.Time          `json:"required_by"`
	Remark     string              `json:"remark" binding:"max=500"`
	Items      []IndentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateIndentItemRequest updates the quantity of a draft indent line
type UpdateIndentItemRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// RejectIndentRequest carries the mandatory rejection reason
type RejectIndentRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// IndentItemResponse represents an indent line in API responses
type IndentItemResponse struct {
	ID       uuid.UUID       `json:"id"`
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	ItemCode string          `json:"item_code"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// IndentResponse represents an indent in API responses
type IndentResponse struct {
	ID           uuid.UUID            `json:"id"`
	IndentNumber string               `json:"indent_number"`
	SiteID       uuid.UUID            `json:"site_id"`
	Status       string               `json:"status"`
	RequiredBy   *time.Time           `json:"required_by,omitempty"`
	Remark       string               `json:"remark,omitempty"`
	RequestedBy  uuid.UUID            `json:"requested_by"`
	SubmittedAt  *time.Time           `json:"submitted_at,omitempty"`
	L1ApprovedBy *uuid.UUID           `json:"l1_approved_by,omitempty"`
	L1ApprovedAt *time.Time           `json:"l1_approved_at,omitempty"`
	L2ApprovedBy *uuid.UUID           `json:"l2_approved_by,omitempty"`
	L2ApprovedAt *time.Time           `json:"l2_approved_at,omitempty"`
	RejectedBy   *uuid.UUID           `json:"rejected_by,omitempty"`
	RejectedAt   *time.Time           `json:"rejected_at,omitempty"`
	RejectReason string               `json:"reject_reason,omitempty"`
	Items        []IndentItemResponse `json:"items"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToIndentResponse converts a domain indent to a response DTO
func ToIndentResponse(n *procurement.Indent) IndentResponse {
	items := make([]IndentItemResponse, 0, len(n.Items))
	for _, item := range n.Items {
		items = append(items, IndentItemResponse{
			ID:       item.ID,
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			ItemCode: item.ItemCode,
			Unit:     item.Unit,
			Quantity: item.Quantity,
		})
	}
	return IndentResponse{
		ID:           n.ID,
		IndentNumber: n.IndentNumber,
		SiteID:       n.SiteID,
		Status:       n.Status.String(),
		RequiredBy:   n.RequiredBy,
		Remark:       n.Remark,
		RequestedBy:  n.RequestedBy,
		SubmittedAt:  n.SubmittedAt,
		L1ApprovedBy: n.L1ApprovedBy,
		L1ApprovedAt: n.L1ApprovedAt,
		L2ApprovedBy: n.L2ApprovedBy,
		L2ApprovedAt: n.L2ApprovedAt,
		RejectedBy:   n.RejectedBy,
		RejectedAt:   n.RejectedAt,
		RejectReason: n.RejectReason,
		Items:        items,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

// =============================================================================
// Purchase Order DTOs
// =============================================================================

// PurchaseOrderItemRequest represents a line item on a purchase order request
type PurchaseOrderItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SiteID         uuid.UUID                  `json:"site_id" binding:"required"`
	VendorID       uuid.UUID                  `json:"vendor_id" binding:"required"`
	SourceIndentID *uuid.UUID                 `json:"source_indent_id"`
	OrderDate      time.Time                  `json:"order_date" binding:"required"`
	ExpectedDate   *time.Time                 `json:"expected_date"`
	Terms          string                     `json:"terms" binding:"max=1000"`
	Remark         string                     `json:"remark" binding:"max=500"`
	Items          []PurchaseOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdatePurchaseOrderItemRequest updates quantity or rate on a draft order line
type UpdatePurchaseOrderItemRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Rate     decimal.Decimal `json:"rate" binding:"required"`
}

// CancelPurchaseOrderRequest carries the mandatory cancellation reason
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// PurchaseOrderItemResponse represents an order line in API responses
type PurchaseOrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	ItemName    string          `json:"item_name"`
	ItemCode    string          `json:"item_code"`
	Unit        string          `json:"unit"`
	OrderedQty  decimal.Decimal `json:"ordered_qty"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	PendingQty  decimal.Decimal `json:"pending_qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID             uuid.UUID                   `json:"id"`
	OrderNumber    string                      `json:"order_number"`
	SiteID         uuid.UUID                   `json:"site_id"`
	VendorID       uuid.UUID                   `json:"vendor_id"`
	SourceIndentID *uuid.UUID                  `json:"source_indent_id,omitempty"`
	Status         string                      `json:"status"`
	OrderDate      time.Time                   `json:"order_date"`
	ExpectedDate   *time.Time                  `json:"expected_date,omitempty"`
	TotalAmount    decimal.Decimal             `json:"total_amount"`
	Terms          string                      `json:"terms,omitempty"`
	Remark         string                      `json:"remark,omitempty"`
	CreatedBy      uuid.UUID                   `json:"created_by"`
	IssuedAt       *time.Time                  `json:"issued_at,omitempty"`
	CancelledAt    *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason   string                      `json:"cancel_reason,omitempty"`
	Items          []PurchaseOrderItemResponse `json:"items"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain purchase order to a response DTO
func ToPurchaseOrderResponse(o *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, PurchaseOrderItemResponse{
			ID:          item.ID,
			ItemID:      item.ItemID,
			ItemName:    item.ItemName,
			ItemCode:    item.ItemCode,
			Unit:        item.Unit,
			OrderedQty:  item.OrderedQty,
			ReceivedQty: item.ReceivedQty,
			PendingQty:  item.PendingQty(),
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
	}
	return PurchaseOrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		SiteID:         o.SiteID,
		VendorID:       o.VendorID,
		SourceIndentID: o.SourceIndentID,
		Status:         o.Status.String(),
		OrderDate:      o.OrderDate,
		ExpectedDate:   o.ExpectedDate,
		TotalAmount:    o.TotalAmount,
		Terms:          o.Terms,
		Remark:         o.Remark,
		CreatedBy:      o.CreatedBy,
		IssuedAt:       o.IssuedAt,
		CancelledAt:    o.CancelledAt,
		CancelReason:   o.CancelReason,
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// =============================================================================
// Inward Bill DTOs
// =============================================================================

// InwardBillLineRequest represents a received line on an inward bill request
type InwardBillLineRequest struct {
	ItemID      uuid.UUID       `json:"item_id" binding:"required"`
	ReceivedQty decimal.Decimal `json:"received_qty" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

// RecordInwardBillRequest represents a goods receipt against a purchase order
type RecordInwardBillRequest struct {
	PurchaseOrderID uuid.UUID               `json:"purchase_order_id" binding:"required"`
	BillDate        time.Time               `json:"bill_date" binding:"required"`
	VendorInvoiceNo string                  `json:"vendor_invoice_no" binding:"max=100"`
	VehicleNumber   string                  `json:"vehicle_number" binding:"max=30"`
	Remark          string                  `json:"remark" binding:"max=500"`
	Lines           []InwardBillLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// InwardBillLineResponse represents a received line in API responses
type InwardBillLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	ItemName    string          `json:"item_name"`
	Unit        string          `json:"unit"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InwardBillResponse represents an inward bill in API responses
type InwardBillResponse struct {
	ID              uuid.UUID                `json:"id"`
	BillNumber      string                   `json:"bill_number"`
	PurchaseOrderID uuid.UUID                `json:"purchase_order_id"`
	SiteID          uuid.UUID                `json:"site_id"`
	VendorID        uuid.UUID                `json:"vendor_id"`
	Status          string                   `json:"status"`
	BillDate        time.Time                `json:"bill_date"`
	VendorInvoiceNo string                   `json:"vendor_invoice_no,omitempty"`
	VehicleNumber   string                   `json:"vehicle_number,omitempty"`
	TotalAmount     decimal.Decimal          `json:"total_amount"`
	Remark          string                   `json:"remark,omitempty"`
	RecordedBy      uuid.UUID                `json:"recorded_by"`
	VerifiedBy      *uuid.UUID               `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time               `json:"verified_at,omitempty"`
	Lines           []InwardBillLineResponse `json:"lines"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// ToInwardBillResponse converts a domain inward bill to a response DTO
func ToInwardBillResponse(b *procurement.InwardBill) InwardBillResponse {
	lines := make([]InwardBillLineResponse, 0, len(b.Lines))
	for _, line := range b.Lines {
		lines = append(lines, InwardBillLineResponse{
			ID:          line.ID,
			ItemID:      line.ItemID,
			ItemName:    line.ItemName,
			Unit:        line.Unit,
			ReceivedQty: line.ReceivedQty,
			Rate:        line.Rate,
			Amount:      line.Amount,
		})
	}
	return InwardBillResponse{
		ID:              b.ID,
		BillNumber:      b.BillNumber,
		PurchaseOrderID: b.PurchaseOrderID,
		SiteID:          b.SiteID,
		VendorID:        b.VendorID,
		Status:          b.Status.String(),
		BillDate:        b.BillDate,
		VendorInvoiceNo: b.VendorInvoiceNo,
		VehicleNumber:   b.VehicleNumber,
		TotalAmount:     b.TotalAmount,
		Remark:          b.Remark,
		RecordedBy:      b.RecordedBy,
		VerifiedBy:      b.VerifiedBy,
		VerifiedAt:      b.VerifiedAt,
		Lines:           lines,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
