package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/shared"
)

// IndentRepository defines persistence operations for indents
type IndentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Indent, error)
	FindByNumber(ctx context.Context, indentNumber string) (*Indent, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Indent, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*Indent, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status IndentStatus) (int64, error)
	ExistsByNumber(ctx context.Context, indentNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, indent *Indent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*PurchaseOrder, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*PurchaseOrder, error)
	FindByVendor(ctx context.Context, vendorID uuid.UUID, filter shared.Filter) ([]*PurchaseOrder, error)
	FindBySourceIndent(ctx context.Context, indentID uuid.UUID) ([]*PurchaseOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status PurchaseOrderStatus) (int64, error)
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InwardBillRepository defines persistence operations for inward bills
type InwardBillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InwardBill, error)
	FindByNumber(ctx context.Context, billNumber string) (*InwardBill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*InwardBill, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*InwardBill, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*InwardBill, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNumber(ctx context.Context, billNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, bill *InwardBill) error
}
