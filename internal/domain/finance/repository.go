package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
)

// BOQRepository defines persistence operations for bills of quantities
type BOQRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BOQ, error)
	FindByNumber(ctx context.Context, boqNumber string) (*BOQ, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*BOQ, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*BOQ, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNumber(ctx context.Context, boqNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, boq *BOQ) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkOrderRepository defines persistence operations for work orders
type WorkOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)
	FindByNumber(ctx context.Context, orderNumber string) (*WorkOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*WorkOrder, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*WorkOrder, error)
	FindByBOQ(ctx context.Context, boqID uuid.UUID) ([]*WorkOrder, error)
	FindByContractor(ctx context.Context, contractorID uuid.UUID, filter shared.Filter) ([]*WorkOrder, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, order *WorkOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WorkOrderBillRepository defines persistence operations for RA bills
type WorkOrderBillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrderBill, error)
	FindByNumber(ctx context.Context, billNumber string) (*WorkOrderBill, error)
	FindByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]*WorkOrderBill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*WorkOrderBill, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByWorkOrder(ctx context.Context, workOrderID uuid.UUID) (int64, error)
	ExistsByNumber(ctx context.Context, billNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, bill *WorkOrderBill) error
}

// CashbookRepository defines persistence operations for cashbooks
type CashbookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Cashbook, error)
	FindBySite(ctx context.Context, siteID uuid.UUID) (*Cashbook, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Cashbook, error)
	ExistsBySite(ctx context.Context, siteID uuid.UUID) (bool, error)
	Save(ctx context.Context, cashbook *Cashbook) error
}

// VoucherRepository defines persistence operations for cashbook vouchers
type VoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)
	FindByNumber(ctx context.Context, voucherNumber string) (*Voucher, error)
	FindByCashbook(ctx context.Context, cashbookID uuid.UUID, filter shared.Filter) ([]*Voucher, error)
	FindByCashbookAndRange(ctx context.Context, cashbookID uuid.UUID, from, to time.Time) ([]*Voucher, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SumByCashbook(ctx context.Context, cashbookID uuid.UUID, vType VoucherType, until time.Time) (decimal.Decimal, error)
	ExistsByNumber(ctx context.Context, voucherNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, voucher *Voucher) error
}

// RentAgreementRepository defines persistence operations for rent agreements
type RentAgreementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentAgreement, error)
	FindByNumber(ctx context.Context, agreementNumber string) (*RentAgreement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*RentAgreement, error)
	FindBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) ([]*RentAgreement, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByNumber(ctx context.Context, agreementNumber string) (bool, error)
	NextSequence(ctx context.Context) (int64, error)
	Save(ctx context.Context, agreement *RentAgreement) error
}

// RentPaymentRepository defines persistence operations for rent payments
type RentPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentPayment, error)
	FindByAgreement(ctx context.Context, agreementID uuid.UUID) ([]*RentPayment, error)
	ExistsByAgreementAndMonth(ctx context.Context, agreementID uuid.UUID, year, month int) (bool, error)
	Save(ctx context.Context, payment *RentPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
