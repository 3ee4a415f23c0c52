package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// CashbookService manages per-site cashbooks and their vouchers
type CashbookService struct {
	cashbookRepo finance.CashbookRepository
	voucherRepo  finance.VoucherRepository
	siteRepo     masterdata.SiteRepository
}

// NewCashbookService creates a new cashbook service
func NewCashbookService(
	cashbookRepo finance.CashbookRepository,
	voucherRepo finance.VoucherRepository,
	siteRepo masterdata.SiteRepository,
) *CashbookService {
	return &CashbookService{
		cashbookRepo: cashbookRepo,
		voucherRepo:  voucherRepo,
		siteRepo:     siteRepo,
	}
}

// Open opens the cashbook for a site. A site has exactly one cashbook.
func (s *CashbookService) Open(ctx context.Context, req OpenCashbookRequest) (*CashbookResponse, error) {
	if _, err := s.siteRepo.FindByID(ctx, req.SiteID); err != nil {
		return nil, err
	}

	exists, err := s.cashbookRepo.ExistsBySite(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Site already has a cashbook")
	}

	cashbook, err := finance.NewCashbook(req.SiteID, req.Name, req.OpeningBalance, req.OpenedOn)
	if err != nil {
		return nil, err
	}

	if err := s.cashbookRepo.Save(ctx, cashbook); err != nil {
		return nil, err
	}

	resp := ToCashbookResponse(cashbook)
	return &resp, nil
}

// GetBySite retrieves the cashbook of a site
func (s *CashbookService) GetBySite(ctx context.Context, siteID uuid.UUID) (*CashbookResponse, error) {
	cashbook, err := s.cashbookRepo.FindBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	resp := ToCashbookResponse(cashbook)
	return &resp, nil
}

// Rename renames a cashbook
func (s *CashbookService) Rename(ctx context.Context, id uuid.UUID, name string) (*CashbookResponse, error) {
	cashbook, err := s.cashbookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := cashbook.Rename(name); err != nil {
		return nil, err
	}
	if err := s.cashbookRepo.Save(ctx, cashbook); err != nil {
		return nil, err
	}
	resp := ToCashbookResponse(cashbook)
	return &resp, nil
}

// Balance computes the current balance of a cashbook: opening balance plus
// all non-cancelled receipts minus all non-cancelled payments.
func (s *CashbookService) Balance(ctx context.Context, id uuid.UUID, until time.Time) (decimal.Decimal, error) {
	cashbook, err := s.cashbookRepo.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	receipts, err := s.voucherRepo.SumByCashbook(ctx, id, finance.VoucherTypeReceipt, until)
	if err != nil {
		return decimal.Zero, err
	}
	payments, err := s.voucherRepo.SumByCashbook(ctx, id, finance.VoucherTypePayment, until)
	if err != nil {
		return decimal.Zero, err
	}
	return cashbook.OpeningBalance.Add(receipts).Sub(payments), nil
}

// RecordVoucher records a payment or receipt in a cashbook
func (s *CashbookService) RecordVoucher(ctx context.Context, cashbookID, enteredBy uuid.UUID, req CreateVoucherRequest) (*VoucherResponse, error) {
	cashbook, err := s.cashbookRepo.FindByID(ctx, cashbookID)
	if err != nil {
		return nil, err
	}
	if req.VoucherDate.Before(cashbook.OpenedOn) {
		return nil, shared.NewDomainError("BEFORE_OPENING", "Voucher date cannot precede the cashbook opening date")
	}

	seq, err := s.voucherRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	voucherNumber := fmt.Sprintf("VCH-%06d", seq)

	voucher, err := finance.NewVoucher(voucherNumber, cashbook.ID, enteredBy,
		finance.VoucherType(req.Type), finance.PaymentMode(req.Mode),
		req.Amount, req.VoucherDate, req.PartyName, req.Head, req.Narration, req.Reference, req.VendorID)
	if err != nil {
		return nil, err
	}

	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, err
	}

	resp := ToVoucherResponse(voucher)
	return &resp, nil
}

// CancelVoucher voids a voucher. Vouchers are never deleted.
func (s *CashbookService) CancelVoucher(ctx context.Context, id uuid.UUID, reason string) (*VoucherResponse, error) {
	voucher, err := s.voucherRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := voucher.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.voucherRepo.Save(ctx, voucher); err != nil {
		return nil, err
	}
	resp := ToVoucherResponse(voucher)
	return &resp, nil
}

// ListVouchers retrieves a cashbook's vouchers with pagination
func (s *CashbookService) ListVouchers(ctx context.Context, cashbookID uuid.UUID, filter shared.Filter) (*shared.Paginated[VoucherResponse], error) {
	filter.Normalize()

	vouchers, err := s.voucherRepo.FindByCashbook(ctx, cashbookID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.voucherRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]VoucherResponse, 0, len(vouchers))
	for _, voucher := range vouchers {
		items = append(items, ToVoucherResponse(voucher))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
