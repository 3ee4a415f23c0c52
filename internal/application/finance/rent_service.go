package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// RentService manages rent agreements and monthly rent payments
type RentService struct {
	agreementRepo finance.RentAgreementRepository
	paymentRepo   finance.RentPaymentRepository
	siteRepo      masterdata.SiteRepository
}

// NewRentService creates a new rent service
func NewRentService(
	agreementRepo finance.RentAgreementRepository,
	paymentRepo finance.RentPaymentRepository,
	siteRepo masterdata.SiteRepository,
) *RentService {
	return &RentService{
		agreementRepo: agreementRepo,
		paymentRepo:   paymentRepo,
		siteRepo:      siteRepo,
	}
}

// CreateAgreement registers a rent agreement for a site asset
func (s *RentService) CreateAgreement(ctx context.Context, req CreateRentAgreementRequest) (*RentAgreementResponse, error) {
	if _, err := s.siteRepo.FindByID(ctx, req.SiteID); err != nil {
		return nil, err
	}

	seq, err := s.agreementRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	agreementNumber := fmt.Sprintf("RENT-%06d", seq)

	agreement, err := finance.NewRentAgreement(agreementNumber, req.SiteID, req.VendorID,
		req.LandlordName, req.AssetDescription, req.MonthlyRent, req.Deposit, req.StartDate)
	if err != nil {
		return nil, err
	}
	agreement.Notes = req.Notes

	if err := s.agreementRepo.Save(ctx, agreement); err != nil {
		return nil, err
	}

	resp := ToRentAgreementResponse(agreement)
	return &resp, nil
}

// GetAgreement retrieves a rent agreement by its ID
func (s *RentService) GetAgreement(ctx context.Context, id uuid.UUID) (*RentAgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRentAgreementResponse(agreement)
	return &resp, nil
}

// ListAgreements retrieves rent agreements with pagination, optionally
// scoped to a site
func (s *RentService) ListAgreements(ctx context.Context, siteID *uuid.UUID, filter shared.Filter) (*shared.Paginated[RentAgreementResponse], error) {
	filter.Normalize()

	var (
		agreements []*finance.RentAgreement
		err        error
	)
	if siteID != nil {
		agreements, err = s.agreementRepo.FindBySite(ctx, *siteID, filter)
	} else {
		agreements, err = s.agreementRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.agreementRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]RentAgreementResponse, 0, len(agreements))
	for _, agreement := range agreements {
		items = append(items, ToRentAgreementResponse(agreement))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ReviseRent changes the monthly rent of an active agreement
func (s *RentService) ReviseRent(ctx context.Context, id uuid.UUID, monthlyRent decimal.Decimal) (*RentAgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := agreement.ReviseRent(monthlyRent); err != nil {
		return nil, err
	}
	if err := s.agreementRepo.Save(ctx, agreement); err != nil {
		return nil, err
	}
	resp := ToRentAgreementResponse(agreement)
	return &resp, nil
}

// CloseAgreement ends an agreement
func (s *RentService) CloseAgreement(ctx context.Context, id uuid.UUID, req CloseRentAgreementRequest) (*RentAgreementResponse, error) {
	agreement, err := s.agreementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := agreement.Close(req.EndDate); err != nil {
		return nil, err
	}
	if err := s.agreementRepo.Save(ctx, agreement); err != nil {
		return nil, err
	}
	resp := ToRentAgreementResponse(agreement)
	return &resp, nil
}

// RecordPayment records one month's rent. A month can be paid only once per
// agreement.
func (s *RentService) RecordPayment(ctx context.Context, agreementID, enteredBy uuid.UUID, req RecordRentPaymentRequest) (*RentPaymentResponse, error) {
	agreement, err := s.agreementRepo.FindByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if !agreement.IsActive() {
		return nil, shared.NewDomainError("AGREEMENT_CLOSED", "Payments can only be recorded on active agreements")
	}

	exists, err := s.paymentRepo.ExistsByAgreementAndMonth(ctx, agreementID, req.Year, req.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Rent for %04d-%02d is already recorded", req.Year, req.Month))
	}

	payment, err := finance.NewRentPayment(agreement.ID, enteredBy, req.Year, req.Month,
		req.Amount, req.PaidOn, finance.PaymentMode(req.Mode), req.Reference, req.Remark)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	resp := ToRentPaymentResponse(payment)
	return &resp, nil
}

// ListPayments retrieves all payments of an agreement
func (s *RentService) ListPayments(ctx context.Context, agreementID uuid.UUID) ([]RentPaymentResponse, error) {
	payments, err := s.paymentRepo.FindByAgreement(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	items := make([]RentPaymentResponse, 0, len(payments))
	for _, payment := range payments {
		items = append(items, ToRentPaymentResponse(payment))
	}
	return items, nil
}
