package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/report"
	"github.com/siteops/backend/internal/domain/shared"
)

const dateKeyLayout = "2006-01-02"

var (
	two     = decimal.NewFromInt(2)
	eight   = decimal.NewFromInt(8)
	hundred = decimal.NewFromInt(100)
)

// ReportService assembles read-model reports from the aggregated
// repository queries, applies the derived columns the read models leave
// to the application layer, and caches the assembled payloads.
type ReportService struct {
	attendanceRepo report.AttendanceReportRepository
	financeRepo    report.FinanceReportRepository
	stockRepo      report.StockReportRepository
	siteRepo       masterdata.SiteRepository
	cashbookRepo   finance.CashbookRepository
	workOrderRepo  finance.WorkOrderRepository
	cache          ReportCache
	cacheTTL       time.Duration
	logger         *zap.Logger
}

// NewReportService creates a new ReportService. Pass a NoOpReportCache
// when no cache backend is configured.
func NewReportService(
	attendanceRepo report.AttendanceReportRepository,
	financeRepo report.FinanceReportRepository,
	stockRepo report.StockReportRepository,
	siteRepo masterdata.SiteRepository,
	cashbookRepo finance.CashbookRepository,
	workOrderRepo finance.WorkOrderRepository,
	cache ReportCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	if cache == nil {
		cache = NewNoOpReportCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		attendanceRepo: attendanceRepo,
		financeRepo:    financeRepo,
		stockRepo:      stockRepo,
		siteRepo:       siteRepo,
		cashbookRepo:   cashbookRepo,
		workOrderRepo:  workOrderRepo,
		cache:          cache,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

// AttendanceReport builds the per-worker attendance and wage summary for
// a site over a period. Payable days count a half day as 0.5 and
// overtime is paid at the hourly rate derived from an 8-hour day.
func (s *ReportService) AttendanceReport(ctx context.Context, req AttendanceReportRequest) (*report.AttendanceReport, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, shared.NewDomainError("INVALID_RANGE", "end date must not be before start date")
	}

	site, err := s.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:attendance:%s:%s:%s:%s",
		req.SiteID, req.StartDate.Format(dateKeyLayout), req.EndDate.Format(dateKeyLayout), req.Trade)
	var cached report.AttendanceReport
	if s.cacheGet(ctx, key, req.Refresh, &cached) {
		return &cached, nil
	}

	rows, err := s.attendanceRepo.GetAttendanceSummary(report.AttendanceReportFilter{
		SiteID:    req.SiteID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Trade:     req.Trade,
	})
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range rows {
		row := &rows[i]
		row.PayableDays = decimal.NewFromInt(row.PresentDays).
			Add(decimal.NewFromInt(row.HalfDays).Div(two))
		overtimePay := row.OvertimeHours.Mul(row.DailyWage).Div(eight)
		row.WageAmount = row.PayableDays.Mul(row.DailyWage).Add(overtimePay)
		total = total.Add(row.WageAmount)
	}

	result := &report.AttendanceReport{
		SiteID:      req.SiteID,
		SiteName:    site.Name,
		PeriodStart: req.StartDate,
		PeriodEnd:   req.EndDate,
		Rows:        rows,
		TotalWages:  total,
	}
	s.cacheSet(ctx, key, result)
	return result, nil
}

// BillingMatrix builds the cumulative RA billing progress per awarded
// work order item.
func (s *ReportService) BillingMatrix(ctx context.Context, req BillingMatrixRequest) ([]report.BillingMatrixRow, error) {
	if _, err := s.workOrderRepo.FindByID(ctx, req.WorkOrderID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:billing-matrix:%s", req.WorkOrderID)
	var cached []report.BillingMatrixRow
	if s.cacheGet(ctx, key, req.Refresh, &cached) {
		return cached, nil
	}

	rows, err := s.financeRepo.GetBillingMatrix(req.WorkOrderID)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		row := &rows[i]
		row.AwardedAmount = row.AwardedQty.Mul(row.Rate)
		row.BilledAmount = row.BilledQty.Mul(row.Rate)
		row.RemainingQty = row.AwardedQty.Sub(row.BilledQty)
		if row.AwardedQty.IsPositive() {
			row.ProgressPercent = row.BilledQty.Div(row.AwardedQty).Mul(hundred).Round(2)
		} else {
			row.ProgressPercent = decimal.Zero
		}
	}

	s.cacheSet(ctx, key, rows)
	return rows, nil
}

// StockLedger builds the opening/inward/consumed/closing movement view
// per item at a site over a period.
func (s *ReportService) StockLedger(ctx context.Context, req StockLedgerRequest) ([]report.StockLedgerRow, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, shared.NewDomainError("INVALID_RANGE", "end date must not be before start date")
	}
	if _, err := s.siteRepo.FindByID(ctx, req.SiteID); err != nil {
		return nil, err
	}

	itemKey := "all"
	if req.ItemID != nil {
		itemKey = req.ItemID.String()
	}
	key := fmt.Sprintf("report:stock-ledger:%s:%s:%s:%s",
		req.SiteID, req.StartDate.Format(dateKeyLayout), req.EndDate.Format(dateKeyLayout), itemKey)
	var cached []report.StockLedgerRow
	if s.cacheGet(ctx, key, req.Refresh, &cached) {
		return cached, nil
	}

	rows, err := s.stockRepo.GetStockLedger(report.StockLedgerFilter{
		SiteID:    req.SiteID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		ItemID:    req.ItemID,
	})
	if err != nil {
		return nil, err
	}

	for i := range rows {
		row := &rows[i]
		row.ClosingQty = row.OpeningQty.Add(row.InwardQty).Sub(row.ConsumedQty)
	}

	s.cacheSet(ctx, key, rows)
	return rows, nil
}

// CurrentStock returns the live on-hand quantities for a site. The view
// reads the stock rows directly and is never cached.
func (s *ReportService) CurrentStock(ctx context.Context, siteID uuid.UUID) ([]report.CurrentStockRow, error) {
	if _, err := s.siteRepo.FindByID(ctx, siteID); err != nil {
		return nil, err
	}
	return s.stockRepo.GetCurrentStock(siteID)
}

// CashbookSummary builds the voucher ledger for a cashbook over a
// period. The opening balance is the cashbook's opening balance plus the
// net of all vouchers dated before the period start.
func (s *ReportService) CashbookSummary(ctx context.Context, req CashbookSummaryRequest) (*report.CashbookSummary, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, shared.NewDomainError("INVALID_RANGE", "end date must not be before start date")
	}

	cashbook, err := s.cashbookRepo.FindByID(ctx, req.CashbookID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:cashbook:%s:%s:%s",
		req.CashbookID, req.StartDate.Format(dateKeyLayout), req.EndDate.Format(dateKeyLayout))
	var cached report.CashbookSummary
	if s.cacheGet(ctx, key, req.Refresh, &cached) {
		return &cached, nil
	}

	priorReceipts, priorPayments, err := s.financeRepo.GetCashFlows(req.CashbookID, req.StartDate)
	if err != nil {
		return nil, err
	}
	opening := cashbook.OpeningBalance.Add(priorReceipts).Sub(priorPayments)

	rows, err := s.financeRepo.GetCashbookRows(report.CashbookSummaryFilter{
		CashbookID: req.CashbookID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		return nil, err
	}

	balance := opening
	receipts := decimal.Zero
	payments := decimal.Zero
	for i := range rows {
		row := &rows[i]
		if row.Type == string(finance.VoucherTypeReceipt) {
			balance = balance.Add(row.Amount)
			receipts = receipts.Add(row.Amount)
		} else {
			balance = balance.Sub(row.Amount)
			payments = payments.Add(row.Amount)
		}
		row.RunningBalance = balance
	}

	result := &report.CashbookSummary{
		CashbookID:     req.CashbookID,
		SiteID:         cashbook.SiteID,
		PeriodStart:    req.StartDate,
		PeriodEnd:      req.EndDate,
		OpeningBalance: opening,
		TotalReceipts:  receipts,
		TotalPayments:  payments,
		ClosingBalance: balance,
		Rows:           rows,
	}
	s.cacheSet(ctx, key, result)
	return result, nil
}

// cacheGet loads key into dest unless refresh forces a rebuild. Cache
// backend failures degrade to a miss.
func (s *ReportService) cacheGet(ctx context.Context, key string, refresh bool, dest any) bool {
	if refresh {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

// cacheSet stores the assembled payload, logging backend failures
// without surfacing them to the caller.
func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
