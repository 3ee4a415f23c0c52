package report

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/siteops/backend/internal/domain/shared"
)

// ExportFormat selects the export document type
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// IsValid checks if the format is a supported ExportFormat
func (f ExportFormat) IsValid() bool {
	return f == FormatXLSX || f == FormatPDF
}

// ExportService turns assembled reports into downloadable XLSX or PDF
// documents.
type ExportService struct {
	reports  *ReportService
	renderer PDFRenderer
	logger   *zap.Logger
}

// NewExportService creates a new ExportService. The renderer may be nil
// when PDF output is not configured; PDF exports then fail with
// PDF_UNAVAILABLE.
func NewExportService(reports *ReportService, renderer PDFRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reports:  reports,
		renderer: renderer,
		logger:   logger,
	}
}

// ExportAttendance exports the attendance and wage summary
func (s *ExportService) ExportAttendance(ctx context.Context, req AttendanceReportRequest, format ExportFormat) (*ExportFile, error) {
	data, err := s.reports.AttendanceReport(ctx, req)
	if err != nil {
		return nil, err
	}

	columns := []sheetColumn{
		{Title: "Code", Width: 12},
		{Title: "Name", Width: 28},
		{Title: "Trade", Width: 16},
		{Title: "Daily Wage", Width: 12},
		{Title: "Present", Width: 10},
		{Title: "Half Days", Width: 10},
		{Title: "Absent", Width: 10},
		{Title: "OT Hours", Width: 10},
		{Title: "Payable Days", Width: 12},
		{Title: "Wage Amount", Width: 14},
	}
	rows := make([][]any, 0, len(data.Rows))
	for _, r := range data.Rows {
		rows = append(rows, []any{
			r.ManpowerCode, r.ManpowerName, r.Trade,
			r.DailyWage.InexactFloat64(),
			r.PresentDays, r.HalfDays, r.AbsentDays,
			r.OvertimeHours.InexactFloat64(),
			r.PayableDays.InexactFloat64(),
			r.WageAmount.InexactFloat64(),
		})
	}

	name := fmt.Sprintf("attendance-%s-%s", data.SiteID, data.PeriodStart.Format(dateKeyLayout))
	title := "Attendance Summary"
	subtitle := fmt.Sprintf("%s, %s to %s", data.SiteName,
		data.PeriodStart.Format("02 Jan 2006"), data.PeriodEnd.Format("02 Jan 2006"))
	summary := []summaryLine{{Label: "Total Wages", Value: data.TotalWages.StringFixed(2)}}

	return s.build(ctx, format, name, "Attendance", title, subtitle, columns, rows, summary)
}

// ExportStockLedger exports the stock movement ledger
func (s *ExportService) ExportStockLedger(ctx context.Context, req StockLedgerRequest, format ExportFormat) (*ExportFile, error) {
	data, err := s.reports.StockLedger(ctx, req)
	if err != nil {
		return nil, err
	}

	columns := []sheetColumn{
		{Title: "Item Code", Width: 14},
		{Title: "Item Name", Width: 32},
		{Title: "Unit", Width: 8},
		{Title: "Opening", Width: 12},
		{Title: "Inward", Width: 12},
		{Title: "Consumed", Width: 12},
		{Title: "Closing", Width: 12},
	}
	rows := make([][]any, 0, len(data))
	for _, r := range data {
		rows = append(rows, []any{
			r.ItemCode, r.ItemName, r.Unit,
			r.OpeningQty.InexactFloat64(),
			r.InwardQty.InexactFloat64(),
			r.ConsumedQty.InexactFloat64(),
			r.ClosingQty.InexactFloat64(),
		})
	}

	name := fmt.Sprintf("stock-ledger-%s-%s", req.SiteID, req.StartDate.Format(dateKeyLayout))
	subtitle := fmt.Sprintf("%s to %s",
		req.StartDate.Format("02 Jan 2006"), req.EndDate.Format("02 Jan 2006"))

	return s.build(ctx, format, name, "Stock Ledger", "Stock Ledger", subtitle, columns, rows, nil)
}

// ExportCashbookSummary exports the cashbook voucher ledger
func (s *ExportService) ExportCashbookSummary(ctx context.Context, req CashbookSummaryRequest, format ExportFormat) (*ExportFile, error) {
	data, err := s.reports.CashbookSummary(ctx, req)
	if err != nil {
		return nil, err
	}

	columns := []sheetColumn{
		{Title: "Voucher No", Width: 14},
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Mode", Width: 10},
		{Title: "Party", Width: 24},
		{Title: "Head", Width: 18},
		{Title: "Amount", Width: 12},
		{Title: "Balance", Width: 14},
	}
	rows := make([][]any, 0, len(data.Rows))
	for _, r := range data.Rows {
		rows = append(rows, []any{
			r.VoucherNumber, r.VoucherDate.Format(dateKeyLayout),
			r.Type, r.Mode, r.PartyName, r.Head,
			r.Amount.InexactFloat64(),
			r.RunningBalance.InexactFloat64(),
		})
	}

	name := fmt.Sprintf("cashbook-%s-%s", req.CashbookID, req.StartDate.Format(dateKeyLayout))
	subtitle := fmt.Sprintf("%s to %s",
		req.StartDate.Format("02 Jan 2006"), req.EndDate.Format("02 Jan 2006"))
	summary := []summaryLine{
		{Label: "Opening Balance", Value: data.OpeningBalance.StringFixed(2)},
		{Label: "Total Receipts", Value: data.TotalReceipts.StringFixed(2)},
		{Label: "Total Payments", Value: data.TotalPayments.StringFixed(2)},
		{Label: "Closing Balance", Value: data.ClosingBalance.StringFixed(2)},
	}

	return s.build(ctx, format, name, "Cashbook", "Cashbook Summary", subtitle, columns, rows, summary)
}

// ExportBillingMatrix exports the RA billing progress per work order item
func (s *ExportService) ExportBillingMatrix(ctx context.Context, req BillingMatrixRequest, format ExportFormat) (*ExportFile, error) {
	data, err := s.reports.BillingMatrix(ctx, req)
	if err != nil {
		return nil, err
	}

	columns := []sheetColumn{
		{Title: "Item No", Width: 10},
		{Title: "Description", Width: 36},
		{Title: "Unit", Width: 8},
		{Title: "Awarded Qty", Width: 12},
		{Title: "Rate", Width: 10},
		{Title: "Awarded Amount", Width: 14},
		{Title: "Billed Qty", Width: 12},
		{Title: "Billed Amount", Width: 14},
		{Title: "Remaining Qty", Width: 12},
		{Title: "Progress %", Width: 10},
	}
	rows := make([][]any, 0, len(data))
	for _, r := range data {
		rows = append(rows, []any{
			r.ItemNo, r.Description, r.Unit,
			r.AwardedQty.InexactFloat64(),
			r.Rate.InexactFloat64(),
			r.AwardedAmount.InexactFloat64(),
			r.BilledQty.InexactFloat64(),
			r.BilledAmount.InexactFloat64(),
			r.RemainingQty.InexactFloat64(),
			r.ProgressPercent.InexactFloat64(),
		})
	}

	name := fmt.Sprintf("billing-matrix-%s", req.WorkOrderID)

	return s.build(ctx, format, name, "Billing Matrix", "RA Billing Matrix", "", columns, rows, nil)
}

// build renders the prepared table into the requested document format
func (s *ExportService) build(ctx context.Context, format ExportFormat, name, sheetName, title, subtitle string, columns []sheetColumn, rows [][]any, summary []summaryLine) (*ExportFile, error) {
	switch format {
	case FormatXLSX:
		data, err := buildWorkbook(sheetName, columns, rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Filename:    name + ".xlsx",
			ContentType: contentTypeXLSX,
			Data:        data,
		}, nil
	case FormatPDF:
		if s.renderer == nil {
			return nil, shared.NewDomainError("PDF_UNAVAILABLE", "PDF rendering is not configured")
		}
		doc := reportDocument{
			Title:       title,
			Subtitle:    subtitle,
			GeneratedAt: time.Now(),
			Columns:     columnTitles(columns),
			Rows:        stringifyRows(rows),
			Summary:     summary,
		}
		html, err := renderReportHTML(doc)
		if err != nil {
			return nil, err
		}
		data, err := s.renderer.RenderPDF(ctx, title, html)
		if err != nil {
			s.logger.Error("pdf rendering failed", zap.String("report", name), zap.Error(err))
			return nil, shared.NewDomainError("PDF_RENDER_FAILED", "failed to render PDF document")
		}
		return &ExportFile{
			Filename:    name + ".pdf",
			ContentType: contentTypePDF,
			Data:        data,
		}, nil
	default:
		return nil, shared.NewDomainError("UNSUPPORTED_FORMAT", fmt.Sprintf("unsupported export format: %s", format))
	}
}

func columnTitles(columns []sheetColumn) []string {
	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.Title
	}
	return titles
}

func stringifyRows(rows [][]any) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, value := range row {
			switch v := value.(type) {
			case string:
				cells[j] = v
			case float64:
				cells[j] = fmt.Sprintf("%.2f", v)
			default:
				cells[j] = fmt.Sprintf("%v", v)
			}
		}
		out[i] = cells
	}
	return out
}
