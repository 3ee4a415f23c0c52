package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/siteops/backend/internal/domain/report"
	"github.com/siteops/backend/internal/domain/shared"
)

// MockPDFRenderer is a mock of PDFRenderer
type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) RenderPDF(ctx context.Context, title, html string) ([]byte, error) {
	args := m.Called(ctx, title, html)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func attendanceFixture(t *testing.T) (*ReportService, *reportMocks, AttendanceReportRequest) {
	t.Helper()
	svc, m := newReportService(t)
	site := reportSite(t)
	m.sites.On("FindByID", mock.Anything, site.ID).Return(site, nil)
	m.attendance.On("GetAttendanceSummary", mock.AnythingOfType("report.AttendanceReportFilter")).Return([]report.AttendanceReportRow{
		{
			ManpowerID:    uuid.New(),
			ManpowerCode:  "MP-0042",
			ManpowerName:  "Ramesh Yadav",
			Trade:         "mason",
			DailyWage:     decimal.NewFromInt(800),
			PresentDays:   22,
			HalfDays:      4,
			AbsentDays:    4,
			OvertimeHours: decimal.NewFromInt(16),
		},
	}, nil)

	req := AttendanceReportRequest{
		SiteID:    site.ID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	return svc, m, req
}

func TestExportService_AttendanceXLSX(t *testing.T) {
	reports, _, req := attendanceFixture(t)
	svc := NewExportService(reports, nil, nil)

	file, err := svc.ExportAttendance(context.Background(), req, FormatXLSX)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))
	assert.Equal(t, contentTypeXLSX, file.ContentType)
	require.NotEmpty(t, file.Data)

	// the workbook must round-trip with headers and the worker row intact
	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	header, err := wb.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Code", header)

	name, err := wb.GetCellValue("Attendance", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ramesh Yadav", name)
}

func TestExportService_AttendancePDF(t *testing.T) {
	reports, _, req := attendanceFixture(t)
	renderer := new(MockPDFRenderer)
	renderer.On("RenderPDF", mock.Anything, "Attendance Summary", mock.AnythingOfType("string")).
		Return([]byte("%PDF-1.7"), nil)
	svc := NewExportService(reports, renderer, nil)

	file, err := svc.ExportAttendance(context.Background(), req, FormatPDF)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.Equal(t, contentTypePDF, file.ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), file.Data)

	// rendered HTML carries the report data
	html := renderer.Calls[0].Arguments.String(2)
	assert.Contains(t, html, "Ramesh Yadav")
	assert.Contains(t, html, "Riverside Towers")
	assert.Contains(t, html, "Total Wages")
}

func TestExportService_PDFWithoutRenderer(t *testing.T) {
	reports, _, req := attendanceFixture(t)
	svc := NewExportService(reports, nil, nil)

	_, err := svc.ExportAttendance(context.Background(), req, FormatPDF)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PDF_UNAVAILABLE", domainErr.Code)
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	reports, _, req := attendanceFixture(t)
	svc := NewExportService(reports, nil, nil)

	_, err := svc.ExportAttendance(context.Background(), req, ExportFormat("csv"))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNSUPPORTED_FORMAT", domainErr.Code)
}

func TestExportService_StockLedgerXLSX(t *testing.T) {
	reports, m := newReportService(t)
	site := reportSite(t)
	m.sites.On("FindByID", mock.Anything, site.ID).Return(site, nil)
	m.stock.On("GetStockLedger", mock.AnythingOfType("report.StockLedgerFilter")).Return([]report.StockLedgerRow{
		{
			ItemID:      uuid.New(),
			ItemCode:    "MAT-001",
			ItemName:    "OPC 53 Grade Cement",
			Unit:        "bag",
			OpeningQty:  decimal.NewFromInt(40),
			InwardQty:   decimal.NewFromInt(100),
			ConsumedQty: decimal.NewFromInt(55),
		},
	}, nil)
	svc := NewExportService(reports, nil, nil)

	file, err := svc.ExportStockLedger(context.Background(), StockLedgerRequest{
		SiteID:    site.ID,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}, FormatXLSX)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	closing, err := wb.GetCellValue("Stock Ledger", "G2")
	require.NoError(t, err)
	assert.Equal(t, "85", closing)
}
