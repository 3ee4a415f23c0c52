package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	reportapp "github.com/siteops/backend/internal/application/report"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles report and export endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
	exportService *reportapp.ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, exportService *reportapp.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.Use(middleware.RequirePermission("report:read"))
	{
		reports.GET("/attendance", h.Attendance)
		reports.GET("/attendance/export", h.ExportAttendance)
		reports.GET("/billing-matrix", h.BillingMatrix)
		reports.GET("/billing-matrix/export", h.ExportBillingMatrix)
		reports.GET("/stock-ledger", h.StockLedger)
		reports.GET("/stock-ledger/export", h.ExportStockLedger)
		reports.GET("/current-stock", h.CurrentStock)
		reports.GET("/cashbook-summary", h.CashbookSummary)
		reports.GET("/cashbook-summary/export", h.ExportCashbookSummary)
	}
}

// Attendance returns the attendance and wage summary for a site and period
func (h *ReportHandler) Attendance(c *gin.Context) {
	var req reportapp.AttendanceReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reportService.AttendanceReport(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// BillingMatrix returns per-line billing progress for a work order
func (h *ReportHandler) BillingMatrix(c *gin.Context) {
	var req reportapp.BillingMatrixRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reportService.BillingMatrix(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StockLedger returns opening/inward/consumed/closing per item for a period
func (h *ReportHandler) StockLedger(c *gin.Context) {
	var req reportapp.StockLedgerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reportService.StockLedger(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CurrentStock returns the live on-hand position of a site
func (h *ReportHandler) CurrentStock(c *gin.Context) {
	siteID, err := parseOptionalUUIDQuery(c, "site_id")
	if err != nil || siteID == nil {
		h.BadRequest(c, "Invalid or missing site ID")
		return
	}

	result, err := h.reportService.CurrentStock(c.Request.Context(), *siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CashbookSummary returns the voucher ledger with running balances
func (h *ReportHandler) CashbookSummary(c *gin.Context) {
	var req reportapp.CashbookSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reportService.CashbookSummary(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ExportAttendance streams the attendance report as XLSX or PDF
func (h *ReportHandler) ExportAttendance(c *gin.Context) {
	var req reportapp.AttendanceReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	format, ok := h.exportFormat(c)
	if !ok {
		return
	}

	file, err := h.exportService.ExportAttendance(c.Request.Context(), req, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendFile(c, file)
}

// ExportBillingMatrix streams the billing matrix as XLSX or PDF
func (h *ReportHandler) ExportBillingMatrix(c *gin.Context) {
	var req reportapp.BillingMatrixRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	format, ok := h.exportFormat(c)
	if !ok {
		return
	}

	file, err := h.exportService.ExportBillingMatrix(c.Request.Context(), req, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendFile(c, file)
}

// ExportStockLedger streams the stock ledger as XLSX or PDF
func (h *ReportHandler) ExportStockLedger(c *gin.Context) {
	var req reportapp.StockLedgerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	format, ok := h.exportFormat(c)
	if !ok {
		return
	}

	file, err := h.exportService.ExportStockLedger(c.Request.Context(), req, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendFile(c, file)
}

// ExportCashbookSummary streams the cashbook summary as XLSX or PDF
func (h *ReportHandler) ExportCashbookSummary(c *gin.Context) {
	var req reportapp.CashbookSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	format, ok := h.exportFormat(c)
	if !ok {
		return
	}

	file, err := h.exportService.ExportCashbookSummary(c.Request.Context(), req, format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendFile(c, file)
}

// exportFormat reads the format query parameter, defaulting to xlsx
func (h *ReportHandler) exportFormat(c *gin.Context) (reportapp.ExportFormat, bool) {
	format := reportapp.ExportFormat(c.DefaultQuery("format", string(reportapp.FormatXLSX)))
	if !format.IsValid() {
		h.BadRequest(c, "Unsupported export format, expected xlsx or pdf")
		return "", false
	}
	return format, true
}

func (h *ReportHandler) sendFile(c *gin.Context, file *reportapp.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
