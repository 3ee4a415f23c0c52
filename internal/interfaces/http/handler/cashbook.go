package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/siteops/backend/internal/application/finance"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// CashbookHandler handles cashbook and voucher endpoints
type CashbookHandler struct {
	BaseHandler
	cashbookService *financeapp.CashbookService
}

// NewCashbookHandler creates a new CashbookHandler
func NewCashbookHandler(cashbookService *financeapp.CashbookService) *CashbookHandler {
	return &CashbookHandler{cashbookService: cashbookService}
}

// RenameCashbookRequest carries the new cashbook name
type RenameCashbookRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// RegisterRoutes registers cashbook routes
func (h *CashbookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("cashbook:manage")
	record := middleware.RequirePermission("cashbook:record")

	cashbooks := rg.Group("/cashbooks")
	{
		cashbooks.POST("", manage, h.Open)
		cashbooks.GET("/by-site/:siteId", h.GetBySite)
		cashbooks.PUT("/:id/name", manage, h.Rename)
		cashbooks.GET("/:id/balance", h.Balance)
		cashbooks.POST("/:id/vouchers", record, h.RecordVoucher)
		cashbooks.GET("/:id/vouchers", h.ListVouchers)
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("/:id/cancel", record, h.CancelVoucher)
	}
}

// Open opens the single cashbook of a site
func (h *CashbookHandler) Open(c *gin.Context) {
	var req financeapp.OpenCashbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.cashbookService.Open(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetBySite returns the cashbook of a site
func (h *CashbookHandler) GetBySite(c *gin.Context) {
	siteID, err := parseUUIDParam(c, "siteId")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	result, err := h.cashbookService.GetBySite(c.Request.Context(), siteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Rename renames a cashbook
func (h *CashbookHandler) Rename(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cashbook ID")
		return
	}

	var req RenameCashbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.cashbookService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Balance returns the running balance as of an optional date
func (h *CashbookHandler) Balance(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cashbook ID")
		return
	}

	until := time.Now()
	if c.Query("until") != "" {
		until, err = parseDateQuery(c, "until")
		if err != nil {
			h.BadRequest(c, "Invalid until date, expected YYYY-MM-DD")
			return
		}
	}

	balance, err := h.cashbookService.Balance(c.Request.Context(), id, until)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"cashbook_id": id, "until": until.Format(dateLayout), "balance": balance})
}

// RecordVoucher records a payment or receipt voucher
func (h *CashbookHandler) RecordVoucher(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cashbook ID")
		return
	}

	enteredBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.cashbookService.RecordVoucher(c.Request.Context(), id, enteredBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// CancelVoucher voids a voucher with a reason
func (h *CashbookHandler) CancelVoucher(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	var req financeapp.CancelVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.cashbookService.CancelVoucher(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListVouchers returns a paginated list of a cashbook's vouchers
func (h *CashbookHandler) ListVouchers(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cashbook ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	if vType := c.Query("type"); vType != "" {
		filter.Filters["type"] = vType
	}
	if head := c.Query("head"); head != "" {
		filter.Filters["head"] = head
	}

	result, err := h.cashbookService.ListVouchers(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
