package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/siteops/backend/internal/application/finance"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// WorkOrderHandler handles work order and RA bill endpoints
type WorkOrderHandler struct {
	BaseHandler
	orderService *financeapp.WorkOrderService
	billService  *financeapp.WorkOrderBillService
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(orderService *financeapp.WorkOrderService, billService *financeapp.WorkOrderBillService) *WorkOrderHandler {
	return &WorkOrderHandler{
		orderService: orderService,
		billService:  billService,
	}
}

// RegisterRoutes registers work order and RA bill routes
func (h *WorkOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("work_order:manage")

	orders := rg.Group("/work-orders")
	{
		orders.POST("", manage, h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/issue", manage, h.Issue)
		orders.POST("/:id/complete", manage, h.Complete)
		orders.POST("/:id/cancel", manage, h.Cancel)
		orders.GET("/:id/bills", h.ListBills)
	}

	bills := rg.Group("/ra-bills")
	{
		bills.POST("", middleware.RequirePermission("ra_bill:create"), h.CreateBill)
		bills.GET("", h.ListAllBills)
		bills.GET("/:id", h.GetBill)
		bills.POST("/:id/certify", middleware.RequirePermission("ra_bill:certify"), h.CertifyBill)
	}
}

// Create awards a new work order against a finalized BOQ
func (h *WorkOrderHandler) Create(c *gin.Context) {
	createdBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.Create(c.Request.Context(), createdBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a work order by ID
func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of work orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	siteID, err := parseOptionalUUIDQuery(c, "site_id")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	contractorID, err := parseOptionalUUIDQuery(c, "contractor_id")
	if err != nil {
		h.BadRequest(c, "Invalid contractor ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.orderService.List(c.Request.Context(), siteID, contractorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Issue issues a draft work order to its contractor
func (h *WorkOrderHandler) Issue(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	result, err := h.orderService.Issue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Complete marks an issued work order as completed
func (h *WorkOrderHandler) Complete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	result, err := h.orderService.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel cancels a work order with a reason
func (h *WorkOrderHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	var req financeapp.CancelWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateBill raises a running-account bill against an issued work order
func (h *WorkOrderHandler) CreateBill(c *gin.Context) {
	createdBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateRABillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.billService.Create(c.Request.Context(), createdBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetBill returns an RA bill by ID
func (h *WorkOrderHandler) GetBill(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	result, err := h.billService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListBills returns all RA bills raised against a work order
func (h *WorkOrderHandler) ListBills(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	result, err := h.billService.ListByWorkOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListAllBills returns a paginated list of RA bills
func (h *WorkOrderHandler) ListAllBills(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.billService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// CertifyBill certifies a draft RA bill
func (h *WorkOrderHandler) CertifyBill(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	certifierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.billService.Certify(c.Request.Context(), id, certifierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
