package handler

import (
	"github.com/gin-gonic/gin"

	procurementapp "github.com/siteops/backend/internal/application/procurement"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// InwardHandler handles inward bill endpoints
type InwardHandler struct {
	BaseHandler
	inwardService *procurementapp.InwardService
}

// NewInwardHandler creates a new InwardHandler
func NewInwardHandler(inwardService *procurementapp.InwardService) *InwardHandler {
	return &InwardHandler{inwardService: inwardService}
}

// RegisterRoutes registers inward bill routes
func (h *InwardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/inward-bills")
	{
		bills.POST("", middleware.RequirePermission("inward:record"), h.Record)
		bills.GET("", h.List)
		bills.GET("/by-order/:orderId", h.ListByOrder)
		bills.GET("/:id", h.Get)
		bills.POST("/:id/verify", middleware.RequirePermission("inward:verify"), h.Verify)
	}
}

// Record records a material receipt against an issued order and
// increments site stock
func (h *InwardHandler) Record(c *gin.Context) {
	recordedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req procurementapp.RecordInwardBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.inwardService.Record(c.Request.Context(), recordedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Verify marks a recorded bill as verified
func (h *InwardHandler) Verify(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	verifierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.inwardService.Verify(c.Request.Context(), id, verifierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns an inward bill by ID
func (h *InwardHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	result, err := h.inwardService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListByOrder returns all bills recorded against an order
func (h *InwardHandler) ListByOrder(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "orderId")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.inwardService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of inward bills, optionally by site
func (h *InwardHandler) List(c *gin.Context) {
	siteID, err := parseOptionalUUIDQuery(c, "site_id")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
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

	result, err := h.inwardService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
