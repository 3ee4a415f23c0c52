package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	procurementapp "github.com/siteops/backend/internal/application/procurement"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// IndentHandler handles material indent endpoints
type IndentHandler struct {
	BaseHandler
	indentService *procurementapp.IndentService
}

// NewIndentHandler creates a new IndentHandler
func NewIndentHandler(indentService *procurementapp.IndentService) *IndentHandler {
	return &IndentHandler{indentService: indentService}
}

// RegisterRoutes registers indent routes
func (h *IndentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	create := middleware.RequirePermission("indent:create")
	approve := middleware.RequireAnyPermission("indent:approve_l1", "indent:approve_l2")

	indents := rg.Group("/indents")
	{
		indents.POST("", create, h.Create)
		indents.GET("", h.List)
		indents.GET("/by-number/:number", h.GetByNumber)
		indents.GET("/:id", h.Get)
		indents.POST("/:id/items", create, h.AddItem)
		indents.PUT("/:id/items/:itemId", create, h.UpdateItemQuantity)
		indents.DELETE("/:id/items/:itemId", create, h.RemoveItem)
		indents.POST("/:id/submit", create, h.Submit)
		indents.POST("/:id/approve-l1", middleware.RequirePermission("indent:approve_l1"), h.ApproveL1)
		indents.POST("/:id/approve-l2", middleware.RequirePermission("indent:approve_l2"), h.ApproveL2)
		indents.POST("/:id/reject", approve, h.Reject)
		indents.POST("/:id/close", create, h.Close)
		indents.DELETE("/:id", create, h.Delete)
	}
}

// Create raises a new material indent
func (h *IndentHandler) Create(c *gin.Context) {
	requestedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req procurementapp.CreateIndentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.indentService.Create(c.Request.Context(), requestedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns an indent by ID
func (h *IndentHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	result, err := h.indentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByNumber returns an indent by its document number
func (h *IndentHandler) GetByNumber(c *gin.Context) {
	result, err := h.indentService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of indents, optionally by site
func (h *IndentHandler) List(c *gin.Context) {
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

	result, err := h.indentService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AddItem adds a line to a draft indent
func (h *IndentHandler) AddItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	var req procurementapp.IndentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.indentService.AddItem(c.Request.Context(), id, req.ItemID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateItemQuantity changes the quantity of a draft indent line
func (h *IndentHandler) UpdateItemQuantity(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req procurementapp.UpdateIndentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.indentService.UpdateItemQuantity(c.Request.Context(), id, itemID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItem removes a line from a draft indent
func (h *IndentHandler) RemoveItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.indentService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Submit submits a draft indent for approval
func (h *IndentHandler) Submit(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	result, err := h.indentService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ApproveL1 records the first-level approval
func (h *IndentHandler) ApproveL1(c *gin.Context) {
	h.approve(c, h.indentService.ApproveL1)
}

// ApproveL2 records the final approval
func (h *IndentHandler) ApproveL2(c *gin.Context) {
	h.approve(c, h.indentService.ApproveL2)
}

func (h *IndentHandler) approve(c *gin.Context, fn func(context.Context, uuid.UUID, uuid.UUID) (*procurementapp.IndentResponse, error)) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	approverID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := fn(c.Request.Context(), id, approverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Reject rejects a pending indent with a reason
func (h *IndentHandler) Reject(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	rejectorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req procurementapp.RejectIndentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.indentService.Reject(c.Request.Context(), id, rejectorID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Close closes an approved indent
func (h *IndentHandler) Close(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	result, err := h.indentService.Close(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete deletes a draft indent
func (h *IndentHandler) Delete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	if err := h.indentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
