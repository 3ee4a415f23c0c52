package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/siteops/backend/internal/application/finance"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// BOQHandler handles bill-of-quantities endpoints
type BOQHandler struct {
	BaseHandler
	boqService *financeapp.BOQService
}

// NewBOQHandler creates a new BOQHandler
func NewBOQHandler(boqService *financeapp.BOQService) *BOQHandler {
	return &BOQHandler{boqService: boqService}
}

// RegisterRoutes registers BOQ routes
func (h *BOQHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("boq:manage")

	boqs := rg.Group("/boqs")
	{
		boqs.POST("", manage, h.Create)
		boqs.GET("", h.List)
		boqs.GET("/:id", h.Get)
		boqs.POST("/:id/items", manage, h.AddItem)
		boqs.PUT("/:id/items/:itemId", manage, h.UpdateItem)
		boqs.DELETE("/:id/items/:itemId", manage, h.RemoveItem)
		boqs.POST("/:id/finalize", middleware.RequirePermission("boq:finalize"), h.Finalize)
		boqs.DELETE("/:id", manage, h.Delete)
	}
}

// Create creates a new draft BOQ
func (h *BOQHandler) Create(c *gin.Context) {
	createdBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.CreateBOQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.boqService.Create(c.Request.Context(), createdBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a BOQ by ID
func (h *BOQHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid BOQ ID")
		return
	}

	result, err := h.boqService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of BOQs, optionally by site
func (h *BOQHandler) List(c *gin.Context) {
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

	result, err := h.boqService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// AddItem adds a line to a draft BOQ
func (h *BOQHandler) AddItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid BOQ ID")
		return
	}

	var req financeapp.BOQItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.boqService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateItem updates a draft BOQ line
func (h *BOQHandler) UpdateItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid BOQ ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req financeapp.UpdateBOQItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.boqService.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItem removes a line from a draft BOQ
func (h *BOQHandler) RemoveItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid BOQ ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.boqService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Finalize locks a BOQ so work orders can reference it
func (h *BOQHandler) Finalize(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid BOQ ID")
		return
	}

	finalizedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.boqService.Finalize(c.Request.Context(), id, finalizedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete deletes a draft BOQ
func (h *BOQHandler) Delete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid BOQ ID")
		return
	}

	if err := h.boqService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
