package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	masterdataapp "github.com/siteops/backend/internal/application/masterdata"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// VendorHandler handles vendor endpoints
type VendorHandler struct {
	BaseHandler
	vendorService *masterdataapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *masterdataapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// RegisterRoutes registers vendor routes
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("vendor:manage")

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", manage, h.Create)
		vendors.GET("", h.List)
		vendors.GET("/by-code/:code", h.GetByCode)
		vendors.GET("/:id", h.Get)
		vendors.PUT("/:id", manage, h.Update)
		vendors.POST("/:id/activate", manage, h.Activate)
		vendors.POST("/:id/deactivate", manage, h.Deactivate)
		vendors.POST("/:id/block", manage, h.Block)
	}
}

// Create creates a new vendor
func (h *VendorHandler) Create(c *gin.Context) {
	var req masterdataapp.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.vendorService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a vendor by ID
func (h *VendorHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	result, err := h.vendorService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByCode returns a vendor by its code
func (h *VendorHandler) GetByCode(c *gin.Context) {
	result, err := h.vendorService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of vendors
func (h *VendorHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	if vendorType := c.Query("type"); vendorType != "" {
		filter.Filters["type"] = vendorType
	}

	result, err := h.vendorService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a vendor
func (h *VendorHandler) Update(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	var req masterdataapp.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.vendorService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Activate reactivates a vendor
func (h *VendorHandler) Activate(c *gin.Context) {
	h.transition(c, h.vendorService.Activate)
}

// Deactivate deactivates a vendor
func (h *VendorHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.vendorService.Deactivate)
}

// Block blocks a vendor from new orders
func (h *VendorHandler) Block(c *gin.Context) {
	h.transition(c, h.vendorService.Block)
}

func (h *VendorHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*masterdataapp.VendorResponse, error)) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	result, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
