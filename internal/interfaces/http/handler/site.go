package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	masterdataapp "github.com/siteops/backend/internal/application/masterdata"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// SiteHandler handles construction site endpoints
type SiteHandler struct {
	BaseHandler
	siteService *masterdataapp.SiteService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteService *masterdataapp.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// RegisterRoutes registers site routes
func (h *SiteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("site:manage")

	sites := rg.Group("/sites")
	{
		sites.POST("", manage, h.Create)
		sites.GET("", h.List)
		sites.GET("/by-code/:code", h.GetByCode)
		sites.GET("/:id", h.Get)
		sites.PUT("/:id", manage, h.Update)
		sites.POST("/:id/hold", manage, h.Hold)
		sites.POST("/:id/resume", manage, h.Resume)
		sites.POST("/:id/close", manage, h.Close)
	}
}

// Create creates a new site
func (h *SiteHandler) Create(c *gin.Context) {
	var req masterdataapp.CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.siteService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a site by ID
func (h *SiteHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	result, err := h.siteService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByCode returns a site by its unique code
func (h *SiteHandler) GetByCode(c *gin.Context) {
	result, err := h.siteService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of sites, optionally by zone
func (h *SiteHandler) List(c *gin.Context) {
	zoneID, err := parseOptionalUUIDQuery(c, "zone_id")
	if err != nil {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.siteService.List(c.Request.Context(), zoneID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a site
func (h *SiteHandler) Update(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	var req masterdataapp.UpdateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.siteService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Hold puts an active site on hold
func (h *SiteHandler) Hold(c *gin.Context) {
	h.transition(c, h.siteService.Hold)
}

// Resume reactivates a held site
func (h *SiteHandler) Resume(c *gin.Context) {
	h.transition(c, h.siteService.Resume)
}

// Close permanently closes a site
func (h *SiteHandler) Close(c *gin.Context) {
	h.transition(c, h.siteService.Close)
}

func (h *SiteHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*masterdataapp.SiteResponse, error)) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	result, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
