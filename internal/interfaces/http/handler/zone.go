package handler

import (
	"github.com/gin-gonic/gin"

	masterdataapp "github.com/siteops/backend/internal/application/masterdata"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// ZoneHandler handles operational zone endpoints
type ZoneHandler struct {
	BaseHandler
	zoneService *masterdataapp.ZoneService
}

// NewZoneHandler creates a new ZoneHandler
func NewZoneHandler(zoneService *masterdataapp.ZoneService) *ZoneHandler {
	return &ZoneHandler{zoneService: zoneService}
}

// RegisterRoutes registers zone routes
func (h *ZoneHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("zone:manage")

	zones := rg.Group("/zones")
	{
		zones.POST("", manage, h.Create)
		zones.GET("", h.List)
		zones.GET("/:id", h.Get)
		zones.PUT("/:id", manage, h.Update)
		zones.DELETE("/:id", manage, h.Delete)
	}
}

// Create creates a new zone
func (h *ZoneHandler) Create(c *gin.Context) {
	var req masterdataapp.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.zoneService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a zone by ID
func (h *ZoneHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	result, err := h.zoneService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of zones
func (h *ZoneHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.zoneService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a zone
func (h *ZoneHandler) Update(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	var req masterdataapp.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.zoneService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete deletes a zone with no sites
func (h *ZoneHandler) Delete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	if err := h.zoneService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
