package handler

import (
	"github.com/gin-gonic/gin"

	masterdataapp "github.com/siteops/backend/internal/application/masterdata"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// GeoHandler handles state and city endpoints
type GeoHandler struct {
	BaseHandler
	geoService *masterdataapp.GeoService
}

// NewGeoHandler creates a new GeoHandler
func NewGeoHandler(geoService *masterdataapp.GeoService) *GeoHandler {
	return &GeoHandler{geoService: geoService}
}

// RegisterRoutes registers state and city routes
func (h *GeoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("geo:manage")

	states := rg.Group("/states")
	{
		states.POST("", manage, h.CreateState)
		states.GET("", h.ListStates)
		states.GET("/:id", h.GetState)
		states.PUT("/:id", manage, h.UpdateState)
		states.DELETE("/:id", manage, h.DeleteState)
	}

	cities := rg.Group("/cities")
	{
		cities.POST("", manage, h.CreateCity)
		cities.GET("", h.ListCities)
		cities.GET("/:id", h.GetCity)
		cities.PUT("/:id", manage, h.UpdateCity)
		cities.DELETE("/:id", manage, h.DeleteCity)
	}
}

// CreateState creates a new state
func (h *GeoHandler) CreateState(c *gin.Context) {
	var req masterdataapp.CreateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.geoService.CreateState(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetState returns a state by ID
func (h *GeoHandler) GetState(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid state ID")
		return
	}

	result, err := h.geoService.GetState(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListStates returns a paginated list of states
func (h *GeoHandler) ListStates(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.geoService.ListStates(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateState updates a state
func (h *GeoHandler) UpdateState(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid state ID")
		return
	}

	var req masterdataapp.UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.geoService.UpdateState(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteState deletes a state with no cities
func (h *GeoHandler) DeleteState(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid state ID")
		return
	}

	if err := h.geoService.DeleteState(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateCity creates a new city under a state
func (h *GeoHandler) CreateCity(c *gin.Context) {
	var req masterdataapp.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.geoService.CreateCity(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetCity returns a city by ID
func (h *GeoHandler) GetCity(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid city ID")
		return
	}

	result, err := h.geoService.GetCity(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListCities returns a paginated list of cities, optionally by state
func (h *GeoHandler) ListCities(c *gin.Context) {
	stateID, err := parseOptionalUUIDQuery(c, "state_id")
	if err != nil {
		h.BadRequest(c, "Invalid state ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.geoService.ListCities(c.Request.Context(), stateID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateCity updates a city
func (h *GeoHandler) UpdateCity(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid city ID")
		return
	}

	var req masterdataapp.UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.geoService.UpdateCity(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteCity deletes a city not referenced by any site
func (h *GeoHandler) DeleteCity(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid city ID")
		return
	}

	if err := h.geoService.DeleteCity(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
