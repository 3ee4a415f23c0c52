package handler

import (
	"github.com/gin-gonic/gin"

	workforceapp "github.com/siteops/backend/internal/application/workforce"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// ManpowerHandler handles workforce registry endpoints
type ManpowerHandler struct {
	BaseHandler
	manpowerService *workforceapp.ManpowerService
	transferService *workforceapp.TransferService
}

// NewManpowerHandler creates a new ManpowerHandler
func NewManpowerHandler(manpowerService *workforceapp.ManpowerService, transferService *workforceapp.TransferService) *ManpowerHandler {
	return &ManpowerHandler{
		manpowerService: manpowerService,
		transferService: transferService,
	}
}

// RegisterRoutes registers manpower and transfer routes
func (h *ManpowerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("manpower:manage")

	manpower := rg.Group("/manpower")
	{
		manpower.POST("", manage, h.Create)
		manpower.GET("", h.List)
		manpower.GET("/by-code/:code", h.GetByCode)
		manpower.GET("/:id", h.Get)
		manpower.PUT("/:id", manage, h.Update)
		manpower.POST("/:id/revise-wage", manage, h.ReviseWage)
		manpower.POST("/:id/activate", manage, h.Activate)
		manpower.POST("/:id/deactivate", manage, h.Deactivate)
		manpower.POST("/:id/exit", manage, h.Exit)
		manpower.POST("/:id/transfer", middleware.RequirePermission("manpower:transfer"), h.Transfer)
		manpower.GET("/:id/transfers", h.TransferHistory)
	}
}

// Create registers a new worker
func (h *ManpowerHandler) Create(c *gin.Context) {
	var req workforceapp.CreateManpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.manpowerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a worker by ID
func (h *ManpowerHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	result, err := h.manpowerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByCode returns a worker by code
func (h *ManpowerHandler) GetByCode(c *gin.Context) {
	result, err := h.manpowerService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of workers, optionally by site
func (h *ManpowerHandler) List(c *gin.Context) {
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

	if trade := c.Query("trade"); trade != "" {
		filter.Filters["trade"] = trade
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.manpowerService.List(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a worker's profile
func (h *ManpowerHandler) Update(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	var req workforceapp.UpdateManpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.manpowerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ReviseWage sets a new daily wage
func (h *ManpowerHandler) ReviseWage(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	var req workforceapp.ReviseWageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.manpowerService.ReviseWage(c.Request.Context(), id, req.DailyWage)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Activate reactivates a worker
func (h *ManpowerHandler) Activate(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	result, err := h.manpowerService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deactivate deactivates a worker
func (h *ManpowerHandler) Deactivate(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	result, err := h.manpowerService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Exit marks a worker as permanently exited
func (h *ManpowerHandler) Exit(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	var req workforceapp.ExitManpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.manpowerService.Exit(c.Request.Context(), id, req.ExitedOn)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Transfer moves a worker to another site
func (h *ManpowerHandler) Transfer(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	transferredBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req workforceapp.TransferManpowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.transferService.Transfer(c.Request.Context(), id, transferredBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// TransferHistory returns a worker's transfer history
func (h *ManpowerHandler) TransferHistory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid manpower ID")
		return
	}

	result, err := h.transferService.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
