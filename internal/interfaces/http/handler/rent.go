package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/siteops/backend/internal/application/finance"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// RentHandler handles rent agreement and payment endpoints
type RentHandler struct {
	BaseHandler
	rentService *financeapp.RentService
}

// NewRentHandler creates a new RentHandler
func NewRentHandler(rentService *financeapp.RentService) *RentHandler {
	return &RentHandler{rentService: rentService}
}

// RegisterRoutes registers rent routes
func (h *RentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("rent:manage")

	agreements := rg.Group("/rent-agreements")
	{
		agreements.POST("", manage, h.CreateAgreement)
		agreements.GET("", h.ListAgreements)
		agreements.GET("/:id", h.GetAgreement)
		agreements.POST("/:id/revise", manage, h.ReviseRent)
		agreements.POST("/:id/close", manage, h.CloseAgreement)
		agreements.POST("/:id/payments", middleware.RequirePermission("rent:record"), h.RecordPayment)
		agreements.GET("/:id/payments", h.ListPayments)
	}
}

// CreateAgreement creates a new rent agreement
func (h *RentHandler) CreateAgreement(c *gin.Context) {
	var req financeapp.CreateRentAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.rentService.CreateAgreement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetAgreement returns a rent agreement by ID
func (h *RentHandler) GetAgreement(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid agreement ID")
		return
	}

	result, err := h.rentService.GetAgreement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListAgreements returns a paginated list of agreements, optionally by site
func (h *RentHandler) ListAgreements(c *gin.Context) {
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

	result, err := h.rentService.ListAgreements(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ReviseRent sets a new monthly rent on an active agreement
func (h *RentHandler) ReviseRent(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid agreement ID")
		return
	}

	var req financeapp.ReviseRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.rentService.ReviseRent(c.Request.Context(), id, req.MonthlyRent)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CloseAgreement ends an agreement on a date
func (h *RentHandler) CloseAgreement(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid agreement ID")
		return
	}

	var req financeapp.CloseRentAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.rentService.CloseAgreement(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RecordPayment records one month's rent payment
func (h *RentHandler) RecordPayment(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid agreement ID")
		return
	}

	enteredBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req financeapp.RecordRentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.rentService.RecordPayment(c.Request.Context(), id, enteredBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPayments returns all payments under an agreement
func (h *RentHandler) ListPayments(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid agreement ID")
		return
	}

	result, err := h.rentService.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
