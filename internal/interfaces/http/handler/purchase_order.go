package handler

import (
	"github.com/gin-gonic/gin"

	procurementapp "github.com/siteops/backend/internal/application/procurement"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *procurementapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *procurementapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("purchase_order:manage")

	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", manage, h.Create)
		orders.GET("", h.List)
		orders.GET("/by-number/:number", h.GetByNumber)
		orders.GET("/by-indent/:indentId", h.ListBySourceIndent)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/items", manage, h.AddItem)
		orders.PUT("/:id/items/:itemId", manage, h.UpdateItem)
		orders.DELETE("/:id/items/:itemId", manage, h.RemoveItem)
		orders.POST("/:id/issue", manage, h.Issue)
		orders.POST("/:id/cancel", manage, h.Cancel)
		orders.DELETE("/:id", manage, h.Delete)
	}
}

// Create creates a new purchase order, optionally from an approved indent
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	createdBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req procurementapp.CreatePurchaseOrderRequest
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

// Get returns a purchase order by ID
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByNumber returns a purchase order by its document number
func (h *PurchaseOrderHandler) GetByNumber(c *gin.Context) {
	result, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns a paginated list of purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	siteID, err := parseOptionalUUIDQuery(c, "site_id")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	vendorID, err := parseOptionalUUIDQuery(c, "vendor_id")
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
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

	result, err := h.orderService.List(c.Request.Context(), siteID, vendorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListBySourceIndent returns all orders raised from an indent
func (h *PurchaseOrderHandler) ListBySourceIndent(c *gin.Context) {
	indentID, err := parseUUIDParam(c, "indentId")
	if err != nil {
		h.BadRequest(c, "Invalid indent ID")
		return
	}

	result, err := h.orderService.ListBySourceIndent(c.Request.Context(), indentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddItem adds a line to a draft order
func (h *PurchaseOrderHandler) AddItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.PurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateItem changes quantity or rate of a draft order line
func (h *PurchaseOrderHandler) UpdateItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req procurementapp.UpdatePurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItem removes a line from a draft order
func (h *PurchaseOrderHandler) RemoveItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.orderService.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Issue issues a draft order to its vendor
func (h *PurchaseOrderHandler) Issue(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderService.Issue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel cancels an order with a reason
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.CancelPurchaseOrderRequest
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

// Delete deletes a draft order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
