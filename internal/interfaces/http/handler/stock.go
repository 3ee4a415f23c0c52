package handler

import (
	"github.com/gin-gonic/gin"

	stockapp "github.com/siteops/backend/internal/application/stock"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// StockHandler handles site stock and daily consumption endpoints
type StockHandler struct {
	BaseHandler
	stockService       *stockapp.StockService
	consumptionService *stockapp.ConsumptionService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *stockapp.StockService, consumptionService *stockapp.ConsumptionService) *StockHandler {
	return &StockHandler{
		stockService:       stockService,
		consumptionService: consumptionService,
	}
}

// RegisterRoutes registers stock and consumption routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	post := middleware.RequirePermission("consumption:post")

	stock := rg.Group("/stock")
	{
		stock.GET("/sites/:siteId", h.ListBySite)
		stock.GET("/sites/:siteId/items/:itemId", h.OnHand)
	}

	consumptions := rg.Group("/consumptions")
	{
		consumptions.POST("", post, h.Post)
		consumptions.PUT("/:id", middleware.RequirePermission("consumption:amend"), h.Amend)
		consumptions.GET("/:id", h.Get)
		consumptions.GET("/by-date", h.GetBySiteAndDate)
		consumptions.GET("", h.ListBySiteAndRange)
	}
}

// ListBySite returns the stock rows of a site
func (h *StockHandler) ListBySite(c *gin.Context) {
	siteID, err := parseUUIDParam(c, "siteId")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.stockService.ListBySite(c.Request.Context(), siteID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// OnHand returns the on-hand quantity of one item at a site
func (h *StockHandler) OnHand(c *gin.Context) {
	siteID, err := parseUUIDParam(c, "siteId")
	if err != nil {
		h.BadRequest(c, "Invalid site ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	quantity, err := h.stockService.OnHand(c.Request.Context(), siteID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"site_id": siteID, "item_id": itemID, "quantity": quantity})
}

// Post posts a day's material consumption and decrements site stock
func (h *StockHandler) Post(c *gin.Context) {
	postedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req stockapp.PostConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.consumptionService.Post(c.Request.Context(), postedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Amend replaces a posted day's lines and re-applies the stock delta
func (h *StockHandler) Amend(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consumption ID")
		return
	}

	amendedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req stockapp.AmendConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.consumptionService.Amend(c.Request.Context(), id, amendedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns a consumption document by ID
func (h *StockHandler) Get(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid consumption ID")
		return
	}

	result, err := h.consumptionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetBySiteAndDate returns the consumption document for a site and date
func (h *StockHandler) GetBySiteAndDate(c *gin.Context) {
	siteID, err := parseOptionalUUIDQuery(c, "site_id")
	if err != nil || siteID == nil {
		h.BadRequest(c, "Invalid or missing site ID")
		return
	}

	date, err := parseDateQuery(c, "date")
	if err != nil {
		h.BadRequest(c, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	result, err := h.consumptionService.GetBySiteAndDate(c.Request.Context(), *siteID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListBySiteAndRange returns a site's consumption documents over a range
func (h *StockHandler) ListBySiteAndRange(c *gin.Context) {
	siteID, err := parseOptionalUUIDQuery(c, "site_id")
	if err != nil || siteID == nil {
		h.BadRequest(c, "Invalid or missing site ID")
		return
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		h.BadRequest(c, "Invalid or missing from date, expected YYYY-MM-DD")
		return
	}

	to, err := parseDateQuery(c, "to")
	if err != nil {
		h.BadRequest(c, "Invalid or missing to date, expected YYYY-MM-DD")
		return
	}

	result, err := h.consumptionService.ListBySiteAndRange(c.Request.Context(), *siteID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
