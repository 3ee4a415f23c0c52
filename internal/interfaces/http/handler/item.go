package handler

import (
	"github.com/gin-gonic/gin"

	masterdataapp "github.com/siteops/backend/internal/application/masterdata"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
)

// ItemHandler handles item category and item endpoints
type ItemHandler struct {
	BaseHandler
	categoryService *masterdataapp.ItemCategoryService
	itemService     *masterdataapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(categoryService *masterdataapp.ItemCategoryService, itemService *masterdataapp.ItemService) *ItemHandler {
	return &ItemHandler{
		categoryService: categoryService,
		itemService:     itemService,
	}
}

// RegisterRoutes registers item category and item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manage := middleware.RequirePermission("item:manage")

	categories := rg.Group("/item-categories")
	{
		categories.POST("", manage, h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", manage, h.UpdateCategory)
		categories.DELETE("/:id", manage, h.DeleteCategory)
	}

	items := rg.Group("/items")
	{
		items.POST("", manage, h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/by-code/:code", h.GetItemByCode)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", manage, h.UpdateItem)
		items.POST("/:id/activate", manage, h.ActivateItem)
		items.POST("/:id/deactivate", manage, h.DeactivateItem)
	}
}

// CreateCategory creates a new item category
func (h *ItemHandler) CreateCategory(c *gin.Context) {
	var req masterdataapp.CreateItemCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetCategory returns an item category by ID
func (h *ItemHandler) GetCategory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	result, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListCategories returns a paginated list of item categories
func (h *ItemHandler) ListCategories(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateCategory updates an item category
func (h *ItemHandler) UpdateCategory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req masterdataapp.UpdateItemCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteCategory deletes an empty item category
func (h *ItemHandler) DeleteCategory(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateItem creates a new item
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req masterdataapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetItemByCode returns an item by its code
func (h *ItemHandler) GetItemByCode(c *gin.Context) {
	result, err := h.itemService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetItem returns an item by ID
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListItems returns a paginated list of items, optionally by category
func (h *ItemHandler) ListItems(c *gin.Context) {
	categoryID, err := parseOptionalUUIDQuery(c, "category_id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.itemService.List(c.Request.Context(), categoryID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateItem updates an item
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req masterdataapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ActivateItem reactivates an item
func (h *ItemHandler) ActivateItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.itemService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeactivateItem deactivates an item
func (h *ItemHandler) DeactivateItem(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	result, err := h.itemService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
