package masterdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// ItemCategoryService handles item category operations
type ItemCategoryService struct {
	categoryRepo masterdata.ItemCategoryRepository
	itemRepo     masterdata.ItemRepository
}

// NewItemCategoryService creates a new ItemCategoryService
func NewItemCategoryService(categoryRepo masterdata.ItemCategoryRepository, itemRepo masterdata.ItemRepository) *ItemCategoryService {
	return &ItemCategoryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// Create creates a new item category
func (s *ItemCategoryService) Create(ctx context.Context, req CreateItemCategoryRequest) (*ItemCategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := masterdata.NewItemCategory(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToItemCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category by ID
func (s *ItemCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*ItemCategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemCategoryResponse(category)
	return &resp, nil
}

// List lists categories with pagination
func (s *ItemCategoryService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ItemCategoryResponse], error) {
	filter.Normalize()

	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ItemCategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, ToItemCategoryResponse(&categories[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update renames a category
func (s *ItemCategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateItemCategoryRequest) (*ItemCategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	resp := ToItemCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category with no items under it
func (s *ItemCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.itemRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category has items and cannot be deleted")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ItemService handles material item operations
type ItemService struct {
	itemRepo     masterdata.ItemRepository
	categoryRepo masterdata.ItemCategoryRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo masterdata.ItemRepository, categoryRepo masterdata.ItemCategoryRepository) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item with this code already exists")
	}
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	item, err := masterdata.NewItem(req.Code, req.Name, req.CategoryID, req.Unit)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByCode retrieves an item by its code
func (s *ItemService) GetByCode(ctx context.Context, code string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List lists items, optionally scoped to a category
func (s *ItemService) List(ctx context.Context, categoryID *uuid.UUID, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	filter.Normalize()

	var (
		found []masterdata.Item
		err   error
	)
	if categoryID != nil {
		found, err = s.itemRepo.FindByCategory(ctx, *categoryID, filter)
	} else {
		found, err = s.itemRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ItemResponse, 0, len(found))
	for i := range found {
		items = append(items, ToItemResponse(&found[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes item attributes
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := item.Name
	if req.Name != nil {
		name = *req.Name
	}
	categoryID := item.CategoryID
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		categoryID = *req.CategoryID
	}
	unit := item.Unit
	if req.Unit != nil {
		unit = *req.Unit
	}
	if err := item.Update(name, categoryID, unit); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Activate restores an inactive item
func (s *ItemService) Activate(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	return s.transition(ctx, id, (*masterdata.Item).Activate)
}

// Deactivate retires an item from new documents
func (s *ItemService) Deactivate(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	return s.transition(ctx, id, (*masterdata.Item).Deactivate)
}

func (s *ItemService) transition(ctx context.Context, id uuid.UUID, fn func(*masterdata.Item) error) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(item); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}
