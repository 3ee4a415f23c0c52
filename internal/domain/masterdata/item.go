package masterdata

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siteops/backend/internal/domain/shared"
)

// ItemCategoryStatus represents the status of an item category
type ItemCategoryStatus string

const (
	ItemCategoryStatusActive   ItemCategoryStatus = "active"
	ItemCategoryStatusInactive ItemCategoryStatus = "inactive"
)

// ItemCategory groups materials (cement, steel, aggregates, ...)
type ItemCategory struct {
	shared.BaseAggregateRoot
	Name   string             `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status ItemCategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ItemCategory) TableName() string {
	return "item_categories"
}

// NewItemCategory creates a new item category
func NewItemCategory(name string) (*ItemCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name must be 1-100 characters")
	}
	return &ItemCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Status:            ItemCategoryStatusActive,
	}, nil
}

// Rename updates the category name
func (c *ItemCategory) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name must be 1-100 characters")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Deactivate marks the category inactive
func (c *ItemCategory) Deactivate() error {
	if c.Status == ItemCategoryStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Category is already inactive")
	}
	c.Status = ItemCategoryStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Activate marks the category active
func (c *ItemCategory) Activate() error {
	if c.Status == ItemCategoryStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Category is already active")
	}
	c.Status = ItemCategoryStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ItemStatus represents the status of an item
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// Item represents a material in the item master. Quantities on indents,
// purchase orders and stock ledgers reference items by ID.
type Item struct {
	shared.BaseAggregateRoot
	Code       string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string     `gorm:"type:varchar(200);not null"`
	CategoryID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Unit       string     `gorm:"type:varchar(20);not null"` // kg, bag, cum, nos, ...
	Status     ItemStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item under a category
func NewItem(code, name string, categoryID uuid.UUID, unit string) (*Item, error) {
	if err := validateCode(code, "Item"); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name must be 1-200 characters")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY_ID", "Item requires a category")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" || len(unit) > 20 {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit must be 1-20 characters")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              name,
		CategoryID:        categoryID,
		Unit:              unit,
		Status:            ItemStatusActive,
	}, nil
}

// Update updates the item's name, category and unit
func (i *Item) Update(name string, categoryID uuid.UUID, unit string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Item name must be 1-200 characters")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY_ID", "Item requires a category")
	}
	unit = strings.TrimSpace(unit)
	if unit == "" || len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit must be 1-20 characters")
	}
	i.Name = name
	i.CategoryID = categoryID
	i.Unit = unit
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Deactivate marks the item inactive
func (i *Item) Deactivate() error {
	if i.Status == ItemStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Item is already inactive")
	}
	i.Status = ItemStatusInactive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Activate marks the item active
func (i *Item) Activate() error {
	if i.Status == ItemStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Item is already active")
	}
	i.Status = ItemStatusActive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsActive returns true if the item can be used on new documents
func (i *Item) IsActive() bool {
	return i.Status == ItemStatusActive
}
