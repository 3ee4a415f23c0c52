package masterdata

import (
	"time"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/masterdata"
)

// =============================================================================
// State / City DTOs
// =============================================================================

// CreateStateRequest represents a request to create a state
type CreateStateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Code string `json:"code" binding:"required,min=1,max=10"`
}

// UpdateStateRequest represents a request to rename a state
type UpdateStateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// StateResponse represents a state in API responses
type StateResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStateResponse converts a domain state to a response DTO
func ToStateResponse(s *masterdata.State) StateResponse {
	return StateResponse{
		ID:        s.ID,
		Name:      s.Name,
		Code:      s.Code,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CreateCityRequest represents a request to create a city
type CreateCityRequest struct {
	StateID uuid.UUID `json:"state_id" binding:"required"`
	Name    string    `json:"name" binding:"required,min=1,max=100"`
}

// UpdateCityRequest represents a request to rename a city
type UpdateCityRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CityResponse represents a city in API responses
type CityResponse struct {
	ID        uuid.UUID `json:"id"`
	StateID   uuid.UUID `json:"state_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCityResponse converts a domain city to a response DTO
func ToCityResponse(c *masterdata.City) CityResponse {
	return CityResponse{
		ID:        c.ID,
		StateID:   c.StateID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// =============================================================================
// Zone / Site DTOs
// =============================================================================

// CreateZoneRequest represents a request to create a zone
type CreateZoneRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateZoneRequest represents a request to rename a zone
type UpdateZoneRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ZoneResponse represents a zone in API responses
type ZoneResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToZoneResponse converts a domain zone to a response DTO
func ToZoneResponse(z *masterdata.Zone) ZoneResponse {
	return ZoneResponse{
		ID:        z.ID,
		Name:      z.Name,
		Status:    string(z.Status),
		CreatedAt: z.CreatedAt,
		UpdatedAt: z.UpdatedAt,
	}
}

// CreateSiteRequest represents a request to create a site
type CreateSiteRequest struct {
	Code      string    `json:"code" binding:"required,min=1,max=50"`
	Name      string    `json:"name" binding:"required,min=1,max=200"`
	ZoneID    uuid.UUID `json:"zone_id" binding:"required"`
	CityID    uuid.UUID `json:"city_id" binding:"required"`
	Address   string    `json:"address" binding:"max=1000"`
	StartDate time.Time `json:"start_date" binding:"required"`
	Notes     string    `json:"notes" binding:"max=1000"`
}

// UpdateSiteRequest represents a request to update a site
type UpdateSiteRequest struct {
	Name    *string    `json:"name" binding:"omitempty,min=1,max=200"`
	ZoneID  *uuid.UUID `json:"zone_id"`
	CityID  *uuid.UUID `json:"city_id"`
	Address *string    `json:"address" binding:"omitempty,max=1000"`
	Notes   *string    `json:"notes" binding:"omitempty,max=1000"`
}

// SiteResponse represents a site in API responses
type SiteResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	ZoneID    uuid.UUID `json:"zone_id"`
	CityID    uuid.UUID `json:"city_id"`
	Address   string    `json:"address"`
	StartDate time.Time `json:"start_date"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToSiteResponse converts a domain site to a response DTO
func ToSiteResponse(s *masterdata.Site) SiteResponse {
	return SiteResponse{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		ZoneID:    s.ZoneID,
		CityID:    s.CityID,
		Address:   s.Address,
		StartDate: s.StartDate,
		Status:    string(s.Status),
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

// =============================================================================
// Vendor DTOs
// =============================================================================

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Type        string `json:"type" binding:"required,oneof=supplier contractor transporter service"`
	GSTIN       string `json:"gstin" binding:"omitempty,len=15"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=20"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Address     string `json:"address" binding:"max=1000"`
	BankName    string `json:"bank_name" binding:"max=200"`
	BankAccount string `json:"bank_account" binding:"max=30"`
	IFSC        string `json:"ifsc" binding:"max=11"`
	Notes       string `json:"notes" binding:"max=1000"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	GSTIN       *string `json:"gstin" binding:"omitempty,len=15"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=1000"`
	BankName    *string `json:"bank_name" binding:"omitempty,max=200"`
	BankAccount *string `json:"bank_account" binding:"omitempty,max=30"`
	IFSC        *string `json:"ifsc" binding:"omitempty,max=11"`
	Notes       *string `json:"notes" binding:"omitempty,max=1000"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	GSTIN       string    `json:"gstin"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	BankName    string    `json:"bank_name"`
	BankAccount string    `json:"bank_account"`
	IFSC        string    `json:"ifsc"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToVendorResponse converts a domain vendor to a response DTO
func ToVendorResponse(v *masterdata.Vendor) VendorResponse {
	return VendorResponse{
		ID:          v.ID,
		Code:        v.Code,
		Name:        v.Name,
		Type:        string(v.Type),
		Status:      string(v.Status),
		GSTIN:       v.GSTIN,
		ContactName: v.ContactName,
		Phone:       v.Phone,
		Email:       v.Email,
		Address:     v.Address,
		BankName:    v.BankName,
		BankAccount: v.BankAccount,
		IFSC:        v.IFSC,
		Notes:       v.Notes,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Version:     v.Version,
	}
}

// =============================================================================
// Item Category / Item DTOs
// =============================================================================

// CreateItemCategoryRequest represents a request to create an item category
type CreateItemCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateItemCategoryRequest represents a request to rename an item category
type UpdateItemCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ItemCategoryResponse represents an item category in API responses
type ItemCategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToItemCategoryResponse converts a domain item category to a response DTO
func ToItemCategoryResponse(c *masterdata.ItemCategory) ItemCategoryResponse {
	return ItemCategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateItemRequest represents a request to create an item
type CreateItemRequest struct {
	Code       string    `json:"code" binding:"required,min=1,max=50"`
	Name       string    `json:"name" binding:"required,min=1,max=200"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Unit       string    `json:"unit" binding:"required,min=1,max=20"`
}

// UpdateItemRequest represents a request to update an item
type UpdateItemRequest struct {
	Name       *string    `json:"name" binding:"omitempty,min=1,max=200"`
	CategoryID *uuid.UUID `json:"category_id"`
	Unit       *string    `json:"unit" binding:"omitempty,min=1,max=20"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	CategoryID uuid.UUID `json:"category_id"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(i *masterdata.Item) ItemResponse {
	return ItemResponse{
		ID:         i.ID,
		Code:       i.Code,
		Name:       i.Name,
		CategoryID: i.CategoryID,
		Unit:       i.Unit,
		Status:     string(i.Status),
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
