package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/stock"
)

// ConsumptionLineRequest is one item drawn from stock in a posting
type ConsumptionLineRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Purpose  string          `json:"purpose" binding:"max=500"`
}

// PostConsumptionRequest posts one day's material consumption for a site
type PostConsumptionRequest struct {
	SiteID uuid.UUID                `json:"site_id" binding:"required"`
	Date   time.Time                `json:"date" binding:"required"`
	Remark string                   `json:"remark" binding:"max=500"`
	Lines  []ConsumptionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// AmendConsumptionRequest replaces the lines of a posted consumption record
type AmendConsumptionRequest struct {
	Lines []ConsumptionLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SiteStockResponse represents one site-item stock row in API responses
type SiteStockResponse struct {
	ID        uuid.UUID       `json:"id"`
	SiteID    uuid.UUID       `json:"site_id"`
	ItemID    uuid.UUID       `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToSiteStockResponse converts a domain stock row to a response DTO
func ToSiteStockResponse(s *stock.SiteStock) SiteStockResponse {
	return SiteStockResponse{
		ID:        s.ID,
		SiteID:    s.SiteID,
		ItemID:    s.ItemID,
		Quantity:  s.Quantity,
		UpdatedAt: s.UpdatedAt,
	}
}

// ConsumptionLineResponse represents a consumption line in API responses
type ConsumptionLineResponse struct {
	ID       uuid.UUID       `json:"id"`
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
	Purpose  string          `json:"purpose,omitempty"`
}

// ConsumptionResponse represents a daily consumption record in API responses
type ConsumptionResponse struct {
	ID        uuid.UUID                 `json:"id"`
	SiteID    uuid.UUID                 `json:"site_id"`
	Date      time.Time                 `json:"date"`
	Status    string                    `json:"status"`
	Remark    string                    `json:"remark,omitempty"`
	PostedBy  uuid.UUID                 `json:"posted_by"`
	AmendedBy *uuid.UUID                `json:"amended_by,omitempty"`
	AmendedAt *time.Time                `json:"amended_at,omitempty"`
	Lines     []ConsumptionLineResponse `json:"lines"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// ToConsumptionResponse converts a domain consumption record to a response DTO
func ToConsumptionResponse(c *stock.DailyConsumption) ConsumptionResponse {
	lines := make([]ConsumptionLineResponse, 0, len(c.Lines))
	for i := range c.Lines {
		line := &c.Lines[i]
		lines = append(lines, ConsumptionLineResponse{
			ID:       line.ID,
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			Unit:     line.Unit,
			Quantity: line.Quantity,
			Purpose:  line.Purpose,
		})
	}

	return ConsumptionResponse{
		ID:        c.ID,
		SiteID:    c.SiteID,
		Date:      c.Date,
		Status:    string(c.Status),
		Remark:    c.Remark,
		PostedBy:  c.PostedBy,
		AmendedBy: c.AmendedBy,
		AmendedAt: c.AmendedAt,
		Lines:     lines,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
