package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/stock"
)

// StockService answers on-hand stock queries. Stock rows are only ever
// written through goods receipts and consumption postings, so this service
// is read-only.
type StockService struct {
	stockRepo stock.SiteStockRepository
}

// NewStockService creates a new stock query service
func NewStockService(stockRepo stock.SiteStockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// ListBySite retrieves the stock rows of a site with pagination
func (s *StockService) ListBySite(ctx context.Context, siteID uuid.UUID, filter shared.Filter) (*shared.Paginated[SiteStockResponse], error) {
	filter.Normalize()

	rows, err := s.stockRepo.FindBySite(ctx, siteID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SiteStockResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, ToSiteStockResponse(row))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// OnHand returns the quantity of one item at one site. A site that never
// received the item holds zero.
func (s *StockService) OnHand(ctx context.Context, siteID, itemID uuid.UUID) (decimal.Decimal, error) {
	row, err := s.stockRepo.FindBySiteAndItem(ctx, siteID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return row.Quantity, nil
}
