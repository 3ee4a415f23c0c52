package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/stock"
)

// ConsumptionService posts and amends daily material consumption. Every
// posting deducts site stock line by line inside one transaction, so a
// single short line rolls the whole day back.
type ConsumptionService struct {
	consumptionRepo stock.DailyConsumptionRepository
	stockRepo       stock.SiteStockRepository
	siteRepo        masterdata.SiteRepository
	itemRepo        masterdata.ItemRepository
	txScope         TransactionScope
}

// NewConsumptionService creates a new consumption service
func NewConsumptionService(
	consumptionRepo stock.DailyConsumptionRepository,
	stockRepo stock.SiteStockRepository,
	siteRepo masterdata.SiteRepository,
	itemRepo masterdata.ItemRepository,
	txScope TransactionScope,
) *ConsumptionService {
	return &ConsumptionService{
		consumptionRepo: consumptionRepo,
		stockRepo:       stockRepo,
		siteRepo:        siteRepo,
		itemRepo:        itemRepo,
		txScope:         txScope,
	}
}

// Post records one day's consumption for a site and deducts the stock
func (s *ConsumptionService) Post(ctx context.Context, postedBy uuid.UUID, req PostConsumptionRequest) (*ConsumptionResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if !site.IsActive() {
		return nil, shared.NewDomainError("SITE_NOT_ACTIVE", "Consumption can only be posted for active sites")
	}

	exists, err := s.consumptionRepo.ExistsBySiteAndDate(ctx, req.SiteID, req.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_POSTED", "Consumption for this site and date is already posted")
	}

	items, err := s.resolveItems(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	record, err := stock.NewDailyConsumption(req.SiteID, postedBy, req.Date, req.Remark)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		item := items[line.ItemID]
		if err := record.AddLine(line.ItemID, item.Name, item.Unit, line.Quantity, line.Purpose); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for i := range record.Lines {
			line := &record.Lines[i]
			if err := deductSiteStock(ctx, repos.SiteStockRepo(), record.SiteID, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
		return repos.ConsumptionRepo().Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	resp := ToConsumptionResponse(record)
	return &resp, nil
}

// Amend replaces the lines of a posted consumption record. The old
// deductions are reversed and the new lines applied in one transaction.
func (s *ConsumptionService) Amend(ctx context.Context, id, amendedBy uuid.UUID, req AmendConsumptionRequest) (*ConsumptionResponse, error) {
	record, err := s.consumptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	newLines := make([]stock.ConsumptionLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		item := items[line.ItemID]
		built, err := stock.NewConsumptionLine(record.ID, line.ItemID, item.Name, item.Unit, line.Quantity, line.Purpose)
		if err != nil {
			return nil, err
		}
		newLines = append(newLines, *built)
	}

	oldLines := record.Lines
	if err := record.Amend(amendedBy, newLines); err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for i := range oldLines {
			line := &oldLines[i]
			if err := restoreSiteStock(ctx, repos.SiteStockRepo(), record.SiteID, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
		for i := range record.Lines {
			line := &record.Lines[i]
			if err := deductSiteStock(ctx, repos.SiteStockRepo(), record.SiteID, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
		return repos.ConsumptionRepo().ReplaceLines(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	resp := ToConsumptionResponse(record)
	return &resp, nil
}

// GetByID retrieves a consumption record by its ID
func (s *ConsumptionService) GetByID(ctx context.Context, id uuid.UUID) (*ConsumptionResponse, error) {
	record, err := s.consumptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToConsumptionResponse(record)
	return &resp, nil
}

// GetBySiteAndDate retrieves the consumption record for a site on a date
func (s *ConsumptionService) GetBySiteAndDate(ctx context.Context, siteID uuid.UUID, date time.Time) (*ConsumptionResponse, error) {
	record, err := s.consumptionRepo.FindBySiteAndDate(ctx, siteID, date)
	if err != nil {
		return nil, err
	}
	resp := ToConsumptionResponse(record)
	return &resp, nil
}

// ListBySiteAndRange retrieves a site's consumption records in a date range
func (s *ConsumptionService) ListBySiteAndRange(ctx context.Context, siteID uuid.UUID, from, to time.Time) ([]ConsumptionResponse, error) {
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End date cannot precede start date")
	}
	records, err := s.consumptionRepo.FindBySiteAndRange(ctx, siteID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]ConsumptionResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToConsumptionResponse(record))
	}
	return responses, nil
}

// resolveItems loads the referenced items and rejects unknown IDs
func (s *ConsumptionService) resolveItems(ctx context.Context, lines []ConsumptionLineRequest) (map[uuid.UUID]*masterdata.Item, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}

	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*masterdata.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	for _, line := range lines {
		if _, ok := byID[line.ItemID]; !ok {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Item does not exist")
		}
	}
	return byID, nil
}

// deductSiteStock locks the stock row and draws it down. A missing row
// means nothing was ever received, which deducts the same as zero stock.
func deductSiteStock(ctx context.Context, repo stock.SiteStockRepository, siteID, itemID uuid.UUID, qty decimal.Decimal) error {
	row, err := repo.FindForUpdate(ctx, siteID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrInsufficientStock
		}
		return err
	}
	if err := row.Deduct(qty); err != nil {
		return err
	}
	return repo.Save(ctx, row)
}

// restoreSiteStock locks the stock row and puts a reversed quantity back
func restoreSiteStock(ctx context.Context, repo stock.SiteStockRepository, siteID, itemID uuid.UUID, qty decimal.Decimal) error {
	row, err := repo.FindForUpdate(ctx, siteID, itemID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		row, err = stock.NewSiteStock(siteID, itemID)
		if err != nil {
			return err
		}
	}
	if err := row.Add(qty); err != nil {
		return err
	}
	return repo.Save(ctx, row)
}
