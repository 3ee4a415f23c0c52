package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// BOQService handles bill-of-quantities operations
type BOQService struct {
	boqRepo  finance.BOQRepository
	siteRepo masterdata.SiteRepository
}

// NewBOQService creates a new BOQ service
func NewBOQService(boqRepo finance.BOQRepository, siteRepo masterdata.SiteRepository) *BOQService {
	return &BOQService{boqRepo: boqRepo, siteRepo: siteRepo}
}

// Create creates a new draft BOQ for a site
func (s *BOQService) Create(ctx context.Context, createdBy uuid.UUID, req CreateBOQRequest) (*BOQResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if !site.IsActive() {
		return nil, shared.NewDomainError("SITE_NOT_ACTIVE", "BOQs can only be created for active sites")
	}

	seq, err := s.boqRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	boqNumber := fmt.Sprintf("BOQ-%06d", seq)

	boq, err := finance.NewBOQ(boqNumber, req.SiteID, createdBy, req.Title, req.Remark)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if err := boq.AddItem(item.ItemNo, item.Description, item.Unit, item.Quantity, item.Rate); err != nil {
			return nil, err
		}
	}

	if err := s.boqRepo.Save(ctx, boq); err != nil {
		return nil, err
	}

	resp := ToBOQResponse(boq)
	return &resp, nil
}

// GetByID retrieves a BOQ by its ID
func (s *BOQService) GetByID(ctx context.Context, id uuid.UUID) (*BOQResponse, error) {
	boq, err := s.boqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBOQResponse(boq)
	return &resp, nil
}

// List retrieves BOQs with pagination, optionally scoped to a site
func (s *BOQService) List(ctx context.Context, siteID *uuid.UUID, filter shared.Filter) (*shared.Paginated[BOQResponse], error) {
	filter.Normalize()

	var (
		boqs []*finance.BOQ
		err  error
	)
	if siteID != nil {
		filter.Filters["site_id"] = *siteID
		boqs, err = s.boqRepo.FindBySite(ctx, *siteID, filter)
	} else {
		boqs, err = s.boqRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.boqRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]BOQResponse, 0, len(boqs))
	for _, boq := range boqs {
		items = append(items, ToBOQResponse(boq))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// AddItem adds a line to a draft BOQ
func (s *BOQService) AddItem(ctx context.Context, id uuid.UUID, req BOQItemRequest) (*BOQResponse, error) {
	return s.mutate(ctx, id, func(b *finance.BOQ) error {
		return b.AddItem(req.ItemNo, req.Description, req.Unit, req.Quantity, req.Rate)
	})
}

// UpdateItem changes quantity and rate of a draft BOQ line
func (s *BOQService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req UpdateBOQItemRequest) (*BOQResponse, error) {
	return s.mutate(ctx, id, func(b *finance.BOQ) error {
		return b.UpdateItem(itemID, req.Quantity, req.Rate)
	})
}

// RemoveItem removes a line from a draft BOQ
func (s *BOQService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*BOQResponse, error) {
	return s.mutate(ctx, id, func(b *finance.BOQ) error {
		return b.RemoveItem(itemID)
	})
}

// Finalize locks a BOQ so work orders can be awarded against it
func (s *BOQService) Finalize(ctx context.Context, id, finalizedBy uuid.UUID) (*BOQResponse, error) {
	return s.mutate(ctx, id, func(b *finance.BOQ) error {
		return b.Finalize(finalizedBy)
	})
}

// Delete removes a draft BOQ
func (s *BOQService) Delete(ctx context.Context, id uuid.UUID) error {
	boq, err := s.boqRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !boq.IsEditable() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft BOQs can be deleted")
	}
	return s.boqRepo.Delete(ctx, id)
}

func (s *BOQService) mutate(ctx context.Context, id uuid.UUID, fn func(*finance.BOQ) error) (*BOQResponse, error) {
	boq, err := s.boqRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(boq); err != nil {
		return nil, err
	}
	if err := s.boqRepo.Save(ctx, boq); err != nil {
		return nil, err
	}
	resp := ToBOQResponse(boq)
	return &resp, nil
}
