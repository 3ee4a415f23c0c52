package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/shared"
)

// IndentService handles material indent operations including the two-level
// approval workflow
type IndentService struct {
	indentRepo procurement.IndentRepository
	siteRepo   masterdata.SiteRepository
	itemRepo   masterdata.ItemRepository
}

// NewIndentService creates a new indent service
func NewIndentService(
	indentRepo procurement.IndentRepository,
	siteRepo masterdata.SiteRepository,
	itemRepo masterdata.ItemRepository,
) *IndentService {
	return &IndentService{
		indentRepo: indentRepo,
		siteRepo:   siteRepo,
		itemRepo:   itemRepo,
	}
}

// Create raises a new draft indent for a site
func (s *IndentService) Create(ctx context.Context, requestedBy uuid.UUID, req CreateIndentRequest) (*IndentResponse, error) {
	site, err := s.siteRepo.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, err
	}
	if !site.IsActive() {
		return nil, shared.NewDomainError("SITE_NOT_ACTIVE", "Indents can only be raised for active sites")
	}

	items, err := s.resolveItems(ctx, indentItemIDs(req.Items))
	if err != nil {
		return nil, err
	}

	seq, err := s.indentRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	indentNumber := fmt.Sprintf("IND-%06d", seq)

	indent, err := procurement.NewIndent(indentNumber, req.SiteID, requestedBy, req.RequiredBy, req.Remark)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Items {
		item := items[line.ItemID]
		if err := indent.AddItem(item.ID, item.Name, item.Code, item.Unit, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.indentRepo.Save(ctx, indent); err != nil {
		return nil, err
	}

	resp := ToIndentResponse(indent)
	return &resp, nil
}

// GetByID retrieves an indent by its ID
func (s *IndentService) GetByID(ctx context.Context, id uuid.UUID) (*IndentResponse, error) {
	indent, err := s.indentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToIndentResponse(indent)
	return &resp, nil
}

// GetByNumber retrieves an indent by its document number
func (s *IndentService) GetByNumber(ctx context.Context, indentNumber string) (*IndentResponse, error) {
	indent, err := s.indentRepo.FindByNumber(ctx, indentNumber)
	if err != nil {
		return nil, err
	}
	resp := ToIndentResponse(indent)
	return &resp, nil
}

// List retrieves indents with pagination, optionally scoped to a site
func (s *IndentService) List(ctx context.Context, siteID *uuid.UUID, filter shared.Filter) (*shared.Paginated[IndentResponse], error) {
	filter.Normalize()

	var (
		indents []*procurement.Indent
		err     error
	)
	if siteID != nil {
		filter.Filters["site_id"] = *siteID
		indents, err = s.indentRepo.FindBySite(ctx, *siteID, filter)
	} else {
		indents, err = s.indentRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.indentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]IndentResponse, 0, len(indents))
	for _, indent := range indents {
		items = append(items, ToIndentResponse(indent))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// AddItem adds a line to a draft indent
func (s *IndentService) AddItem(ctx context.Context, id, itemID uuid.UUID, quantity decimal.Decimal) (*IndentResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(n *procurement.Indent) error {
		return n.AddItem(item.ID, item.Name, item.Code, item.Unit, quantity)
	})
}

// UpdateItemQuantity changes the quantity of a draft indent line
func (s *IndentService) UpdateItemQuantity(ctx context.Context, id, itemID uuid.UUID, quantity decimal.Decimal) (*IndentResponse, error) {
	return s.mutate(ctx, id, func(n *procurement.Indent) error {
		return n.UpdateItemQuantity(itemID, quantity)
	})
}

// RemoveItem removes a line from a draft indent
func (s *IndentService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*IndentResponse, error) {
	return s.mutate(ctx, id, func(n *procurement.Indent) error {
		return n.RemoveItem(itemID)
	})
}

// Submit moves a draft indent into the approval queue
func (s *IndentService) Submit(ctx context.Context, id uuid.UUID) (*IndentResponse, error) {
	return s.mutate(ctx, id, (*procurement.Indent).Submit)
}

// ApproveL1 records the first-level approval
func (s *IndentService) ApproveL1(ctx context.Context, id, approverID uuid.UUID) (*IndentResponse, error) {
	return s.mutate(ctx, id, func(n *procurement.Indent) error {
		return n.ApproveL1(approverID)
	})
}

// ApproveL2 records the second-level approval. The same user cannot give
// both approvals.
func (s *IndentService) ApproveL2(ctx context.Context, id, approverID uuid.UUID) (*IndentResponse, error) {
	return s.mutate(ctx, id, func(n *procurement.Indent) error {
		return n.ApproveL2(approverID)
	})
}

// Reject rejects a pending indent with a reason
func (s *IndentService) Reject(ctx context.Context, id, rejectorID uuid.UUID, reason string) (*IndentResponse, error) {
	return s.mutate(ctx, id, func(n *procurement.Indent) error {
		return n.Reject(rejectorID, reason)
	})
}

// Close closes an approved or ordered indent
func (s *IndentService) Close(ctx context.Context, id uuid.UUID) (*IndentResponse, error) {
	return s.mutate(ctx, id, (*procurement.Indent).Close)
}

// Delete removes a draft indent
func (s *IndentService) Delete(ctx context.Context, id uuid.UUID) error {
	indent, err := s.indentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !indent.IsEditable() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft indents can be deleted")
	}
	return s.indentRepo.Delete(ctx, id)
}

func (s *IndentService) mutate(ctx context.Context, id uuid.UUID, fn func(*procurement.Indent) error) (*IndentResponse, error) {
	indent, err := s.indentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(indent); err != nil {
		return nil, err
	}
	if err := s.indentRepo.Save(ctx, indent); err != nil {
		return nil, err
	}
	resp := ToIndentResponse(indent)
	return &resp, nil
}

// resolveItems loads the referenced items in one query and verifies they are
// all active.
func (s *IndentService) resolveItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]masterdata.Item, error) {
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]masterdata.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Item %s does not exist", id))
		}
		if !item.IsActive() {
			return nil, shared.NewDomainError("ITEM_INACTIVE", fmt.Sprintf("Item %s is inactive", item.Code))
		}
	}
	return byID, nil
}

func indentItemIDs(lines []IndentItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ItemID)
	}
	return ids
}
