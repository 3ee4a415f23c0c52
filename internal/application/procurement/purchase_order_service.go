package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order operations
type PurchaseOrderService struct {
	orderRepo  procurement.PurchaseOrderRepository
	indentRepo procurement.IndentRepository
	vendorRepo masterdata.VendorRepository
	itemRepo   masterdata.ItemRepository
	txScope    TransactionScope
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo procurement.PurchaseOrderRepository,
	indentRepo procurement.IndentRepository,
	vendorRepo masterdata.VendorRepository,
	itemRepo masterdata.ItemRepository,
	txScope TransactionScope,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:  orderRepo,
		indentRepo: indentRepo,
		vendorRepo: vendorRepo,
		itemRepo:   itemRepo,
		txScope:    txScope,
	}
}

// Create creates a new draft purchase order. When the order references a
// source indent, the indent must be fully approved and is marked ordered.
func (s *PurchaseOrderService) Create(ctx context.Context, createdBy uuid.UUID, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive() {
		return nil, shared.NewDomainError("VENDOR_NOT_ACTIVE", "Purchase orders can only be placed on active vendors")
	}

	var sourceIndent *procurement.Indent
	if req.SourceIndentID != nil {
		sourceIndent, err = s.indentRepo.FindByID(ctx, *req.SourceIndentID)
		if err != nil {
			return nil, err
		}
		if sourceIndent.Status != procurement.IndentStatusApproved {
			return nil, shared.NewDomainError("INDENT_NOT_APPROVED", "Source indent must be fully approved before ordering")
		}
		if sourceIndent.SiteID != req.SiteID {
			return nil, shared.NewDomainError("SITE_MISMATCH", "Purchase order site must match the source indent site")
		}
	}

	itemIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, line := range req.Items {
		itemIDs = append(itemIDs, line.ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]masterdata.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	seq, err := s.orderRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	orderNumber := fmt.Sprintf("PO-%06d", seq)

	order, err := procurement.NewPurchaseOrder(orderNumber, req.SiteID, req.VendorID, createdBy, req.OrderDate, req.SourceIndentID)
	if err != nil {
		return nil, err
	}
	order.ExpectedDate = req.ExpectedDate
	if req.Terms != "" || req.Remark != "" {
		if err := order.SetTerms(req.Terms, req.Remark); err != nil {
			return nil, err
		}
	}
	for _, line := range req.Items {
		item, ok := byID[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", fmt.Sprintf("Item %s does not exist", line.ItemID))
		}
		if err := order.AddItem(item.ID, item.Name, item.Code, item.Unit, line.Quantity, line.Rate); err != nil {
			return nil, err
		}
	}

	if sourceIndent != nil {
		if err := sourceIndent.MarkOrdered(); err != nil {
			return nil, err
		}
	}

	// The order and the indent status change must land together.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}
		if sourceIndent != nil {
			return repos.IndentRepo().Save(ctx, sourceIndent)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves a purchase order by its ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// GetByNumber retrieves a purchase order by its document number
func (s *PurchaseOrderService) GetByNumber(ctx context.Context, orderNumber string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}

// List retrieves purchase orders with pagination, optionally scoped to a
// site or vendor
func (s *PurchaseOrderService) List(ctx context.Context, siteID, vendorID *uuid.UUID, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	filter.Normalize()

	var (
		orders []*procurement.PurchaseOrder
		err    error
	)
	switch {
	case siteID != nil:
		filter.Filters["site_id"] = *siteID
		orders, err = s.orderRepo.FindBySite(ctx, *siteID, filter)
	case vendorID != nil:
		filter.Filters["vendor_id"] = *vendorID
		orders, err = s.orderRepo.FindByVendor(ctx, *vendorID, filter)
	default:
		orders, err = s.orderRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseOrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, ToPurchaseOrderResponse(order))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListBySourceIndent retrieves the purchase orders raised against an indent
func (s *PurchaseOrderService) ListBySourceIndent(ctx context.Context, indentID uuid.UUID) ([]PurchaseOrderResponse, error) {
	orders, err := s.orderRepo.FindBySourceIndent(ctx, indentID)
	if err != nil {
		return nil, err
	}
	items := make([]PurchaseOrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, ToPurchaseOrderResponse(order))
	}
	return items, nil
}

// AddItem adds a line to a draft purchase order
func (s *PurchaseOrderService) AddItem(ctx context.Context, id uuid.UUID, req PurchaseOrderItemRequest) (*PurchaseOrderResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(o *procurement.PurchaseOrder) error {
		return o.AddItem(item.ID, item.Name, item.Code, item.Unit, req.Quantity, req.Rate)
	})
}

// UpdateItem changes quantity and rate of a draft order line
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, req UpdatePurchaseOrderItemRequest) (*PurchaseOrderResponse, error) {
	return s.mutate(ctx, id, func(o *procurement.PurchaseOrder) error {
		return o.UpdateItem(itemID, req.Quantity, req.Rate)
	})
}

// RemoveItem removes a line from a draft purchase order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, id, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.mutate(ctx, id, func(o *procurement.PurchaseOrder) error {
		return o.RemoveItem(itemID)
	})
}

// Issue issues a draft purchase order to the vendor
func (s *PurchaseOrderService) Issue(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	return s.mutate(ctx, id, (*procurement.PurchaseOrder).Issue)
}

// Cancel cancels a purchase order that has no receipts yet
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	return s.mutate(ctx, id, func(o *procurement.PurchaseOrder) error {
		return o.Cancel(reason)
	})
}

// Delete removes a draft purchase order
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.IsEditable() {
		return shared.NewDomainError("NOT_DRAFT", "Only draft purchase orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, id)
}

func (s *PurchaseOrderService) mutate(ctx context.Context, id uuid.UUID, fn func(*procurement.PurchaseOrder) error) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	resp := ToPurchaseOrderResponse(order)
	return &resp, nil
}
