package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
)

// WorkOrderService awards finalized BOQ work to contractors
type WorkOrderService struct {
	orderRepo  finance.WorkOrderRepository
	boqRepo    finance.BOQRepository
	vendorRepo masterdata.VendorRepository
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(
	orderRepo finance.WorkOrderRepository,
	boqRepo finance.BOQRepository,
	vendorRepo masterdata.VendorRepository,
) *WorkOrderService {
	return &WorkOrderService{
		orderRepo:  orderRepo,
		boqRepo:    boqRepo,
		vendorRepo: vendorRepo,
	}
}

// Create awards a draft work order against a finalized BOQ
func (s *WorkOrderService) Create(ctx context.Context, createdBy uuid.UUID, req CreateWorkOrderRequest) (*WorkOrderResponse, error) {
	boq, err := s.boqRepo.FindByID(ctx, req.BOQID)
	if err != nil {
		return nil, err
	}
	if boq.Status != finance.BOQStatusFinalized {
		return nil, shared.NewDomainError("BOQ_NOT_FINALIZED", "Work orders can only be awarded against finalized BOQs")
	}
	if boq.SiteID != req.SiteID {
		return nil, shared.NewDomainError("SITE_MISMATCH", "Work order site must match the BOQ site")
	}

	contractor, err := s.vendorRepo.FindByID(ctx, req.ContractorID)
	if err != nil {
		return nil, err
	}
	if !contractor.IsContractor() {
		return nil, shared.NewDomainError("NOT_A_CONTRACTOR", "Work orders can only be awarded to contractor vendors")
	}
	if !contractor.IsActive() {
		return nil, shared.NewDomainError("VENDOR_NOT_ACTIVE", "Work orders can only be awarded to active vendors")
	}

	boqItems := make(map[uuid.UUID]*finance.BOQItem, len(boq.Items))
	for i := range boq.Items {
		boqItems[boq.Items[i].ID] = &boq.Items[i]
	}

	seq, err := s.orderRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	orderNumber := fmt.Sprintf("WO-%06d", seq)

	order, err := finance.NewWorkOrder(orderNumber, req.SiteID, req.BOQID, req.ContractorID, createdBy, req.AwardDate)
	if err != nil {
		return nil, err
	}
	order.Terms = req.Terms
	for _, line := range req.Items {
		boqItem, ok := boqItems[line.BOQItemID]
		if !ok {
			return nil, shared.NewDomainError("BOQ_ITEM_NOT_FOUND", fmt.Sprintf("BOQ item %s does not exist on this BOQ", line.BOQItemID))
		}
		if line.AwardedQty.GreaterThan(boqItem.Quantity) {
			return nil, shared.NewDomainError("OVER_AWARD", fmt.Sprintf("Awarded quantity exceeds BOQ quantity for item %s", boqItem.ItemNo))
		}
		if err := order.AddItem(boqItem.ID, boqItem.ItemNo, boqItem.Description, boqItem.Unit, line.AwardedQty, line.Rate); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// GetByID retrieves a work order by its ID
func (s *WorkOrderService) GetByID(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// List retrieves work orders with pagination, optionally scoped to a site
// or contractor
func (s *WorkOrderService) List(ctx context.Context, siteID, contractorID *uuid.UUID, filter shared.Filter) (*shared.Paginated[WorkOrderResponse], error) {
	filter.Normalize()

	var (
		orders []*finance.WorkOrder
		err    error
	)
	switch {
	case siteID != nil:
		filter.Filters["site_id"] = *siteID
		orders, err = s.orderRepo.FindBySite(ctx, *siteID, filter)
	case contractorID != nil:
		filter.Filters["contractor_id"] = *contractorID
		orders, err = s.orderRepo.FindByContractor(ctx, *contractorID, filter)
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

	items := make([]WorkOrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, ToWorkOrderResponse(order))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Issue issues a draft work order to the contractor
func (s *WorkOrderService) Issue(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.mutate(ctx, id, (*finance.WorkOrder).Issue)
}

// Complete marks an issued work order as finished
func (s *WorkOrderService) Complete(ctx context.Context, id uuid.UUID) (*WorkOrderResponse, error) {
	return s.mutate(ctx, id, (*finance.WorkOrder).Complete)
}

// Cancel cancels a work order with a reason
func (s *WorkOrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*WorkOrderResponse, error) {
	return s.mutate(ctx, id, func(w *finance.WorkOrder) error {
		return w.Cancel(reason)
	})
}

func (s *WorkOrderService) mutate(ctx context.Context, id uuid.UUID, fn func(*finance.WorkOrder) error) (*WorkOrderResponse, error) {
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
	resp := ToWorkOrderResponse(order)
	return &resp, nil
}
