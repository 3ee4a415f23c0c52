package finance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siteops/backend/internal/domain/finance"
	"github.com/siteops/backend/internal/domain/shared"
)

// WorkOrderBillService raises running-account bills against issued work
// orders. Cumulative billed quantity per line can never exceed the awarded
// quantity.
type WorkOrderBillService struct {
	billRepo  finance.WorkOrderBillRepository
	orderRepo finance.WorkOrderRepository
}

// NewWorkOrderBillService creates a new RA bill service
func NewWorkOrderBillService(
	billRepo finance.WorkOrderBillRepository,
	orderRepo finance.WorkOrderRepository,
) *WorkOrderBillService {
	return &WorkOrderBillService{billRepo: billRepo, orderRepo: orderRepo}
}

// Create raises a new draft RA bill against a work order
func (s *WorkOrderBillService) Create(ctx context.Context, createdBy uuid.UUID, req CreateRABillRequest) (*RABillResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != finance.WorkOrderStatusIssued {
		return nil, shared.NewDomainError("ORDER_NOT_ISSUED", "RA bills can only be raised against issued work orders")
	}

	orderItems := make(map[uuid.UUID]*finance.WorkOrderItem, len(order.Items))
	for i := range order.Items {
		orderItems[order.Items[i].ID] = &order.Items[i]
	}

	prevCumulative, err := s.cumulativeByItem(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	raCount, err := s.billRepo.CountByWorkOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	seq, err := s.billRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	billNumber := fmt.Sprintf("RA-%06d", seq)

	bill, err := finance.NewWorkOrderBill(billNumber, order.ID, order.SiteID, createdBy, int(raCount)+1, req.BillDate)
	if err != nil {
		return nil, err
	}
	bill.Remark = req.Remark
	for _, line := range req.Lines {
		orderItem, ok := orderItems[line.WorkOrderItemID]
		if !ok {
			return nil, shared.NewDomainError("ITEM_NOT_ON_ORDER", fmt.Sprintf("Line %s is not on the work order", line.WorkOrderItemID))
		}
		prev := prevCumulative[orderItem.ID]
		err := bill.AddLine(orderItem.ID, orderItem.ItemNo, orderItem.Description, orderItem.Unit,
			orderItem.AwardedQty, prev, line.ThisBillQty, orderItem.Rate)
		if err != nil {
			return nil, err
		}
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	resp := ToRABillResponse(bill)
	return &resp, nil
}

// cumulativeByItem sums the certified and draft quantities already billed
// per work order item across earlier bills.
func (s *WorkOrderBillService) cumulativeByItem(ctx context.Context, workOrderID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	bills, err := s.billRepo.FindByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, bill := range bills {
		for _, line := range bill.Lines {
			totals[line.WorkOrderItemID] = totals[line.WorkOrderItemID].Add(line.ThisBillQty)
		}
	}
	return totals, nil
}

// GetByID retrieves an RA bill by its ID
func (s *WorkOrderBillService) GetByID(ctx context.Context, id uuid.UUID) (*RABillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRABillResponse(bill)
	return &resp, nil
}

// ListByWorkOrder retrieves all RA bills of a work order
func (s *WorkOrderBillService) ListByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]RABillResponse, error) {
	bills, err := s.billRepo.FindByWorkOrder(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	items := make([]RABillResponse, 0, len(bills))
	for _, bill := range bills {
		items = append(items, ToRABillResponse(bill))
	}
	return items, nil
}

// List retrieves RA bills with pagination
func (s *WorkOrderBillService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[RABillResponse], error) {
	filter.Normalize()

	bills, err := s.billRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.billRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]RABillResponse, 0, len(bills))
	for _, bill := range bills {
		items = append(items, ToRABillResponse(bill))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Certify certifies a draft RA bill for payment
func (s *WorkOrderBillService) Certify(ctx context.Context, id, certifierID uuid.UUID) (*RABillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bill.Certify(certifierID); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	resp := ToRABillResponse(bill)
	return &resp, nil
}
