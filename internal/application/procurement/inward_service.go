package procurement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/procurement"
	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/domain/stock"
)

// InwardService records goods receipts against issued purchase orders.
// Posting a bill writes the bill, advances the order's received quantities
// and increments site stock in a single transaction.
type InwardService struct {
	billRepo  procurement.InwardBillRepository
	orderRepo procurement.PurchaseOrderRepository
	txScope   TransactionScope
}

// NewInwardService creates a new inward service
func NewInwardService(
	billRepo procurement.InwardBillRepository,
	orderRepo procurement.PurchaseOrderRepository,
	txScope TransactionScope,
) *InwardService {
	return &InwardService{
		billRepo:  billRepo,
		orderRepo: orderRepo,
		txScope:   txScope,
	}
}

// Record posts a goods receipt against a purchase order
func (s *InwardService) Record(ctx context.Context, recordedBy uuid.UUID, req RecordInwardBillRequest) (*InwardBillResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanReceive() {
		return nil, shared.NewDomainError("ORDER_NOT_RECEIVABLE", "Goods can only be received against issued orders")
	}

	seq, err := s.billRepo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	billNumber := fmt.Sprintf("IB-%06d", seq)

	bill, err := procurement.NewInwardBill(billNumber, order.ID, order.SiteID, order.VendorID, recordedBy, req.BillDate)
	if err != nil {
		return nil, err
	}
	bill.SetTransport(req.VendorInvoiceNo, req.VehicleNumber)
	bill.Remark = req.Remark

	// Lines must reference order items; names and units are copied from the
	// order so later edits to the item master do not rewrite history.
	orderItems := make(map[uuid.UUID]*procurement.PurchaseOrderItem, len(order.Items))
	for i := range order.Items {
		orderItems[order.Items[i].ItemID] = &order.Items[i]
	}
	for _, line := range req.Lines {
		orderItem, ok := orderItems[line.ItemID]
		if !ok {
			return nil, shared.NewDomainError("ITEM_NOT_ON_ORDER", fmt.Sprintf("Item %s is not on the purchase order", line.ItemID))
		}
		if err := bill.AddLine(orderItem.ItemID, orderItem.ItemName, orderItem.Unit, line.ReceivedQty, line.Rate); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		txOrder, err := repos.PurchaseOrderRepo().FindByID(ctx, order.ID)
		if err != nil {
			return err
		}
		if err := txOrder.Receive(bill.ReceiptLines()); err != nil {
			return err
		}
		if err := repos.PurchaseOrderRepo().Save(ctx, txOrder); err != nil {
			return err
		}
		if err := repos.InwardBillRepo().Save(ctx, bill); err != nil {
			return err
		}
		for _, line := range bill.Lines {
			if err := addSiteStock(ctx, repos.SiteStockRepo(), bill.SiteID, line.ItemID, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := ToInwardBillResponse(bill)
	return &resp, nil
}

func addSiteStock(ctx context.Context, stockRepo stock.SiteStockRepository, siteID, itemID uuid.UUID, line procurement.InwardBillLine) error {
	row, err := stockRepo.FindForUpdate(ctx, siteID, itemID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		row, err = stock.NewSiteStock(siteID, itemID)
		if err != nil {
			return err
		}
	}
	if err := row.Add(line.ReceivedQty); err != nil {
		return err
	}
	return stockRepo.Save(ctx, row)
}

// Verify marks a recorded bill as checked by a second user
func (s *InwardService) Verify(ctx context.Context, id, verifierID uuid.UUID) (*InwardBillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := bill.Verify(verifierID); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}
	resp := ToInwardBillResponse(bill)
	return &resp, nil
}

// GetByID retrieves an inward bill by its ID
func (s *InwardService) GetByID(ctx context.Context, id uuid.UUID) (*InwardBillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInwardBillResponse(bill)
	return &resp, nil
}

// ListByOrder retrieves the bills recorded against a purchase order
func (s *InwardService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]InwardBillResponse, error) {
	bills, err := s.billRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]InwardBillResponse, 0, len(bills))
	for _, bill := range bills {
		items = append(items, ToInwardBillResponse(bill))
	}
	return items, nil
}

// List retrieves inward bills with pagination, optionally scoped to a site
func (s *InwardService) List(ctx context.Context, siteID *uuid.UUID, filter shared.Filter) (*shared.Paginated[InwardBillResponse], error) {
	filter.Normalize()

	var (
		bills []*procurement.InwardBill
		err   error
	)
	if siteID != nil {
		filter.Filters["site_id"] = *siteID
		bills, err = s.billRepo.FindBySite(ctx, *siteID, filter)
	} else {
		bills, err = s.billRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.billRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]InwardBillResponse, 0, len(bills))
	for _, bill := range bills {
		items = append(items, ToInwardBillResponse(bill))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}
