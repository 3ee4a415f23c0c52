package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestWorkOrder(t *testing.T) *WorkOrder {
	order, err := NewWorkOrder("WO-2026-0001", uuid.New(), uuid.New(), uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	return order
}

func TestWorkOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     WorkOrderStatus
		to       WorkOrderStatus
		canTrans bool
	}{
		{WorkOrderStatusDraft, WorkOrderStatusIssued, true},
		{WorkOrderStatusDraft, WorkOrderStatusCancelled, true},
		{WorkOrderStatusDraft, WorkOrderStatusCompleted, false},
		{WorkOrderStatusIssued, WorkOrderStatusCompleted, true},
		{WorkOrderStatusIssued, WorkOrderStatusCancelled, true},
		{WorkOrderStatusCompleted, WorkOrderStatusIssued, false},
		{WorkOrderStatusCancelled, WorkOrderStatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestWorkOrder_AddItem(t *testing.T) {
	t.Run("awards boq lines", func(t *testing.T) {
		order := createTestWorkOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(100), decimal.NewFromInt(7500)))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(750000)))
	})

	t.Run("rejects duplicate boq item", func(t *testing.T) {
		order := createTestWorkOrder(t)
		boqItemID := uuid.New()
		require.NoError(t, order.AddItem(boqItemID, "1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(100), decimal.NewFromInt(7500)))
		assert.Error(t, order.AddItem(boqItemID, "1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	})
}

func TestWorkOrder_Lifecycle(t *testing.T) {
	t.Run("issue and complete", func(t *testing.T) {
		order := createTestWorkOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(100), decimal.NewFromInt(7500)))

		require.NoError(t, order.Issue())
		assert.Equal(t, WorkOrderStatusIssued, order.Status)
		assert.False(t, order.IsEditable())

		require.NoError(t, order.Complete())
		assert.Equal(t, WorkOrderStatusCompleted, order.Status)
		assert.Error(t, order.Cancel("too late"))
	})

	t.Run("cannot issue empty order", func(t *testing.T) {
		order := createTestWorkOrder(t)
		assert.Error(t, order.Issue())
	})

	t.Run("cancel requires reason", func(t *testing.T) {
		order := createTestWorkOrder(t)
		assert.Error(t, order.Cancel(""))
		require.NoError(t, order.Cancel("contractor backed out"))
		assert.Equal(t, WorkOrderStatusCancelled, order.Status)
	})
}

func createTestRABill(t *testing.T, raNumber int) *WorkOrderBill {
	bill, err := NewWorkOrderBill("RA-2026-0001", uuid.New(), uuid.New(), uuid.New(), raNumber, time.Now())
	require.NoError(t, err)
	return bill
}

func TestWorkOrderBillLine_Progress(t *testing.T) {
	line, err := NewWorkOrderBillLine(uuid.New(), uuid.New(), "1.1", "RCC M25 in columns", "cum",
		decimal.NewFromInt(100), decimal.NewFromInt(40), decimal.NewFromInt(25), decimal.NewFromInt(7500))
	require.NoError(t, err)

	assert.True(t, line.CumulativeQty().Equal(decimal.NewFromInt(65)))
	assert.True(t, line.RemainingQty().Equal(decimal.NewFromInt(35)))
	assert.True(t, line.ProgressPercent().Equal(decimal.NewFromInt(65)))
	assert.True(t, line.Amount.Equal(decimal.NewFromInt(187500)))
}

func TestWorkOrderBill_AddLine(t *testing.T) {
	t.Run("rejects billing past awarded quantity", func(t *testing.T) {
		bill := createTestRABill(t, 2)
		err := bill.AddLine(uuid.New(), "1.1", "RCC M25 in columns", "cum",
			decimal.NewFromInt(100), decimal.NewFromInt(90), decimal.NewFromInt(15), decimal.NewFromInt(7500))
		assert.Error(t, err)
	})

	t.Run("allows billing up to awarded quantity", func(t *testing.T) {
		bill := createTestRABill(t, 2)
		require.NoError(t, bill.AddLine(uuid.New(), "1.1", "RCC M25 in columns", "cum",
			decimal.NewFromInt(100), decimal.NewFromInt(90), decimal.NewFromInt(10), decimal.NewFromInt(7500)))
		assert.True(t, bill.Lines[0].RemainingQty().IsZero())
	})

	t.Run("rejects duplicate work order item", func(t *testing.T) {
		bill := createTestRABill(t, 1)
		itemID := uuid.New()
		require.NoError(t, bill.AddLine(itemID, "1.1", "RCC M25 in columns", "cum",
			decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(7500)))
		assert.Error(t, bill.AddLine(itemID, "1.1", "RCC M25 in columns", "cum",
			decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(7500)))
	})
}

func TestWorkOrderBill_Certify(t *testing.T) {
	t.Run("certifies draft bill", func(t *testing.T) {
		bill := createTestRABill(t, 1)
		require.NoError(t, bill.AddLine(uuid.New(), "1.1", "RCC M25 in columns", "cum",
			decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(40), decimal.NewFromInt(7500)))

		certifier := uuid.New()
		require.NoError(t, bill.Certify(certifier))
		assert.Equal(t, WorkOrderBillStatusCertified, bill.Status)
		assert.Equal(t, certifier, *bill.CertifiedBy)
	})

	t.Run("rejects empty bill", func(t *testing.T) {
		bill := createTestRABill(t, 1)
		assert.Error(t, bill.Certify(uuid.New()))
	})

	t.Run("certified bill not editable", func(t *testing.T) {
		bill := createTestRABill(t, 1)
		require.NoError(t, bill.AddLine(uuid.New(), "1.1", "RCC M25 in columns", "cum",
			decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(40), decimal.NewFromInt(7500)))
		require.NoError(t, bill.Certify(uuid.New()))
		assert.Error(t, bill.AddLine(uuid.New(), "1.2", "Shuttering", "sqm",
			decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(450)))
	})
}
