package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPurchaseOrder(t *testing.T) *PurchaseOrder {
	order, err := NewPurchaseOrder("PO-2026-0001", uuid.New(), uuid.New(), uuid.New(), time.Now(), nil)
	require.NoError(t, err)
	return order
}

func addTestOrderItem(t *testing.T, order *PurchaseOrder, name string, qty, rate float64) uuid.UUID {
	itemID := uuid.New()
	err := order.AddItem(itemID, name, "ITM-001", "kg", decimal.NewFromFloat(qty), decimal.NewFromFloat(rate))
	require.NoError(t, err)
	return itemID
}

func TestPurchaseOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     PurchaseOrderStatus
		to       PurchaseOrderStatus
		canTrans bool
	}{
		{PurchaseOrderStatusDraft, PurchaseOrderStatusIssued, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusReceived, false},
		{PurchaseOrderStatusIssued, PurchaseOrderStatusPartiallyReceived, true},
		{PurchaseOrderStatusIssued, PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusIssued, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusIssued, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
		assert.Nil(t, order.SourceIndentID)
	})

	t.Run("with source indent", func(t *testing.T) {
		indentID := uuid.New()
		order, err := NewPurchaseOrder("PO-2026-0002", uuid.New(), uuid.New(), uuid.New(), time.Now(), &indentID)
		require.NoError(t, err)
		assert.Equal(t, indentID, *order.SourceIndentID)
	})

	t.Run("missing vendor", func(t *testing.T) {
		_, err := NewPurchaseOrder("PO-2026-0003", uuid.New(), uuid.Nil, uuid.New(), time.Now(), nil)
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_AddItem(t *testing.T) {
	t.Run("recalculates total", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		addTestOrderItem(t, order, "Binding Wire", 25, 80)

		assert.Len(t, order.Items, 2)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(33250)), "got %s", order.TotalAmount)
	})

	t.Run("rejects duplicate item", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		itemID := addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		err := order.AddItem(itemID, "TMT Bar 12mm", "ITM-001", "kg", decimal.NewFromInt(10), decimal.NewFromInt(60))
		assert.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		err := order.AddItem(uuid.New(), "Sand", "ITM-009", "cum", decimal.NewFromInt(10), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_UpdateItem(t *testing.T) {
	order := createTestPurchaseOrder(t)
	itemID := addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)

	require.NoError(t, order.UpdateItem(itemID, decimal.NewFromInt(600), decimal.NewFromInt(60)))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(36000)))

	assert.Error(t, order.UpdateItem(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(1)))
}

func TestPurchaseOrder_Issue(t *testing.T) {
	t.Run("issues draft with items", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)

		require.NoError(t, order.Issue())
		assert.Equal(t, PurchaseOrderStatusIssued, order.Status)
		assert.NotNil(t, order.IssuedAt)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		assert.Error(t, order.Issue())
	})

	t.Run("issued order not editable", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		itemID := addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		require.NoError(t, order.Issue())

		assert.Error(t, order.AddItem(uuid.New(), "Sand", "ITM-009", "cum", decimal.NewFromInt(5), decimal.NewFromInt(900)))
		assert.Error(t, order.RemoveItem(itemID))
	})
}

func TestPurchaseOrder_Receive(t *testing.T) {
	t.Run("partial then full receipt", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		itemID := addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		require.NoError(t, order.Issue())

		require.NoError(t, order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(200)}}))
		assert.Equal(t, PurchaseOrderStatusPartiallyReceived, order.Status)

		require.NoError(t, order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(300)}}))
		assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
		assert.True(t, order.Items[0].FullyReceived())
	})

	t.Run("rejects over receipt", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		itemID := addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		require.NoError(t, order.Issue())

		err := order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(501)}})
		assert.Error(t, err)
	})

	t.Run("rejects receipt on draft", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		itemID := addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		err := order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(1)}})
		assert.Error(t, err)
	})

	t.Run("rejects unknown item", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		require.NoError(t, order.Issue())

		err := order.Receive([]ReceiptLine{{ItemID: uuid.New(), Quantity: decimal.NewFromInt(1)}})
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_Cancel(t *testing.T) {
	t.Run("cancels issued order without receipts", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		require.NoError(t, order.Issue())

		require.NoError(t, order.Cancel("vendor could not supply"))
		assert.Equal(t, PurchaseOrderStatusCancelled, order.Status)
		assert.NotNil(t, order.CancelledAt)
	})

	t.Run("rejects cancel after receipt", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		itemID := addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		require.NoError(t, order.Issue())
		require.NoError(t, order.Receive([]ReceiptLine{{ItemID: itemID, Quantity: decimal.NewFromInt(10)}}))

		assert.Error(t, order.Cancel("changed mind"))
	})

	t.Run("requires reason", func(t *testing.T) {
		order := createTestPurchaseOrder(t)
		addTestOrderItem(t, order, "TMT Bar 12mm", 500, 62.5)
		assert.Error(t, order.Cancel(""))
	})
}
