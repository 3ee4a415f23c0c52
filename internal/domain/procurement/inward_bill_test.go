package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInwardBill(t *testing.T) *InwardBill {
	bill, err := NewInwardBill("INW-2026-0001", uuid.New(), uuid.New(), uuid.New(), uuid.New(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return bill
}

func TestNewInwardBill(t *testing.T) {
	t.Run("valid bill", func(t *testing.T) {
		bill := createTestInwardBill(t)
		assert.Equal(t, InwardBillStatusRecorded, bill.Status)
		assert.True(t, bill.TotalAmount.IsZero())
	})

	t.Run("rejects future bill date", func(t *testing.T) {
		_, err := NewInwardBill("INW-2026-0002", uuid.New(), uuid.New(), uuid.New(), uuid.New(), time.Now().Add(48*time.Hour))
		assert.Error(t, err)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := NewInwardBill("INW-2026-0003", uuid.Nil, uuid.New(), uuid.New(), uuid.New(), time.Now())
		assert.Error(t, err)
	})
}

func TestInwardBill_AddLine(t *testing.T) {
	t.Run("accumulates total", func(t *testing.T) {
		bill := createTestInwardBill(t)
		require.NoError(t, bill.AddLine(uuid.New(), "TMT Bar 12mm", "kg", decimal.NewFromInt(200), decimal.NewFromFloat(62.5)))
		require.NoError(t, bill.AddLine(uuid.New(), "Binding Wire", "kg", decimal.NewFromInt(10), decimal.NewFromInt(80)))

		assert.Len(t, bill.Lines, 2)
		assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(13300)), "got %s", bill.TotalAmount)
	})

	t.Run("rejects duplicate item", func(t *testing.T) {
		bill := createTestInwardBill(t)
		itemID := uuid.New()
		require.NoError(t, bill.AddLine(itemID, "TMT Bar 12mm", "kg", decimal.NewFromInt(200), decimal.NewFromFloat(62.5)))
		assert.Error(t, bill.AddLine(itemID, "TMT Bar 12mm", "kg", decimal.NewFromInt(1), decimal.NewFromInt(60)))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		bill := createTestInwardBill(t)
		assert.Error(t, bill.AddLine(uuid.New(), "Sand", "cum", decimal.Zero, decimal.NewFromInt(900)))
	})
}

func TestInwardBill_Verify(t *testing.T) {
	t.Run("verifies recorded bill", func(t *testing.T) {
		bill := createTestInwardBill(t)
		require.NoError(t, bill.AddLine(uuid.New(), "TMT Bar 12mm", "kg", decimal.NewFromInt(200), decimal.NewFromFloat(62.5)))

		verifier := uuid.New()
		require.NoError(t, bill.Verify(verifier))
		assert.Equal(t, InwardBillStatusVerified, bill.Status)
		assert.Equal(t, verifier, *bill.VerifiedBy)
		assert.NotNil(t, bill.VerifiedAt)
	})

	t.Run("rejects double verify", func(t *testing.T) {
		bill := createTestInwardBill(t)
		require.NoError(t, bill.Verify(uuid.New()))
		assert.Error(t, bill.Verify(uuid.New()))
	})

	t.Run("verified bill not editable", func(t *testing.T) {
		bill := createTestInwardBill(t)
		require.NoError(t, bill.Verify(uuid.New()))
		assert.Error(t, bill.AddLine(uuid.New(), "Sand", "cum", decimal.NewFromInt(1), decimal.NewFromInt(900)))
	})
}

func TestInwardBill_ReceiptLines(t *testing.T) {
	bill := createTestInwardBill(t)
	itemID := uuid.New()
	require.NoError(t, bill.AddLine(itemID, "TMT Bar 12mm", "kg", decimal.NewFromInt(200), decimal.NewFromFloat(62.5)))

	lines := bill.ReceiptLines()
	require.Len(t, lines, 1)
	assert.Equal(t, itemID, lines[0].ItemID)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(200)))
}
