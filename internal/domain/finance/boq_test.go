package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBOQ(t *testing.T) *BOQ {
	boq, err := NewBOQ("BOQ-2026-0001", uuid.New(), uuid.New(), "Tower A structural work", "")
	require.NoError(t, err)
	return boq
}

func TestNewBOQ(t *testing.T) {
	t.Run("valid boq", func(t *testing.T) {
		boq := createTestBOQ(t)
		assert.Equal(t, BOQStatusDraft, boq.Status)
		assert.True(t, boq.IsEditable())
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewBOQ("BOQ-2026-0002", uuid.New(), uuid.New(), "", "")
		assert.Error(t, err)
	})
}

func TestBOQ_AddItem(t *testing.T) {
	t.Run("recalculates total", func(t *testing.T) {
		boq := createTestBOQ(t)
		require.NoError(t, boq.AddItem("1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(120), decimal.NewFromInt(7500)))
		require.NoError(t, boq.AddItem("1.2", "Shuttering for columns", "sqm", decimal.NewFromInt(800), decimal.NewFromInt(450)))

		assert.Len(t, boq.Items, 2)
		assert.True(t, boq.TotalAmount.Equal(decimal.NewFromInt(1260000)), "got %s", boq.TotalAmount)
	})

	t.Run("rejects duplicate item number", func(t *testing.T) {
		boq := createTestBOQ(t)
		require.NoError(t, boq.AddItem("1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(120), decimal.NewFromInt(7500)))
		assert.Error(t, boq.AddItem("1.1", "Other work", "cum", decimal.NewFromInt(1), decimal.NewFromInt(1)))
	})
}

func TestBOQ_UpdateAndRemoveItem(t *testing.T) {
	boq := createTestBOQ(t)
	require.NoError(t, boq.AddItem("1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(120), decimal.NewFromInt(7500)))
	itemID := boq.Items[0].ID

	require.NoError(t, boq.UpdateItem(itemID, decimal.NewFromInt(100), decimal.NewFromInt(8000)))
	assert.True(t, boq.TotalAmount.Equal(decimal.NewFromInt(800000)))

	require.NoError(t, boq.RemoveItem(itemID))
	assert.Empty(t, boq.Items)
	assert.True(t, boq.TotalAmount.IsZero())

	assert.Error(t, boq.RemoveItem(itemID))
}

func TestBOQ_Finalize(t *testing.T) {
	t.Run("finalizes draft with items", func(t *testing.T) {
		boq := createTestBOQ(t)
		require.NoError(t, boq.AddItem("1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(120), decimal.NewFromInt(7500)))

		approver := uuid.New()
		require.NoError(t, boq.Finalize(approver))
		assert.Equal(t, BOQStatusFinalized, boq.Status)
		assert.Equal(t, approver, *boq.FinalizedBy)
	})

	t.Run("rejects empty boq", func(t *testing.T) {
		boq := createTestBOQ(t)
		assert.Error(t, boq.Finalize(uuid.New()))
	})

	t.Run("finalized boq is immutable", func(t *testing.T) {
		boq := createTestBOQ(t)
		require.NoError(t, boq.AddItem("1.1", "RCC M25 in columns", "cum", decimal.NewFromInt(120), decimal.NewFromInt(7500)))
		require.NoError(t, boq.Finalize(uuid.New()))

		assert.Error(t, boq.AddItem("1.2", "Shuttering", "sqm", decimal.NewFromInt(1), decimal.NewFromInt(1)))
		assert.Error(t, boq.Finalize(uuid.New()))
	})
}
