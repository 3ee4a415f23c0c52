package stock

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteops/backend/internal/domain/shared"
)

func TestSiteStock_AddAndDeduct(t *testing.T) {
	stock, err := NewSiteStock(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())

	require.NoError(t, stock.Add(decimal.NewFromInt(500)))
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(500)))

	require.NoError(t, stock.Deduct(decimal.NewFromInt(120)))
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(380)))
}

func TestSiteStock_NeverNegative(t *testing.T) {
	stock, err := NewSiteStock(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, stock.Add(decimal.NewFromInt(100)))

	err = stock.Deduct(decimal.NewFromInt(101))
	require.Error(t, err)
	assert.Equal(t, shared.ErrInsufficientStock, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(100)), "failed deduction must not change quantity")
}

func TestSiteStock_RejectsNonPositiveQuantities(t *testing.T) {
	stock, err := NewSiteStock(uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.Error(t, stock.Add(decimal.Zero))
	assert.Error(t, stock.Add(decimal.NewFromInt(-5)))
	assert.Error(t, stock.Deduct(decimal.Zero))
}

func createTestConsumption(t *testing.T) *DailyConsumption {
	c, err := NewDailyConsumption(uuid.New(), uuid.New(), time.Now().AddDate(0, 0, -1), "slab casting, 3rd floor")
	require.NoError(t, err)
	return c
}

func TestNewDailyConsumption(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		c := createTestConsumption(t)
		assert.Equal(t, ConsumptionStatusPosted, c.Status)
		assert.Equal(t, 0, c.Date.Hour())
	})

	t.Run("rejects future date", func(t *testing.T) {
		_, err := NewDailyConsumption(uuid.New(), uuid.New(), time.Now().AddDate(0, 0, 1), "")
		assert.Error(t, err)
	})
}

func TestDailyConsumption_AddLine(t *testing.T) {
	c := createTestConsumption(t)
	itemID := uuid.New()

	require.NoError(t, c.AddLine(itemID, "Cement OPC 53", "bag", decimal.NewFromInt(80), "slab casting"))
	assert.Len(t, c.Lines, 1)

	assert.Error(t, c.AddLine(itemID, "Cement OPC 53", "bag", decimal.NewFromInt(10), ""))
	assert.Error(t, c.AddLine(uuid.New(), "Sand", "cum", decimal.Zero, ""))
}

func TestDailyConsumption_Amend(t *testing.T) {
	c := createTestConsumption(t)
	require.NoError(t, c.AddLine(uuid.New(), "Cement OPC 53", "bag", decimal.NewFromInt(80), ""))

	t.Run("replaces lines", func(t *testing.T) {
		newLine, err := NewConsumptionLine(uuid.Nil, uuid.New(), "Cement OPC 53", "bag", decimal.NewFromInt(60), "corrected count")
		require.NoError(t, err)

		amender := uuid.New()
		require.NoError(t, c.Amend(amender, []ConsumptionLine{*newLine}))
		assert.Equal(t, ConsumptionStatusAmended, c.Status)
		assert.Equal(t, amender, *c.AmendedBy)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, c.ID, c.Lines[0].ConsumptionID)
		assert.True(t, c.Lines[0].Quantity.Equal(decimal.NewFromInt(60)))
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		assert.Error(t, c.Amend(uuid.New(), nil))
	})

	t.Run("rejects duplicate items", func(t *testing.T) {
		itemID := uuid.New()
		l1, _ := NewConsumptionLine(uuid.Nil, itemID, "Sand", "cum", decimal.NewFromInt(2), "")
		l2, _ := NewConsumptionLine(uuid.Nil, itemID, "Sand", "cum", decimal.NewFromInt(3), "")
		assert.Error(t, c.Amend(uuid.New(), []ConsumptionLine{*l1, *l2}))
	})
}
