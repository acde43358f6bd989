package basket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBasket(t *testing.T) {
	userID := uuid.New()

	b, err := NewBasket(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, b.UserID)
	assert.True(t, b.IsEmpty())

	_, err = NewBasket(uuid.Nil)
	require.Error(t, err)
}

func TestBasketAddItem(t *testing.T) {
	b, err := NewBasket(uuid.New())
	require.NoError(t, err)
	productID := uuid.New()

	t.Run("adds a new line", func(t *testing.T) {
		require.NoError(t, b.AddItem(productID, 2))
		require.Len(t, b.Items, 1)
		assert.Equal(t, 2, b.Items[0].Quantity)
		assert.Equal(t, b.ID, b.Items[0].BasketID)
	})

	t.Run("merges quantity for existing product", func(t *testing.T) {
		require.NoError(t, b.AddItem(productID, 3))
		require.Len(t, b.Items, 1)
		assert.Equal(t, 5, b.Items[0].Quantity)
	})

	t.Run("keeps separate lines per product", func(t *testing.T) {
		require.NoError(t, b.AddItem(uuid.New(), 1))
		assert.Len(t, b.Items, 2)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		err := b.AddItem(uuid.New(), 0)
		require.Error(t, err)
	})
}

func TestBasketUpdateItem(t *testing.T) {
	b, err := NewBasket(uuid.New())
	require.NoError(t, err)
	require.NoError(t, b.AddItem(uuid.New(), 2))
	itemID := b.Items[0].ID

	t.Run("sets positive quantity", func(t *testing.T) {
		require.NoError(t, b.UpdateItem(itemID, 7))
		assert.Equal(t, 7, b.Items[0].Quantity)
	})

	t.Run("removes line on zero quantity", func(t *testing.T) {
		require.NoError(t, b.UpdateItem(itemID, 0))
		assert.True(t, b.IsEmpty())
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		err := b.UpdateItem(uuid.New(), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestBasketClear(t *testing.T) {
	b, err := NewBasket(uuid.New())
	require.NoError(t, err)
	require.NoError(t, b.AddItem(uuid.New(), 1))
	require.NoError(t, b.AddItem(uuid.New(), 2))

	b.Clear()
	assert.True(t, b.IsEmpty())
}

func TestBasketTotal(t *testing.T) {
	b, err := NewBasket(uuid.New())
	require.NoError(t, err)

	p1 := uuid.New()
	p2 := uuid.New()
	require.NoError(t, b.AddItem(p1, 2))
	require.NoError(t, b.AddItem(p2, 1))

	prices := map[uuid.UUID]decimal.Decimal{
		p1: decimal.NewFromInt(5000),
		p2: decimal.NewFromInt(2500),
	}

	assert.True(t, decimal.NewFromInt(12500).Equal(b.Total(prices)))

	// Empty basket totals zero
	empty, _ := NewBasket(uuid.New())
	assert.True(t, empty.Total(prices).IsZero())
}
