package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargift/giftmall/internal/domain"
)

var (
	giftP1 = domain.Gift{
		ID: "p1", Name: "한우 선물세트", Category: domain.CategoryHanwoo,
		Price: 0, OriginalPrice: 99000,
	}
	giftP2 = domain.Gift{
		ID: "p2", Name: "사과 선물세트", Category: domain.CategoryFruit,
		Price: 0, OriginalPrice: 80000,
	}
)

func newTestCart(t *testing.T) *CartStore {
	t.Helper()
	cart, err := NewCartStore("client-1", openTestSlots(t), nil)
	require.NoError(t, err)
	return cart
}

func TestAddItemMergesByGiftID(t *testing.T) {
	cart := newTestCart(t)

	require.NoError(t, cart.AddItem(giftP1, 1))
	require.NoError(t, cart.AddItem(giftP1, 2))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Gift.ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(0), cart.TotalPrice())
	assert.Equal(t, 3, cart.TotalItemCount())
}

func TestNoDuplicateLines(t *testing.T) {
	cart := newTestCart(t)

	require.NoError(t, cart.AddItem(giftP1, 1))
	require.NoError(t, cart.AddItem(giftP2, 1))
	require.NoError(t, cart.AddItem(giftP1, 5))
	require.NoError(t, cart.UpdateQuantity("p2", 4))
	require.NoError(t, cart.AddItem(giftP2, 1))

	seen := map[string]bool{}
	for _, it := range cart.Items() {
		assert.False(t, seen[it.Gift.ID], "duplicate line for %s", it.Gift.ID)
		seen[it.Gift.ID] = true
	}
}

func TestUpdateQuantityZeroActsAsRemove(t *testing.T) {
	cart := newTestCart(t)

	require.NoError(t, cart.AddItem(giftP1, 2))
	require.NoError(t, cart.AddItem(giftP2, 1))

	require.NoError(t, cart.UpdateQuantity("p1", 0))
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].Gift.ID)

	require.NoError(t, cart.UpdateQuantity("p2", -3))
	assert.True(t, cart.IsEmpty())
}

func TestUpdateQuantityAbsolute(t *testing.T) {
	cart := newTestCart(t)

	require.NoError(t, cart.AddItem(giftP1, 2))
	require.NoError(t, cart.UpdateQuantity("p1", 7))
	assert.Equal(t, 7, cart.TotalItemCount())

	// unknown id is a no-op
	require.NoError(t, cart.UpdateQuantity("ghost", 3))
	assert.Equal(t, 7, cart.TotalItemCount())
}

func TestRemoveItemMissingIsNoop(t *testing.T) {
	cart := newTestCart(t)

	require.NoError(t, cart.AddItem(giftP1, 1))
	require.NoError(t, cart.RemoveItem("ghost"))
	assert.Equal(t, 1, cart.TotalItemCount())
}

func TestTotalPriceGeneric(t *testing.T) {
	cart := newTestCart(t)

	priced := giftP1
	priced.Price = 12000
	require.NoError(t, cart.AddItem(priced, 3))
	require.NoError(t, cart.AddItem(giftP2, 2))

	assert.Equal(t, int64(36000), cart.TotalPrice())
	assert.Equal(t, 5, cart.TotalItemCount())
}

func TestClear(t *testing.T) {
	cart := newTestCart(t)

	require.NoError(t, cart.AddItem(giftP1, 2))
	require.NoError(t, cart.Clear())
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalItemCount())
}

func TestCartSurvivesReopen(t *testing.T) {
	slots := openTestSlots(t)

	cart, err := NewCartStore("client-1", slots, nil)
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(giftP1, 3))
	require.NoError(t, cart.AddItem(giftP2, 1))

	reopened, err := NewCartStore("client-1", slots, nil)
	require.NoError(t, err)
	assert.Equal(t, cart.Items(), reopened.Items())
	assert.Equal(t, cart.TotalItemCount(), reopened.TotalItemCount())
	assert.Equal(t, cart.TotalPrice(), reopened.TotalPrice())
}

func TestCartManagerScopesByClient(t *testing.T) {
	slots := openTestSlots(t)
	mgr := NewCartManager(slots, nil)

	a, err := mgr.Cart("client-a")
	require.NoError(t, err)
	b, err := mgr.Cart("client-b")
	require.NoError(t, err)

	require.NoError(t, a.AddItem(giftP1, 1))
	assert.True(t, b.IsEmpty())

	again, err := mgr.Cart("client-a")
	require.NoError(t, err)
	assert.Same(t, a, again)
}
