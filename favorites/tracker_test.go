package favorites

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/portal-api/cart"
	"github.com/dealerhub/portal-api/models"
)

type memoryKV struct {
	m    sync.RWMutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (kv *memoryKV) Get(_ context.Context, key string) (string, error) {
	kv.m.RLock()
	defer kv.m.RUnlock()
	val, ok := kv.data[key]
	if !ok {
		return "", cart.ErrKeyNotFound
	}
	return val, nil
}

func (kv *memoryKV) Set(_ context.Context, key, value string) error {
	kv.m.Lock()
	defer kv.m.Unlock()
	kv.data[key] = value
	return nil
}

type mockCatalog struct {
	m        sync.RWMutex
	products map[uint]models.Product
	vehicles map[uint]models.Vehicle
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		products: make(map[uint]models.Product),
		vehicles: make(map[uint]models.Vehicle),
	}
}

func (c *mockCatalog) FetchProductsByIDs(_ context.Context, ids []uint) ([]models.Product, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *mockCatalog) FetchVehiclesByIDs(_ context.Context, ids []uint) ([]models.Vehicle, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	var out []models.Vehicle
	for _, id := range ids {
		if v, ok := c.vehicles[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestTracker() (*Tracker, *mockCatalog) {
	catalog := newMockCatalog()
	catalog.products[1] = models.Product{ID: 1, Name: "A", IsActive: true}
	catalog.vehicles[7] = models.Vehicle{ID: 7, Make: "Toyota", Model: "Corolla", Year: 2021}
	return NewTracker(newMemoryKV(), catalog), catalog
}

func TestToggleFavorite(t *testing.T) {
	tracker, _ := newTestTracker()
	ctx := context.Background()
	item := Item{Kind: KindProduct, ID: 1}

	added, err := tracker.Toggle(ctx, "user-1", item)
	require.NoError(t, err)
	assert.True(t, added)

	favs, err := tracker.Favorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []Item{item}, favs)

	added, err = tracker.Toggle(ctx, "user-1", item)
	require.NoError(t, err)
	assert.False(t, added)

	favs, err = tracker.Favorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavoritesDropGoneItems(t *testing.T) {
	tracker, catalog := newTestTracker()
	ctx := context.Background()

	_, err := tracker.Toggle(ctx, "user-1", Item{Kind: KindProduct, ID: 1})
	require.NoError(t, err)
	_, err = tracker.Toggle(ctx, "user-1", Item{Kind: KindVehicle, ID: 7})
	require.NoError(t, err)

	catalog.m.Lock()
	v := catalog.vehicles[7]
	v.IsSold = true
	catalog.vehicles[7] = v
	catalog.m.Unlock()

	favs, err := tracker.Favorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []Item{{Kind: KindProduct, ID: 1}}, favs)
}

func TestRecentlyViewedDedupeAndCap(t *testing.T) {
	tracker, catalog := newTestTracker()
	ctx := context.Background()

	for i := uint(1); i <= 25; i++ {
		catalog.m.Lock()
		catalog.products[i] = models.Product{ID: i, Name: fmt.Sprintf("P%d", i), IsActive: true}
		catalog.m.Unlock()
		require.NoError(t, tracker.RecordView(ctx, "user-1", Item{Kind: KindProduct, ID: i}))
	}

	// Re-viewing an item moves it to the front without duplicating it.
	require.NoError(t, tracker.RecordView(ctx, "user-1", Item{Kind: KindProduct, ID: 10}))

	recent, err := tracker.RecentlyViewed(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, recent, recentLimit)
	assert.Equal(t, Item{Kind: KindProduct, ID: 10}, recent[0])
	assert.Equal(t, Item{Kind: KindProduct, ID: 25}, recent[1])

	seen := make(map[Item]bool)
	for _, it := range recent {
		assert.False(t, seen[it], "no duplicates")
		seen[it] = true
	}
}

func TestUnknownKindDropped(t *testing.T) {
	tracker, _ := newTestTracker()
	ctx := context.Background()

	_, err := tracker.Toggle(ctx, "user-1", Item{Kind: "banner", ID: 1})
	require.NoError(t, err)

	favs, err := tracker.Favorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}
