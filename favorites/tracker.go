// Package favorites keeps the per-customer favorites and recently-viewed
// lists. Both are lightweight caches over the same key-value boundary as the
// cart and repair themselves against the catalog on every read.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dealerhub/portal-api/cart"
)

// ItemKind tags the two catalog item variants. Every catalog lookup matches
// on it exhaustively; unknown kinds are dropped.
type ItemKind string

const (
	KindProduct ItemKind = "product"
	KindVehicle ItemKind = "vehicle"
)

type Item struct {
	Kind ItemKind `json:"kind"`
	ID   uint     `json:"id"`
}

// recentLimit caps the recently-viewed list.
const recentLimit = 20

type Tracker struct {
	kv      cart.KV
	catalog cart.Catalog
}

func NewTracker(kv cart.KV, catalog cart.Catalog) *Tracker {
	return &Tracker{kv: kv, catalog: catalog}
}

func favoritesKey(owner string) string { return fmt.Sprintf("favorites:%s", owner) }
func recentKey(owner string) string    { return fmt.Sprintf("recent:%s", owner) }

func (t *Tracker) load(ctx context.Context, key string) []Item {
	raw, err := t.kv.Get(ctx, key)
	if err != nil {
		return nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func (t *Tracker) save(ctx context.Context, key string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal items failed: %w", err)
	}
	return t.kv.Set(ctx, key, string(data))
}

// Toggle adds the item to the favorites list, or removes it if already
// present. It reports whether the item is a favorite afterwards.
func (t *Tracker) Toggle(ctx context.Context, owner string, item Item) (bool, error) {
	items := t.load(ctx, favoritesKey(owner))

	kept := make([]Item, 0, len(items)+1)
	removed := false
	for _, it := range items {
		if it == item {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		kept = append(kept, item)
	}

	if err := t.save(ctx, favoritesKey(owner), kept); err != nil {
		return false, err
	}
	return !removed, nil
}

// Favorites returns the reconciled favorites list. Items gone from the
// catalog are dropped and the pruned list is written back.
func (t *Tracker) Favorites(ctx context.Context, owner string) ([]Item, error) {
	items := t.load(ctx, favoritesKey(owner))
	kept, changed, err := t.reconcile(ctx, items)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := t.save(ctx, favoritesKey(owner), kept); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

// RecordView pushes the item to the front of the recently-viewed list,
// deduplicating and capping the list length.
func (t *Tracker) RecordView(ctx context.Context, owner string, item Item) error {
	items := t.load(ctx, recentKey(owner))

	updated := make([]Item, 0, len(items)+1)
	updated = append(updated, item)
	for _, it := range items {
		if it == item {
			continue
		}
		updated = append(updated, it)
	}
	if len(updated) > recentLimit {
		updated = updated[:recentLimit]
	}

	return t.save(ctx, recentKey(owner), updated)
}

// RecentlyViewed returns the reconciled recently-viewed list, most recent
// first.
func (t *Tracker) RecentlyViewed(ctx context.Context, owner string) ([]Item, error) {
	items := t.load(ctx, recentKey(owner))
	kept, changed, err := t.reconcile(ctx, items)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := t.save(ctx, recentKey(owner), kept); err != nil {
			return nil, err
		}
	}
	return kept, nil
}

// reconcile drops items whose catalog record is gone, inactive, or sold,
// preserving order.
func (t *Tracker) reconcile(ctx context.Context, items []Item) ([]Item, bool, error) {
	if len(items) == 0 {
		return []Item{}, false, nil
	}

	var productIDs, vehicleIDs []uint
	for _, it := range items {
		switch it.Kind {
		case KindProduct:
			productIDs = append(productIDs, it.ID)
		case KindVehicle:
			vehicleIDs = append(vehicleIDs, it.ID)
		}
	}

	liveProducts := make(map[uint]bool)
	if len(productIDs) > 0 {
		products, err := t.catalog.FetchProductsByIDs(ctx, productIDs)
		if err != nil {
			return nil, false, fmt.Errorf("fetch products failed: %w", err)
		}
		for _, p := range products {
			if p.IsActive {
				liveProducts[p.ID] = true
			}
		}
	}

	liveVehicles := make(map[uint]bool)
	if len(vehicleIDs) > 0 {
		vehicles, err := t.catalog.FetchVehiclesByIDs(ctx, vehicleIDs)
		if err != nil {
			return nil, false, fmt.Errorf("fetch vehicles failed: %w", err)
		}
		for _, v := range vehicles {
			if !v.IsSold {
				liveVehicles[v.ID] = true
			}
		}
	}

	kept := make([]Item, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case KindProduct:
			if liveProducts[it.ID] {
				kept = append(kept, it)
			}
		case KindVehicle:
			if liveVehicles[it.ID] {
				kept = append(kept, it)
			}
		default:
			// Unknown kind, drop it.
		}
	}
	return kept, len(kept) != len(items), nil
}
