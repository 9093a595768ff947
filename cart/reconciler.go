package cart

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/dealerhub/portal-api/models"
)

// Catalog is the live catalog collaborator. Both fetches return only
// currently-existing records; an id missing from the response means the item
// is gone and must be dropped.
type Catalog interface {
	FetchProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	FetchVehiclesByIDs(ctx context.Context, ids []uint) ([]models.Vehicle, error)
}

// ReconcileReport is the consolidated notice for one reconciliation pass: how
// many items were dropped per category. No per-item notices are produced.
type ReconcileReport struct {
	RemovedProducts int `json:"removed_products"`
	RemovedVehicles int `json:"removed_vehicles"`
}

// Reconciler repairs a persisted cart against catalog truth. Concurrent
// reconciliations for the same owner are coalesced so partial writes to the
// store never interleave.
type Reconciler struct {
	catalog Catalog
	sfg     singleflight.Group
}

func NewReconciler(catalog Catalog) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// Reconcile drops line items whose product or vehicle no longer exists or is
// no longer purchasable, refreshes the denormalized snapshots of survivors,
// and clamps quantities to current stock. It is idempotent for a given
// catalog snapshot and writes the repaired collections through on change.
func (r *Reconciler) Reconcile(ctx context.Context, m *Manager) (ReconcileReport, error) {
	v, err, shared := r.sfg.Do(m.store.owner, func() (interface{}, error) {
		return r.reconcile(ctx, m)
	})
	if err != nil {
		return ReconcileReport{}, err
	}
	if shared {
		// The in-flight pass repaired the store through another caller's
		// manager; rehydrate this one so it reflects the repaired cart.
		m.cart = m.store.Load(ctx)
	}
	return v.(ReconcileReport), nil
}

func (r *Reconciler) reconcile(ctx context.Context, m *Manager) (ReconcileReport, error) {
	var report ReconcileReport
	cart := m.cart

	if len(cart.Items) > 0 {
		ids := make([]uint, 0, len(cart.Items))
		for _, item := range cart.Items {
			ids = append(ids, item.ProductID)
		}

		products, err := r.catalog.FetchProductsByIDs(ctx, ids)
		if err != nil {
			return report, fmt.Errorf("fetch products failed: %w", err)
		}
		byID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		kept := make([]models.CartLineItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			p, ok := byID[item.ProductID]
			if !ok || !p.IsActive || p.StockQuantity == 0 {
				report.RemovedProducts += item.Quantity
				continue
			}
			// Refresh the snapshot and clamp to current stock.
			item.ProductName = p.Name
			item.Price = p.Price
			item.DiscountPercentage = p.DiscountPercentage
			item.StockQuantity = p.StockQuantity
			item.IsActive = p.IsActive
			if item.Quantity > p.StockQuantity {
				item.Quantity = p.StockQuantity
			}
			if item.Quantity < 1 {
				item.Quantity = 1
			}
			kept = append(kept, item)
		}

		// Snapshots are refreshed even when nothing is dropped, so always
		// write the collection back.
		if err := m.store.SaveMerchandise(ctx, kept); err != nil {
			return report, err
		}
		cart.Items = kept
	}

	if len(cart.Vehicles) > 0 {
		ids := make([]uint, 0, len(cart.Vehicles))
		for _, v := range cart.Vehicles {
			ids = append(ids, v.VehicleID)
		}

		vehicles, err := r.catalog.FetchVehiclesByIDs(ctx, ids)
		if err != nil {
			return report, fmt.Errorf("fetch vehicles failed: %w", err)
		}
		byID := make(map[uint]models.Vehicle, len(vehicles))
		for _, v := range vehicles {
			byID[v.ID] = v
		}

		kept := make([]models.VehicleCartLineItem, 0, len(cart.Vehicles))
		for _, item := range cart.Vehicles {
			v, ok := byID[item.VehicleID]
			if !ok || v.IsSold {
				report.RemovedVehicles++
				continue
			}
			item.Label = v.Label()
			item.Price = v.Price
			item.DiscountPercentage = v.DiscountPercentage
			kept = append(kept, item)
		}

		if err := m.store.SaveVehicles(ctx, kept); err != nil {
			return report, err
		}
		cart.Vehicles = kept
	}

	return report, nil
}
