package cart

import (
	"context"
	"errors"
	"time"

	"github.com/dealerhub/portal-api/models"
	"github.com/dealerhub/portal-api/pricing"
)

var (
	// ErrCapacityExceeded means the requested quantity is more than the
	// snapshotted stock. The cart is left unchanged.
	ErrCapacityExceeded = errors.New("requested quantity exceeds available stock")
	// ErrDuplicateItem means the vehicle is already in the cart.
	ErrDuplicateItem = errors.New("vehicle already in cart")
	// ErrVehicleSold means the vehicle can no longer be requested.
	ErrVehicleSold = errors.New("vehicle already sold")
	// ErrItemNotFound means the referenced line item is not in the cart.
	ErrItemNotFound = errors.New("item not in cart")
)

// Manager owns one client's Cart aggregate. All operations are synchronous and
// all-or-nothing: a mutation is committed to memory only after the
// write-through to the Store succeeds, so failures never leave the cart
// partially changed.
type Manager struct {
	cart  *models.Cart
	store *Store
}

// NewManager rehydrates the owner's cart from the store.
func NewManager(ctx context.Context, store *Store) *Manager {
	return &Manager{cart: store.Load(ctx), store: store}
}

// Cart returns the current aggregate.
func (m *Manager) Cart() *models.Cart {
	return m.cart
}

// AddMerchandise merges the product into an existing line item or appends a
// new one. It fails with ErrCapacityExceeded when the combined quantity would
// exceed the product's stock.
func (m *Manager) AddMerchandise(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	existing := 0
	idx := -1
	for i, item := range m.cart.Items {
		if item.ProductID == product.ID {
			existing = item.Quantity
			idx = i
			break
		}
	}

	if existing+quantity > product.StockQuantity {
		return ErrCapacityExceeded
	}

	updated := make([]models.CartLineItem, len(m.cart.Items))
	copy(updated, m.cart.Items)

	if idx >= 0 {
		updated[idx].Quantity = existing + quantity
		updated[idx].AddedAt = time.Now()
	} else {
		updated = append(updated, models.CartLineItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			Price:              product.Price,
			DiscountPercentage: product.DiscountPercentage,
			StockQuantity:      product.StockQuantity,
			IsActive:           product.IsActive,
			Quantity:           quantity,
			AddedAt:            time.Now(),
		})
	}

	if err := m.store.SaveMerchandise(ctx, updated); err != nil {
		return err
	}
	m.cart.Items = updated
	return nil
}

// AddVehicle appends the vehicle with quantity fixed at one. A vehicle id may
// appear at most once per cart.
func (m *Manager) AddVehicle(ctx context.Context, vehicle models.Vehicle) error {
	if vehicle.IsSold {
		return ErrVehicleSold
	}
	for _, v := range m.cart.Vehicles {
		if v.VehicleID == vehicle.ID {
			return ErrDuplicateItem
		}
	}

	updated := make([]models.VehicleCartLineItem, len(m.cart.Vehicles))
	copy(updated, m.cart.Vehicles)
	updated = append(updated, models.VehicleCartLineItem{
		VehicleID:          vehicle.ID,
		Label:              vehicle.Label(),
		Price:              vehicle.Price,
		DiscountPercentage: vehicle.DiscountPercentage,
		AddedAt:            time.Now(),
	})

	if err := m.store.SaveVehicles(ctx, updated); err != nil {
		return err
	}
	m.cart.Vehicles = updated
	return nil
}

// RemoveMerchandise is idempotent: removing an absent product is a no-op.
func (m *Manager) RemoveMerchandise(ctx context.Context, productID uint) error {
	updated := make([]models.CartLineItem, 0, len(m.cart.Items))
	found := false
	for _, item := range m.cart.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		updated = append(updated, item)
	}
	if !found {
		return nil
	}
	if err := m.store.SaveMerchandise(ctx, updated); err != nil {
		return err
	}
	m.cart.Items = updated
	return nil
}

// RemoveVehicle is idempotent: removing an absent vehicle is a no-op.
func (m *Manager) RemoveVehicle(ctx context.Context, vehicleID uint) error {
	updated := make([]models.VehicleCartLineItem, 0, len(m.cart.Vehicles))
	found := false
	for _, v := range m.cart.Vehicles {
		if v.VehicleID == vehicleID {
			found = true
			continue
		}
		updated = append(updated, v)
	}
	if !found {
		return nil
	}
	if err := m.store.SaveVehicles(ctx, updated); err != nil {
		return err
	}
	m.cart.Vehicles = updated
	return nil
}

// UpdateQuantity sets a new quantity for an existing line item. Zero or
// negative quantity removes the item; more than the snapshotted stock fails
// with ErrCapacityExceeded and leaves the cart unchanged.
func (m *Manager) UpdateQuantity(ctx context.Context, productID uint, quantity int) error {
	if quantity <= 0 {
		return m.RemoveMerchandise(ctx, productID)
	}

	idx := -1
	for i, item := range m.cart.Items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotFound
	}
	if quantity > m.cart.Items[idx].StockQuantity {
		return ErrCapacityExceeded
	}

	updated := make([]models.CartLineItem, len(m.cart.Items))
	copy(updated, m.cart.Items)
	updated[idx].Quantity = quantity

	if err := m.store.SaveMerchandise(ctx, updated); err != nil {
		return err
	}
	m.cart.Items = updated
	return nil
}

// Clear empties both collections. Each collection is committed to memory as
// soon as its own write-through succeeds, so a failure on the second keeps
// memory and store consistent per collection.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.SaveMerchandise(ctx, nil); err != nil {
		return err
	}
	m.cart.Items = nil
	if err := m.store.SaveVehicles(ctx, nil); err != nil {
		return err
	}
	m.cart.Vehicles = nil
	return nil
}

// Totals recomputes item count and discounted total on demand. Vehicles count
// one each.
func (m *Manager) Totals() models.CartTotals {
	var t models.CartTotals
	for _, item := range m.cart.Items {
		t.TotalItems += item.Quantity
		t.TotalPrice += pricing.LineTotal(item.Price, item.DiscountPercentage, item.Quantity)
	}
	for _, v := range m.cart.Vehicles {
		t.TotalItems++
		t.TotalPrice += pricing.DiscountedPrice(v.Price, v.DiscountPercentage)
	}
	return t
}
