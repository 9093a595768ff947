package models

import "time"

// CartLineItem carries a denormalized snapshot of the product at the time it
// was added. The snapshot is refreshed only by reconciliation, never read live.
type CartLineItem struct {
	ProductID          uint      `json:"product_id"`
	ProductName        string    `json:"product_name"`
	Price              float64   `json:"price"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	StockQuantity      int       `json:"stock_quantity"`
	IsActive           bool      `json:"is_active"`
	Quantity           int       `json:"quantity"`
	AddedAt            time.Time `json:"added_at"`
}

// VehicleCartLineItem has no quantity: a vehicle appears at most once per cart.
type VehicleCartLineItem struct {
	VehicleID          uint      `json:"vehicle_id"`
	Label              string    `json:"label"`
	Price              float64   `json:"price"`
	DiscountPercentage *float64  `json:"discount_percentage,omitempty"`
	AddedAt            time.Time `json:"added_at"`
}

// Cart is the client-scoped aggregate: one merchandise collection and one
// vehicle collection, each persisted independently.
type Cart struct {
	Items    []CartLineItem        `json:"items"`
	Vehicles []VehicleCartLineItem `json:"vehicles"`
}

type CartTotals struct {
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}
