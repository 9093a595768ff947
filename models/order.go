package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Quote request received
	OrderStatusConfirmed  OrderStatus = "confirmed"  // Confirmed by the dealer
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the items
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before delivery
)

// Order is a non-binding quote request. Line items are immutable snapshots
// captured at submission; the order itself changes only through status
// transitions and is never hard-deleted.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          string      `gorm:"not null;index" json:"user_id"`
	User            User        `gorm:"foreignKey:UserID" json:"user"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItemKind string

const (
	OrderItemProduct OrderItemKind = "product"
	OrderItemVehicle OrderItemKind = "vehicle"
)

type OrderItem struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	OrderID            uint          `gorm:"index" json:"order_id"`
	Kind               OrderItemKind `gorm:"type:VARCHAR(10)" json:"kind"`
	RefID              uint          `json:"ref_id"`
	Name               string        `json:"name"`
	Quantity           int           `json:"quantity"`
	UnitPrice          float64       `json:"unit_price"`
	OriginalUnitPrice  *float64      `json:"original_unit_price,omitempty"`
	DiscountPercentage *float64      `json:"discount_percentage,omitempty"`
	TotalPrice         float64       `json:"total_price"`
}

// OrderHistoryEntry is one row of the append-only audit trail. OldStatus is
// empty only on the entry recording creation.
type OrderHistoryEntry struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"index;not null" json:"order_id"`
	OldStatus OrderStatus `gorm:"type:VARCHAR(20)" json:"old_status,omitempty"`
	NewStatus OrderStatus `gorm:"type:VARCHAR(20);not null" json:"new_status"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderNote is an internal annotation visible to admins only. It is editable
// and deletable by its author alone and is independent of the state machine.
type OrderNote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"index;not null" json:"order_id"`
	AuthorID   string    `gorm:"not null" json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `gorm:"not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
