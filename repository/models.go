package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Product is a catalog entry. Browsing is public; ownership ties a
// product to the manager account that listed it.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	SKU           string     `bun:"sku,notnull,unique" json:"sku,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Category      string     `bun:"category" json:"category,omitempty"`
	Price         float64    `bun:"price,notnull" json:"price"`
	ManagerID     *uuid.UUID `bun:"manager_id,nullzero,type:uuid" json:"manager_id,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Warehouse is a storage location
type Warehouse struct {
	bun.BaseModel `bun:"table:warehouses,alias:wh"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Location      string     `bun:"location" json:"location,omitempty"`
	Capacity      int        `bun:"capacity" json:"capacity"`
	ManagerID     *uuid.UUID `bun:"manager_id,nullzero,type:uuid" json:"manager_id,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Inventory records stock of a product at a warehouse
type Inventory struct {
	bun.BaseModel `bun:"table:inventory,alias:inv"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ProductID     uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id,omitempty"`
	WarehouseID   uuid.UUID  `bun:"warehouse_id,notnull,type:uuid" json:"warehouse_id,omitempty"`
	Quantity      int        `bun:"quantity,notnull" json:"quantity"`
	ReorderLevel  int        `bun:"reorder_level" json:"reorder_level"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`

	Product   *Product   `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
	Warehouse *Warehouse `bun:"rel:belongs-to,join:warehouse_id=id" json:"warehouse,omitempty"`
}

// Order is a customer purchase
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CustomerID    uuid.UUID  `bun:"customer_id,notnull,type:uuid" json:"customer_id,omitempty"`
	Status        string     `bun:"status,notnull" json:"status,omitempty"`
	TotalAmount   float64    `bun:"total_amount" json:"total_amount"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`

	Items []*OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

// OrderItem is a single product line in an order
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oit"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OrderID       uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id,omitempty"`
	ProductID     uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id,omitempty"`
	Quantity      int       `bun:"quantity,notnull" json:"quantity"`
	UnitPrice     float64   `bun:"unit_price,notnull" json:"unit_price"`
}

// Shipment tracks an order's delivery
type Shipment struct {
	bun.BaseModel  `bun:"table:shipments,alias:shp"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OrderID        uuid.UUID  `bun:"order_id,notnull,type:uuid" json:"order_id,omitempty"`
	CarrierID      *uuid.UUID `bun:"carrier_id,nullzero,type:uuid" json:"carrier_id,omitempty"`
	TrackingNumber string     `bun:"tracking_number,unique" json:"tracking_number,omitempty"`
	Status         string     `bun:"status,notnull" json:"status,omitempty"`
	ShippedAt      *time.Time `bun:"shipped_at,nullzero" json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `bun:"delivered_at,nullzero" json:"delivered_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`

	Carrier *Carrier `bun:"rel:belongs-to,join:carrier_id=id" json:"carrier,omitempty"`
}

// Return is a customer return request against an order
type Return struct {
	bun.BaseModel `bun:"table:returns,alias:ret"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OrderID       uuid.UUID  `bun:"order_id,notnull,type:uuid" json:"order_id,omitempty"`
	CustomerID    uuid.UUID  `bun:"customer_id,notnull,type:uuid" json:"customer_id,omitempty"`
	Reason        string     `bun:"reason" json:"reason,omitempty"`
	Status        string     `bun:"status,notnull" json:"status,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Carrier is a shipping provider
type Carrier struct {
	bun.BaseModel `bun:"table:carriers,alias:car"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	ContactEmail  string     `bun:"contact_email" json:"contact_email,omitempty"`
	ContactPhone  string     `bun:"contact_phone" json:"contact_phone,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Notification is a per-account message (order updates, approval
// decisions), delivered through the read API.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:ntf"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountID     uuid.UUID  `bun:"account_id,notnull,type:uuid" json:"account_id,omitempty"`
	Message       string     `bun:"message,notnull" json:"message,omitempty"`
	Read          bool       `bun:"read" json:"read"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// ActivityLog is an audit trail entry, written by the server on
// security-relevant events and readable by administrators only.
type ActivityLog struct {
	bun.BaseModel `bun:"table:activity_logs,alias:alg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ActorID       *uuid.UUID `bun:"actor_id,nullzero,type:uuid" json:"actor_id,omitempty"`
	Action        string     `bun:"action,notnull" json:"action,omitempty"`
	Detail        string     `bun:"detail" json:"detail,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
