package repository

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// readStore is the shared read-side base for logistics entities. Write
// paths for these entities are out of scope; the API only lists and
// fetches them under the access policy.
type readStore[T any] struct {
	db        *bun.DB
	newRecord func() T
}

func (s *readStore[T]) List(ctx context.Context) ([]T, error) {
	var records []T

	err := s.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	return records, err
}

func (s *readStore[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	record := s.newRecord()

	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		var zero T
		if repository.IsRecordNotFound(err) {
			return zero, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return zero, err
	}

	return record, nil
}

// Products reads the catalog
type Products struct {
	readStore[*Product]
}

func NewProductsRepository(db *bun.DB) *Products {
	return &Products{readStore[*Product]{
		db:        db,
		newRecord: func() *Product { return &Product{} },
	}}
}

// ListByManager returns products listed by the given manager account
func (p *Products) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*Product, error) {
	var records []*Product

	err := p.db.NewSelect().
		Model(&records).
		Where("?TableAlias.manager_id = ?", managerID.String()).
		Order("created_at ASC").
		Scan(ctx)

	return records, err
}

// Warehouses reads storage locations
type Warehouses struct {
	readStore[*Warehouse]
}

func NewWarehousesRepository(db *bun.DB) *Warehouses {
	return &Warehouses{readStore[*Warehouse]{
		db:        db,
		newRecord: func() *Warehouse { return &Warehouse{} },
	}}
}

// InventoryRecords reads stock levels
type InventoryRecords struct {
	readStore[*Inventory]
}

func NewInventoryRepository(db *bun.DB) *InventoryRecords {
	return &InventoryRecords{readStore[*Inventory]{
		db:        db,
		newRecord: func() *Inventory { return &Inventory{} },
	}}
}

// ListByWarehouse returns stock records for one warehouse
func (i *InventoryRecords) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*Inventory, error) {
	var records []*Inventory

	err := i.db.NewSelect().
		Model(&records).
		Where("?TableAlias.warehouse_id = ?", warehouseID.String()).
		Order("created_at ASC").
		Scan(ctx)

	return records, err
}

// Orders reads customer orders
type Orders struct {
	readStore[*Order]
}

func NewOrdersRepository(db *bun.DB) *Orders {
	return &Orders{readStore[*Order]{
		db:        db,
		newRecord: func() *Order { return &Order{} },
	}}
}

// ListByCustomer returns a customer's orders, newest first
func (o *Orders) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Order, error) {
	var records []*Order

	err := o.db.NewSelect().
		Model(&records).
		Where("?TableAlias.customer_id = ?", customerID.String()).
		Order("created_at DESC").
		Scan(ctx)

	return records, err
}

// GetWithItems loads an order and its line items
func (o *Orders) GetWithItems(ctx context.Context, id uuid.UUID) (*Order, error) {
	record := &Order{}

	err := o.db.NewSelect().
		Model(record).
		Relation("Items").
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"id": id.String()})
		}
		return nil, err
	}

	return record, nil
}

// Shipments reads deliveries
type Shipments struct {
	readStore[*Shipment]
}

func NewShipmentsRepository(db *bun.DB) *Shipments {
	return &Shipments{readStore[*Shipment]{
		db:        db,
		newRecord: func() *Shipment { return &Shipment{} },
	}}
}

// GetByTracking resolves a shipment by its tracking number
func (s *Shipments) GetByTracking(ctx context.Context, trackingNumber string) (*Shipment, error) {
	record := &Shipment{}

	err := s.db.NewSelect().
		Model(record).
		Relation("Carrier").
		Where("?TableAlias.tracking_number = ?", trackingNumber).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"tracking_number": trackingNumber})
		}
		return nil, err
	}

	return record, nil
}

// Returns reads return requests
type Returns struct {
	readStore[*Return]
}

func NewReturnsRepository(db *bun.DB) *Returns {
	return &Returns{readStore[*Return]{
		db:        db,
		newRecord: func() *Return { return &Return{} },
	}}
}

// Carriers reads shipping providers
type Carriers struct {
	readStore[*Carrier]
}

func NewCarriersRepository(db *bun.DB) *Carriers {
	return &Carriers{readStore[*Carrier]{
		db:        db,
		newRecord: func() *Carrier { return &Carrier{} },
	}}
}

// Notifications reads per-account messages
type Notifications struct {
	readStore[*Notification]
}

func NewNotificationsRepository(db *bun.DB) *Notifications {
	return &Notifications{readStore[*Notification]{
		db:        db,
		newRecord: func() *Notification { return &Notification{} },
	}}
}

// ListByAccount returns one account's notifications, newest first
func (n *Notifications) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Notification, error) {
	var records []*Notification

	err := n.db.NewSelect().
		Model(&records).
		Where("?TableAlias.account_id = ?", accountID.String()).
		Order("created_at DESC").
		Scan(ctx)

	return records, err
}

// ActivityLogs reads and appends the audit trail
type ActivityLogs struct {
	readStore[*ActivityLog]
}

func NewActivityLogsRepository(db *bun.DB) *ActivityLogs {
	return &ActivityLogs{readStore[*ActivityLog]{
		db:        db,
		newRecord: func() *ActivityLog { return &ActivityLog{} },
	}}
}

// Append writes one audit entry; failures are the caller's to log, the
// trail never blocks the main operation.
func (l *ActivityLogs) Append(ctx context.Context, entry *ActivityLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	_, err := l.db.NewInsert().Model(entry).Exec(ctx)
	return err
}
