package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Manager exposes all repositories
type Manager interface {
	repository.Validator
	repository.TransactionManager
	Accounts() Accounts
	Products() *Products
	Warehouses() *Warehouses
	Inventory() *InventoryRecords
	Orders() *Orders
	Shipments() *Shipments
	Returns() *Returns
	Carriers() *Carriers
	Notifications() *Notifications
	ActivityLogs() *ActivityLogs
}

type mngr struct {
	db            *bun.DB
	accounts      Accounts
	products      *Products
	warehouses    *Warehouses
	inventory     *InventoryRecords
	orders        *Orders
	shipments     *Shipments
	returns       *Returns
	carriers      *Carriers
	notifications *Notifications
	activityLogs  *ActivityLogs
}

// NewManager wires every repository over one shared connection
func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:            db,
		accounts:      NewAccountsRepository(db),
		products:      NewProductsRepository(db),
		warehouses:    NewWarehousesRepository(db),
		inventory:     NewInventoryRepository(db),
		orders:        NewOrdersRepository(db),
		shipments:     NewShipmentsRepository(db),
		returns:       NewReturnsRepository(db),
		carriers:      NewCarriersRepository(db),
		notifications: NewNotificationsRepository(db),
		activityLogs:  NewActivityLogsRepository(db),
	}
}

func (m *mngr) Validate() error {
	if m.db == nil {
		return errors.New("repository manager needs a database handle")
	}

	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	return nil
}

func (m *mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m *mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m *mngr) Accounts() Accounts            { return m.accounts }
func (m *mngr) Products() *Products           { return m.products }
func (m *mngr) Warehouses() *Warehouses       { return m.warehouses }
func (m *mngr) Inventory() *InventoryRecords  { return m.inventory }
func (m *mngr) Orders() *Orders               { return m.orders }
func (m *mngr) Shipments() *Shipments         { return m.shipments }
func (m *mngr) Returns() *Returns             { return m.returns }
func (m *mngr) Carriers() *Carriers           { return m.carriers }
func (m *mngr) Notifications() *Notifications { return m.notifications }
func (m *mngr) ActivityLogs() *ActivityLogs   { return m.activityLogs }
