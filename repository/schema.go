package repository

import (
	"context"
	"database/sql"

	"github.com/logichain/backend/auth"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// schemaModels lists every table in creation order; accounts first so
// foreign references resolve.
var schemaModels = []any{
	(*auth.Account)(nil),
	(*Product)(nil),
	(*Warehouse)(nil),
	(*Inventory)(nil),
	(*Order)(nil),
	(*OrderItem)(nil),
	(*Shipment)(nil),
	(*Return)(nil),
	(*Carrier)(nil),
	(*Notification)(nil),
	(*ActivityLog)(nil),
}

// OpenSQLite opens a sqlite database at the given DSN with the bun
// dialect. Use ":memory:" style DSNs for tests.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates all tables if they do not already exist
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range schemaModels {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
