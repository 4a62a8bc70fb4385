package repository_test

import (
	"context"
	"testing"

	"github.com/logichain/backend/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory_ListByWarehouse(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	inventory := repository.NewInventoryRepository(db)

	productID := uuid.New()
	_, err := db.NewInsert().Model(&repository.Product{
		ID:    productID,
		Name:  "Pallet jack",
		SKU:   "PJ-200",
		Price: 349.99,
	}).Exec(ctx)
	require.NoError(t, err)

	mainID := uuid.New()
	backupID := uuid.New()
	for _, wh := range []*repository.Warehouse{
		{ID: mainID, Name: "Main DC", Location: "Rotterdam"},
		{ID: backupID, Name: "Backup DC", Location: "Hamburg"},
	} {
		_, err := db.NewInsert().Model(wh).Exec(ctx)
		require.NoError(t, err)
	}

	for _, rec := range []*repository.Inventory{
		{ID: uuid.New(), ProductID: productID, WarehouseID: mainID, Quantity: 12},
		{ID: uuid.New(), ProductID: productID, WarehouseID: mainID, Quantity: 3},
		{ID: uuid.New(), ProductID: productID, WarehouseID: backupID, Quantity: 7},
	} {
		_, err := db.NewInsert().Model(rec).Exec(ctx)
		require.NoError(t, err)
	}

	records, err := inventory.ListByWarehouse(ctx, mainID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, mainID, rec.WarehouseID)
	}

	t.Run("warehouse without stock is empty", func(t *testing.T) {
		records, err := inventory.ListByWarehouse(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
