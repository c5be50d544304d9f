package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"restaurant-order-api/config"
	"restaurant-order-api/models"
	"restaurant-order-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "store.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { config.CloseDB(db) })
	return db
}

func TestCatalog_ListAvailableFiltersHidden(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(openDB(t))

	visible := models.MenuItem{Name: "Dal Makhani", Price: 260, IsAvailable: true}
	hidden := models.MenuItem{Name: "Off Menu", Price: 999}
	require.NoError(t, catalog.Create(ctx, &visible))
	require.NoError(t, catalog.Create(ctx, &hidden))

	items, err := catalog.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, visible.ID, items[0].ID)

	all, err := catalog.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalog_EmptyListsAreNotNil(t *testing.T) {
	catalog := store.NewCatalog(openDB(t))

	items, err := catalog.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCatalog_Replace(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(openDB(t))

	item := models.MenuItem{Name: "Lassi", Price: 90, IsVeg: true, IsAvailable: true}
	require.NoError(t, catalog.Create(ctx, &item))

	// Booleans are overwritten even when switched off.
	updated, err := catalog.Replace(ctx, item.ID, models.MenuItem{Name: "Mango Lassi", Price: 120})
	require.NoError(t, err)
	assert.Equal(t, "Mango Lassi", updated.Name)
	assert.Equal(t, int64(120), updated.Price)
	assert.False(t, updated.IsVeg)
	assert.False(t, updated.IsAvailable)

	_, err = catalog.Replace(ctx, 4242, models.MenuItem{Name: "Ghost"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = catalog.Get(ctx, 4242)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCatalog_FindByIDs(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(openDB(t))

	item := models.MenuItem{Name: "Naan", Price: 40, IsAvailable: true}
	require.NoError(t, catalog.Create(ctx, &item))

	found, err := catalog.FindByIDs(ctx, []uint{item.ID, item.ID, 777})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, int64(40), found[item.ID].Price)

	found, err = catalog.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSeedMenu_Idempotent(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalog(openDB(t))

	n, err := store.SeedMenu(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, len(store.DefaultMenu), n)

	n, err = store.SeedMenu(ctx, catalog)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := catalog.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(store.DefaultMenu)), count)
}

func TestLedger_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	catalog := store.NewCatalog(db)
	ledger := store.NewLedger(db)

	item := models.MenuItem{Name: "Biryani", Price: 350, IsAvailable: true}
	require.NoError(t, catalog.Create(ctx, &item))

	order := &models.Order{
		ID:            "order-1",
		CustomerName:  "Ravi",
		TotalAmount:   700,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentCashOnDelivery,
	}
	lines := []models.OrderLine{{MenuItemID: item.ID, Quantity: 2, PriceAtTime: 350}}
	require.NoError(t, ledger.Create(ctx, order, lines))

	got, err := ledger.GetWithLines(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "order-1", got.Lines[0].OrderID)
	assert.Equal(t, "Biryani", got.Lines[0].MenuItem.Name)

	require.NoError(t, ledger.SetStatus(ctx, "order-1", models.StatusDelivered))
	header, err := ledger.Get(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, header.Status)

	assert.ErrorIs(t, ledger.SetStatus(ctx, "missing", models.StatusConfirmed), store.ErrNotFound)
	_, err = ledger.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAdmins(t *testing.T) {
	ctx := context.Background()
	admins := store.NewAdmins(openDB(t))

	n, err := admins.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, admins.Create(ctx, &models.AdminAccount{Username: "chef", PasswordHash: "x"}))
	got, err := admins.FindByUsername(ctx, "chef")
	require.NoError(t, err)
	assert.Equal(t, "chef", got.Username)

	_, err = admins.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, admins.Create(ctx, &models.AdminAccount{Username: "chef", PasswordHash: "y"}))
}

func TestLedger_SetStatusFrom(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	ledger := store.NewLedger(db)
	item := models.MenuItem{Name: "Idli", Price: 60, IsAvailable: true}
	require.NoError(t, store.NewCatalog(db).Create(ctx, &item))
	order := &models.Order{ID: "order-2", CustomerName: "Meera", TotalAmount: 60, Status: models.StatusPending,
		PaymentStatus: models.PaymentPending, PaymentMethod: models.PaymentOnline}
	require.NoError(t, ledger.Create(ctx, order, []models.OrderLine{{MenuItemID: item.ID, Quantity: 1, PriceAtTime: 60}}))

	require.NoError(t, ledger.SetStatusFrom(ctx, "order-2", models.StatusPending, models.StatusConfirmed))

	err := ledger.SetStatusFrom(ctx, "order-2", models.StatusPending, models.StatusCancelled)
	assert.ErrorIs(t, err, store.ErrStatusChanged)
	got, err := ledger.Get(ctx, "order-2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)

	err = ledger.SetStatusFrom(ctx, "missing", models.StatusPending, models.StatusConfirmed)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
