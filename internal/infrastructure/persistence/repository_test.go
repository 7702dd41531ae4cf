package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/parcelcart/backend/internal/domain/cart"
	"github.com/parcelcart/backend/internal/domain/order"
	"github.com/parcelcart/backend/internal/domain/parcel"
	"github.com/parcelcart/backend/internal/domain/shared"
	"github.com/parcelcart/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testParcelProductID = "2898"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// every pooled connection to :memory: would otherwise get its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newTestBinder() *parcel.Binder {
	return parcel.NewBinder(parcel.NewPricingEngine(parcel.DefaultTierTable()), testParcelProductID)
}

func testParcelFields() parcel.RawFields {
	return parcel.RawFields{
		parcel.FieldCategory:    "Electronics",
		parcel.FieldDescription: "Headphones",
		parcel.FieldLengthCm:    "25",
		parcel.FieldWidthCm:     "20",
		parcel.FieldHeightCm:    "10",
		parcel.FieldWeightKg:    "1,5",
		parcel.FieldUnits:       "2",
		parcel.FieldFragile:     "1",
	}
}

func TestGormCartRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("EUR")
	require.NoError(t, err)

	key, err := newTestBinder().AttachToNewLine(c, testParcelFields())
	require.NoError(t, err)
	_, err = c.AddLine("sku-42", parcel.LineData{})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, c))
	assert.Equal(t, 1, c.Version)

	loaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 2)

	first := loaded.Lines[0]
	assert.Equal(t, key, first.Key)
	assert.Equal(t, testParcelProductID, first.ProductID)
	require.NotNil(t, first.Data.Parcel)
	assert.Equal(t, "Electronics", first.Data.Parcel.Category)
	assert.Equal(t, 2, first.Data.Parcel.Units)
	assert.True(t, first.Data.Parcel.Fragile)
	assert.InDelta(t, 1.5, first.Data.Parcel.WeightKg, 1e-9)
	assert.True(t, first.UnitPrice.Equal(first.Data.Parcel.EffectiveLinePrice()))
	assert.NotEmpty(t, first.Data.Discriminator)

	second := loaded.Lines[1]
	assert.Equal(t, "sku-42", second.ProductID)
	assert.Nil(t, second.Data.Parcel)
}

func TestGormCartRepository_SaveIncrementsVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("EUR")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	_, err = c.AddLine("sku-1", parcel.LineData{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))
	assert.Equal(t, 2, c.Version)

	loaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Version)
	require.Len(t, loaded.Lines, 1)

	loaded.Clear()
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsEmpty())
}

func TestGormCartRepository_StaleVersionConflicts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c, err := cart.NewCart("EUR")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	a, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	b, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)

	_, err = a.AddLine("sku-a", parcel.LineData{})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))

	_, err = b.AddLine("sku-b", parcel.LineData{})
	require.NoError(t, err)
	err = repo.Save(ctx, b)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestGormCartRepository_FindByIDNotFound(t *testing.T) {
	repo := NewGormCartRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func newPlacedOrder(t *testing.T, key string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(uuid.New(), "EUR")
	require.NoError(t, err)
	o.IdempotencyKey = key

	line, err := o.AddLine(testParcelProductID, 1, decimal.RequireFromString("62"))
	require.NoError(t, err)
	require.NoError(t, line.AddMeta(parcel.LabelCategory, "Electronics"))
	require.NoError(t, line.AddMeta(parcel.LabelFragile, "Yes"))
	require.NoError(t, o.Place())
	return o
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := newPlacedOrder(t, "checkout-1")
	require.NoError(t, repo.Create(ctx, o))

	loaded, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPlaced, loaded.Status)
	assert.True(t, loaded.TotalAmount.Equal(decimal.NewFromInt(62)))
	require.NotNil(t, loaded.PlacedAt)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, []parcel.MetaPair{
		{Label: parcel.LabelCategory, Value: "Electronics"},
		{Label: parcel.LabelFragile, Value: "Yes"},
	}, loaded.Lines[0].Meta())

	// restored lines stay sealed
	assert.Error(t, loaded.Lines[0].AddMeta("extra", "x"))

	byKey, err := repo.FindByIdempotencyKey(ctx, "checkout-1")
	require.NoError(t, err)
	assert.Equal(t, o.ID, byKey.ID)
}

func TestGormOrderRepository_DuplicateIdempotencyKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newPlacedOrder(t, "checkout-dup")))

	err := repo.Create(ctx, newPlacedOrder(t, "checkout-dup"))
	assert.ErrorIs(t, err, shared.ErrDuplicateRequest)
}

func TestGormOrderRepository_OrdersWithoutKeyDoNotCollide(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newPlacedOrder(t, "")))
	require.NoError(t, repo.Create(ctx, newPlacedOrder(t, "")))

	_, err := repo.FindByIdempotencyKey(ctx, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
