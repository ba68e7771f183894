package database

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"staybook/internal/domain"
	"staybook/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUnit(t *testing.T, db *DB, id int64, capacity int, price int64) *models.Unit {
	t.Helper()
	u := &models.Unit{ID: id, Name: "Unit", Capacity: capacity, BasePrice: price, MinStay: 1}
	require.NoError(t, db.UpsertUnit(context.Background(), u))
	return u
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestNewDB_Memory(t *testing.T) {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	createTestUnit(t, db, 1, 2, 100)
	units, err := db.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "file:/tmp/x.db?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on", dsn("/tmp/x.db"))
	assert.Equal(t, "file::memory:?_txlock=immediate&_busy_timeout=5000&_foreign_keys=on", dsn(":memory:"))
	assert.Contains(t, dsn("file:x.db?mode=rwc"), "mode=rwc&_txlock=immediate")
}

func TestDB_Ping(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestUnitsAndCatalog(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	price := int64(25000)
	minStay := 5
	catalog := &models.Catalog{
		Units: []models.Unit{
			{ID: 2, Name: "Loft", Capacity: 2, BasePrice: 9000, SortOrder: 2},
			{ID: 1, Name: "Cabin", Capacity: 4, BasePrice: 10000, SortOrder: 1,
				PricingMode: models.PricingPerPerson, BaseGuests: 2, SurchargeKind: models.SurchargeFixed, SurchargeAmount: 1500},
		},
		Overrides: []models.DateOverride{
			{UnitID: 1, Day: models.MustParseDay("2024-06-02"), Blocked: true, Notes: "maintenance"},
			{UnitID: 1, Day: models.MustParseDay("2024-06-01"), MinStay: &minStay},
			{UnitID: 1, Day: models.MustParseDay("2024-12-31"), Price: &price},
		},
		Seasons: []models.Season{
			{ID: 1, Name: "summer", Start: models.MustParseDay("2024-07-01"), End: models.MustParseDay("2024-09-01"), Price: 15000},
			{ID: 2, UnitID: 2, Name: "loft summer", Start: models.MustParseDay("2024-07-01"), End: models.MustParseDay("2024-08-01"), Price: 12000},
		},
	}
	require.NoError(t, db.SeedCatalog(ctx, catalog))
	// seeding twice is an update, not a duplicate
	require.NoError(t, db.SeedCatalog(ctx, catalog))

	t.Run("ListUnitsSorted", func(t *testing.T) {
		units, err := db.ListUnits(ctx)
		require.NoError(t, err)
		require.Len(t, units, 2)
		assert.Equal(t, "Cabin", units[0].Name)
		assert.Equal(t, models.PricingPerPerson, units[0].PricingMode)
		assert.Equal(t, models.DefaultCurrency, units[0].Currency)
		assert.Equal(t, int64(1500), units[0].SurchargeAmount)
	})

	t.Run("GetUnitNotFound", func(t *testing.T) {
		_, err := db.GetUnit(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("OverridesHalfOpen", func(t *testing.T) {
		got, err := db.GetOverrides(ctx, 1, models.MustParseDay("2024-06-01"), models.MustParseDay("2024-06-02"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].MinStay)
		assert.Equal(t, 5, *got[0].MinStay)
		assert.Nil(t, got[0].Price)

		got, err = db.GetOverrides(ctx, 1, models.MustParseDay("2024-06-01"), models.MustParseDay("2025-01-01"))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[1].Blocked)
		assert.Equal(t, "maintenance", got[1].Notes)
		require.NotNil(t, got[2].Price)
		assert.Equal(t, price, *got[2].Price)
	})

	t.Run("SeasonsUnitSpecificFirst", func(t *testing.T) {
		got, err := db.GetSeasons(ctx, 2, models.MustParseDay("2024-07-10"), models.MustParseDay("2024-07-12"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].UnitID)
		assert.Equal(t, int64(0), got[1].UnitID)

		got, err = db.GetSeasons(ctx, 1, models.MustParseDay("2024-09-01"), models.MustParseDay("2024-09-03"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRunInTx(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUnit(t, db, 1, 4, 100)

	t.Run("RollbackOnError", func(t *testing.T) {
		err := db.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
			r := newTestReservation(1, "2024-06-01", "2024-06-04", models.StatusPending)
			if err := tx.CreateReservation(ctx, r); err != nil {
				return err
			}
			return os.ErrClosed
		})
		assert.ErrorIs(t, err, os.ErrClosed)

		got, err := db.FindOverlapping(ctx, 1, models.MustParseDay("2024-01-01"), models.MustParseDay("2025-01-01"), nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("NestedReusesTx", func(t *testing.T) {
		var ids []int64
		err := db.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
			return tx.RunInTx(ctx, func(ctx context.Context, inner domain.Store) error {
				r := newTestReservation(1, "2024-06-01", "2024-06-04", models.StatusPending)
				if err := inner.CreateReservation(ctx, r); err != nil {
					return err
				}
				ids = append(ids, r.ID)
				return nil
			})
		})
		require.NoError(t, err)
		require.Len(t, ids, 1)

		_, err = db.GetReservation(ctx, ids[0])
		assert.NoError(t, err)
	})
}
