//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/parts-be/internal/adapters/db"
	"github.com/ammerola/parts-be/internal/core/domain"
	"github.com/ammerola/parts-be/internal/core/ports"
	"github.com/ammerola/parts-be/internal/core/services"
	"github.com/ammerola/parts-be/test/helpers"
)

func TestPartRepository_Integration(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	repo := db.NewPartRepository(testDB.Database, helpers.TestLogger())
	ctx := context.Background()

	t.Run("crud_round_trip", func(t *testing.T) {
		helpers.TruncateParts(t, testDB.PgxPool)

		part := helpers.CreateTestPart()
		require.NoError(t, repo.Create(ctx, part))
		assert.NotEqual(t, uuid.Nil, part.ID)
		assert.False(t, part.CreatedAt.IsZero())

		found, err := repo.FindByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, "Brake Pad", found.Name)
		assert.True(t, found.Price.Equal(decimal.RequireFromString("30")))

		found.Quantity = 12
		require.NoError(t, repo.Update(ctx, found))

		found, err = repo.FindByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, found.Quantity)

		require.NoError(t, repo.Delete(ctx, part.ID))
		_, err = repo.FindByID(ctx, part.ID)
		assert.ErrorIs(t, err, domain.ErrPartNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, part.ID), domain.ErrPartNotFound)
	})

	t.Run("check_constraint_maps_to_validation", func(t *testing.T) {
		helpers.TruncateParts(t, testDB.PgxPool)

		part := helpers.CreateTestPart(func(p *domain.Part) { p.Quantity = -1 })
		err := repo.Create(ctx, part)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("upsert_updates_oldest_match", func(t *testing.T) {
		helpers.TruncateParts(t, testDB.PgxPool)

		first := helpers.CreateTestPart()
		require.NoError(t, repo.Create(ctx, first))
		second := helpers.CreateTestPart()
		require.NoError(t, repo.Create(ctx, second))

		incoming := helpers.CreateTestPart(func(p *domain.Part) {
			p.Description = "restocked"
			p.Quantity = 8
		})
		created, err := repo.UpsertByNameAndPrice(ctx, incoming)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, incoming.ID)

		untouched, err := repo.FindByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, untouched.Quantity)

		other := helpers.CreateTestPart(func(p *domain.Part) { p.Price = decimal.RequireFromString("31.00") })
		created, err = repo.UpsertByNameAndPrice(ctx, other)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("list_search_and_paging", func(t *testing.T) {
		helpers.TruncateParts(t, testDB.PgxPool)
		for _, p := range helpers.CreateTestParts(25) {
			require.NoError(t, repo.Create(ctx, p))
		}

		parts, total, err := repo.List(ctx, ports.ListParams{Page: 2, PageSize: 10, SortBy: "name", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(25), total)
		require.Len(t, parts, 10)
		assert.Equal(t, "Part 011", parts[0].Name)

		parts, total, err = repo.List(ctx, ports.ListParams{Page: 1, PageSize: 10, Search: "part 02", SortBy: "name", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Len(t, parts, 6)
	})

	t.Run("replenish_and_stats", func(t *testing.T) {
		helpers.TruncateParts(t, testDB.PgxPool)
		for _, q := range []int{0, 4, 10, 25} {
			q := q
			require.NoError(t, repo.Create(ctx, helpers.CreateTestPart(func(p *domain.Part) {
				p.Name = "Bolt"
				p.Price = decimal.RequireFromString("1.50")
				p.Quantity = q
			})))
		}

		stats, err := repo.Stats(ctx, domain.DefaultReplenishMinimum)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.TotalParts)
		assert.Equal(t, int64(39), stats.TotalQuantity)
		assert.Equal(t, int64(2), stats.BelowMinimum)
		assert.True(t, stats.InventoryValue.Equal(decimal.RequireFromString("58.5")))

		n, err := repo.RaiseQuantityFloor(ctx, domain.DefaultReplenishMinimum)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = repo.RaiseQuantityFloor(ctx, domain.DefaultReplenishMinimum)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("csv_import_against_postgres", func(t *testing.T) {
		helpers.TruncateParts(t, testDB.PgxPool)
		importer := services.NewCSVImporter(repo, nil, helpers.TestLogger())

		result, err := importer.Import(ctx, "name,description,price,quantity\n"+
			"Brake Pad,Front,30.00,3\n"+
			"Brake Pad,Front again,30,5\n"+
			"Clutch,,abc,1\n")
		require.NoError(t, err)
		assert.Equal(t, domain.ImportResult{Created: 1, Updated: 1, Skipped: 1, Total: 3}, *result)

		var count int
		require.NoError(t, testDB.PgxPool.QueryRow(ctx, "SELECT count(*) FROM parts").Scan(&count))
		assert.Equal(t, 1, count)

		var seen []string
		require.NoError(t, repo.ForEach(ctx, func(p *domain.Part) error {
			seen = append(seen, p.Description)
			return nil
		}))
		assert.Equal(t, []string{"Front again"}, seen)
	})
}
