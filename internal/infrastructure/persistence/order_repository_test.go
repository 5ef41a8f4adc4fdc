package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, number, reference string) *production.ProductionOrder {
	t.Helper()
	item := production.NewOrderItem("Azul", "#0000FF", production.SizeGrid{"P": 10, "M": 20})
	item.RollsUsed = decimal.RequireFromString("2.5")
	order, err := production.NewProductionOrder(number, reference, "Vestido midi", "Linho", production.GridTypeStandard,
		[]production.OrderItem{item, production.NewOrderItem("Verde", "", production.SizeGrid{"G": 4})})
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(newTestDB(t))

	order := newOrder(t, "1001", "REF-01")
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, order.ConfirmCut(order.Items))
	split, err := order.Distribute(uuid.New(), "Maria", production.DistributionRequest{"azul": {"P": 4}})
	require.NoError(t, err)
	require.NoError(t, order.FinishSplit(split.ID))
	// ConfirmCut, Distribute and FinishSplit each bumped the version; store
	// the three steps as one write from version 1.
	order.Version = 2
	require.NoError(t, repo.SaveWithLock(ctx, order))

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, "1001", loaded.OrderNumber)
	assert.Equal(t, production.OrderStatusSewing, loaded.Status)
	assert.Equal(t, 2, loaded.Version)
	require.Len(t, loaded.Items, 2)
	assert.True(t, decimal.RequireFromString("2.5").Equal(loaded.Items[0].RollsUsed))
	require.Len(t, loaded.ActiveCuttingItems, 2)
	assert.Equal(t, production.SizeGrid{"P": 6, "M": 20}, loaded.ActiveCuttingItems[0].Sizes)
	assert.Equal(t, 26, loaded.ActiveCuttingItems[0].ActualPieces)
	require.Len(t, loaded.Splits, 1)
	assert.Equal(t, "Maria", loaded.Splits[0].SeamstressName)
	assert.Equal(t, production.SplitStatusFinished, loaded.Splits[0].Status)
	assert.NotNil(t, loaded.Splits[0].FinishedAt)
	assert.NoError(t, loaded.CheckConservation())
	assert.Empty(t, loaded.GetDomainEvents())
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("stale version is a conflict", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		order := newOrder(t, "1001", "REF-01")
		require.NoError(t, repo.Save(ctx, order))

		first, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)

		require.NoError(t, first.ConfirmCut(first.Items))
		require.NoError(t, repo.SaveWithLock(ctx, first))

		require.NoError(t, second.ConfirmCut(second.Items))
		err = repo.SaveWithLock(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Version)
	})

	t.Run("missing order", func(t *testing.T) {
		repo := NewGormOrderRepository(newTestDB(t))
		order := newOrder(t, "1001", "REF-01")
		require.NoError(t, order.ConfirmCut(order.Items))

		assert.ErrorIs(t, repo.SaveWithLock(ctx, order), shared.ErrNotFound)
	})
}

func TestGormOrderRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(newTestDB(t))

	planned := newOrder(t, "1001", "Açaí-01")
	cutting := newOrder(t, "1002", "REF-02")
	require.NoError(t, cutting.ConfirmCut(cutting.Items))
	for _, o := range []*production.ProductionOrder{planned, cutting} {
		require.NoError(t, repo.Save(ctx, o))
	}

	t.Run("find by number", func(t *testing.T) {
		o, err := repo.FindByOrderNumber(ctx, "1002")
		require.NoError(t, err)
		assert.Equal(t, cutting.ID, o.ID)

		_, err = repo.FindByOrderNumber(ctx, "9999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("filter by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = production.OrderStatusCutting
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "1002", orders[0].OrderNumber)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("search ignores case and accents", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "ACAI"
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, planned.ID, orders[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 1
		filter.OrderBy = "sequence"
		filter.OrderDir = "asc"
		filter.Page = 2
		orders, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "1002", orders[0].OrderNumber)
	})

	t.Run("count by status", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[production.OrderStatusPlanned])
		assert.Equal(t, int64(1), counts[production.OrderStatusCutting])
		assert.Equal(t, int64(0), counts[production.OrderStatusFinished])
	})

	t.Run("next order number", func(t *testing.T) {
		next, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1003", next)
	})

	t.Run("duplicate order number", func(t *testing.T) {
		err := repo.Save(ctx, newOrder(t, "1001", "REF-09"))
		assert.Equal(t, "ALREADY_EXISTS", shared.CodeOf(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, planned.ID))
		assert.ErrorIs(t, repo.Delete(ctx, planned.ID), shared.ErrNotFound)
		_, err := repo.FindByID(ctx, planned.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_GenerateOrderNumber_Empty(t *testing.T) {
	repo := NewGormOrderRepository(newTestDB(t))
	next, err := repo.GenerateOrderNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1001", next)
}

func TestGormOrderRepository_SaveWithLock_Postgres(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db.DB)

	order := newOrder(t, "1001", "REF-01")
	require.NoError(t, order.ConfirmCut(order.Items))

	mock.ExpectExec(`UPDATE "production_orders" SET .* WHERE version = \$\d+ AND "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "production_orders" WHERE id = \$1`).
		WithArgs(order.ID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := repo.SaveWithLock(context.Background(), order)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
