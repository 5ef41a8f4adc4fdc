package persistence

import (
	"context"
	"testing"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormProductRepository(newTestDB(t))

	product, err := catalog.NewProduct("vt-100", catalog.ProductDetails{
		Description:            "Vestido Estação",
		DefaultFabric:          "Linho",
		DefaultColors:          []catalog.ColorSwatch{{Name: "Azul", Hex: "#0000ff"}},
		DefaultGrid:            "standard",
		EstimatedPiecesPerRoll: 40,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	t.Run("find by id and code", func(t *testing.T) {
		byID, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "VT-100", byID.Code)
		assert.Equal(t, []catalog.ColorSwatch{{Name: "Azul", Hex: "#0000FF"}}, byID.DefaultColors)

		byCode, err := repo.FindByCode(ctx, " vt-100 ")
		require.NoError(t, err)
		assert.Equal(t, product.ID, byCode.ID)

		exists, err := repo.ExistsByCode(ctx, "VT-100")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("update in place", func(t *testing.T) {
		require.NoError(t, product.Update("VT-100", catalog.ProductDetails{Description: "Vestido longo", EstimatedPiecesPerRoll: 35}))
		require.NoError(t, repo.Save(ctx, product))

		count, err := repo.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		filter := shared.DefaultFilter()
		filter.Search = "LONGO"
		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, 35, found[0].EstimatedPiecesPerRoll)
	})

	t.Run("duplicate code", func(t *testing.T) {
		dup, err := catalog.NewProduct("VT-100", catalog.ProductDetails{})
		require.NoError(t, err)
		assert.Equal(t, "ALREADY_EXISTS", shared.CodeOf(repo.Save(ctx, dup)))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, product.ID))
		_, err := repo.FindByCode(ctx, "VT-100")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestGormFabricRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormFabricRepository(newTestDB(t))

	linen, err := catalog.NewFabric("Linho", "Cru", "#f5f5dc", decimal.RequireFromString("12.5"), "")
	require.NoError(t, err)
	crepe, err := catalog.NewFabric("Crepe", "Preto", "", decimal.NewFromInt(3), "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, linen))
	require.NoError(t, repo.Save(ctx, crepe))

	loaded, err := repo.FindByID(ctx, linen.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.5").Equal(loaded.StockRolls))
	assert.Equal(t, "#F5F5DC", loaded.ColorHex)

	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	all, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Crepe", all[0].Name)

	filter.Search = "preto"
	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.Delete(ctx, crepe.ID))
	_, err = repo.FindByID(ctx, crepe.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSeamstressRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSeamstressRepository(newTestDB(t))

	maria, err := workforce.NewSeamstress(workforce.Profile{Name: "Maria", City: "São Paulo"})
	require.NoError(t, err)
	joana, err := workforce.NewSeamstress(workforce.Profile{Name: "Joana", City: "Campinas"})
	require.NoError(t, err)
	joana.Deactivate()
	require.NoError(t, repo.Save(ctx, maria))
	require.NoError(t, repo.Save(ctx, joana))

	t.Run("inactive flag survives a round trip", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, joana.ID)
		require.NoError(t, err)
		assert.False(t, loaded.Active)
	})

	t.Run("filter active", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["active"] = true
		active, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "Maria", active[0].Name)
	})

	t.Run("search by city without accents", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "sao paulo"
		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, maria.ID))
		assert.ErrorIs(t, repo.Delete(ctx, maria.ID), shared.ErrNotFound)
	})
}
