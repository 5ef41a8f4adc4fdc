package catalog

import (
	"testing"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("normalizes code and colors", func(t *testing.T) {
		p, err := NewProduct(" ref-10 ", ProductDetails{
			Description:   "Polo",
			DefaultColors: []ColorSwatch{{Name: " Azul ", Hex: "#00aaff"}, {Name: "Preto"}},
			DefaultGrid:   "standard",
		})
		require.NoError(t, err)
		assert.Equal(t, "REF-10", p.Code)
		assert.Equal(t, "STANDARD", p.DefaultGrid)
		assert.Equal(t, []ColorSwatch{{Name: "Azul", Hex: "#00AAFF"}, {Name: "Preto"}}, p.DefaultColors)
		assert.Equal(t, "#00AAFF", p.ColorHex("azul"))
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("rejects invalid data", func(t *testing.T) {
		_, err := NewProduct("", ProductDetails{})
		assert.Equal(t, "INVALID_CODE", shared.CodeOf(err))

		_, err = NewProduct("R", ProductDetails{DefaultColors: []ColorSwatch{{Name: "Azul", Hex: "blue"}}})
		assert.Equal(t, "INVALID_COLOR_HEX", shared.CodeOf(err))

		_, err = NewProduct("R", ProductDetails{DefaultColors: []ColorSwatch{{Name: "Azul"}, {Name: "AZUL"}}})
		assert.Equal(t, "DUPLICATE_COLOR", shared.CodeOf(err))

		_, err = NewProduct("R", ProductDetails{EstimatedPiecesPerRoll: -1})
		assert.Equal(t, "INVALID_ESTIMATE", shared.CodeOf(err))
	})
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("R1", ProductDetails{Description: "a"})
	require.NoError(t, err)

	require.NoError(t, p.Update("r2", ProductDetails{Description: "b", EstimatedPiecesPerRoll: 40}))
	assert.Equal(t, "R2", p.Code)
	assert.Equal(t, 40, p.EstimatedPiecesPerRoll)
	assert.Equal(t, 2, p.Version)
}

func TestFabric(t *testing.T) {
	f, err := NewFabric("Cotton", "Blue", "#0000ff", decimal.NewFromFloat(3.5), "")
	require.NoError(t, err)
	assert.Equal(t, "#0000FF", f.ColorHex)

	t.Run("adjust stock", func(t *testing.T) {
		require.NoError(t, f.AdjustStock(decimal.NewFromInt(-2)))
		assert.True(t, decimal.NewFromFloat(1.5).Equal(f.StockRolls))

		err := f.AdjustStock(decimal.NewFromInt(-2))
		assert.Equal(t, "INSUFFICIENT_STOCK", shared.CodeOf(err))
		assert.True(t, decimal.NewFromFloat(1.5).Equal(f.StockRolls))
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewFabric("Linen", "", "", decimal.NewFromInt(-1), "")
		assert.Equal(t, "INVALID_STOCK", shared.CodeOf(err))
	})

	t.Run("update raises a stock event only on change", func(t *testing.T) {
		f.ClearDomainEvents()
		require.NoError(t, f.Update("Cotton", "Blue", "", f.StockRolls, "note"))
		assert.Empty(t, f.GetDomainEvents())
		require.NoError(t, f.Update("Cotton", "Blue", "", decimal.NewFromInt(9), "note"))
		assert.Len(t, f.GetDomainEvents(), 1)
	})
}
