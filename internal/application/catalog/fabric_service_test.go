package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFabricService(t *testing.T) {
	ctx := context.Background()

	t.Run("create rounds rolls and publishes stock event", func(t *testing.T) {
		repo := new(MockFabricRepository)
		publisher := &recordingPublisher{}
		svc := NewFabricService(repo, zap.NewNop())
		svc.SetEventPublisher(publisher)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Fabric")).Return(nil)

		resp, err := svc.Create(ctx, FabricRequest{Name: "Linho", ColorHex: "#aabbcc", StockRolls: decimal.RequireFromString("3.456")})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("3.46").Equal(resp.StockRolls))
		assert.Equal(t, "#AABBCC", resp.ColorHex)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, catalog.EventTypeFabricStockChanged, publisher.events[0].EventType())
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		repo := new(MockFabricRepository)
		svc := NewFabricService(repo, zap.NewNop())

		_, err := svc.Create(ctx, FabricRequest{Name: "Linho", StockRolls: decimal.NewFromInt(-1)})
		assert.Equal(t, "INVALID_STOCK", shared.CodeOf(err))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("adjust stock", func(t *testing.T) {
		repo := new(MockFabricRepository)
		svc := NewFabricService(repo, zap.NewNop())
		f, err := catalog.NewFabric("Linho", "Cru", "", decimal.NewFromInt(5), "")
		require.NoError(t, err)
		repo.On("FindByID", mock.Anything, f.ID).Return(f, nil)
		repo.On("Save", mock.Anything, f).Return(nil)

		resp, err := svc.AdjustStock(ctx, f.ID, AdjustStockRequest{Delta: decimal.NewFromFloat(-1.5)})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(3.5).Equal(resp.StockRolls))

		_, err = svc.AdjustStock(ctx, f.ID, AdjustStockRequest{Delta: decimal.NewFromInt(-10)})
		assert.Equal(t, "INSUFFICIENT_STOCK", shared.CodeOf(err))
	})

	t.Run("save failure is wrapped", func(t *testing.T) {
		repo := new(MockFabricRepository)
		svc := NewFabricService(repo, zap.NewNop())
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := svc.Create(ctx, FabricRequest{Name: "Linho"})
		assert.ErrorContains(t, err, "disk full")
		assert.Empty(t, shared.CodeOf(err))
	})
}
