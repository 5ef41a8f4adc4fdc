package production

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInsightsFixture(t *testing.T, gen InsightsGenerator) *InsightsService {
	t.Helper()
	repo := newMemoryOrderRepository()
	order, err := production.NewProductionOrder("1001", "REF-1", "", "", "", []production.OrderItem{
		production.NewOrderItem("Azul", "", production.SizeGrid{"P": 4, "M": 6}),
	})
	require.NoError(t, err)
	repo.put(order)

	ana, err := workforce.NewSeamstress(workforce.Profile{Name: "Ana"})
	require.NoError(t, err)
	staff := new(MockSeamstressRepository)
	staff.On("FindAll", mock.Anything, mock.Anything).Return([]workforce.Seamstress{*ana}, nil)

	return NewInsightsService(repo, staff, gen, 0, zap.NewNop())
}

func TestInsightsService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		svc := newInsightsFixture(t, nil)
		resp := svc.Generate(ctx)
		assert.Equal(t, InsightsNotConfigured, resp.Report)
		assert.False(t, resp.Generated)
	})

	t.Run("generator failure yields the fallback text", func(t *testing.T) {
		svc := newInsightsFixture(t, &fakeGenerator{err: errors.New("quota exceeded")})
		resp := svc.Generate(ctx)
		assert.Equal(t, InsightsFailed, resp.Report)
		assert.False(t, resp.Generated)
	})

	t.Run("empty answer", func(t *testing.T) {
		svc := newInsightsFixture(t, &fakeGenerator{text: "  "})
		assert.Equal(t, InsightsEmpty, svc.Generate(ctx).Report)
	})

	t.Run("report built from orders and seamstresses", func(t *testing.T) {
		gen := &fakeGenerator{text: "## Weekly summary"}
		svc := newInsightsFixture(t, gen)

		resp := svc.Generate(ctx)
		assert.True(t, resp.Generated)
		assert.Equal(t, "## Weekly summary", resp.Report)
		assert.Contains(t, gen.prompt, `{"ref":"REF-1","status":"PLANNED","pieces":10}`)
		assert.Contains(t, gen.prompt, `{"name":"Ana"}`)
		assert.Contains(t, gen.prompt, "Markdown")
	})

	t.Run("repository failure yields the fallback text", func(t *testing.T) {
		staff := new(MockSeamstressRepository)
		staff.On("FindAll", mock.Anything, mock.Anything).Return([]workforce.Seamstress{}, errors.New("db down"))
		gen := &fakeGenerator{text: "unused"}
		svc := NewInsightsService(newMemoryOrderRepository(), staff, gen, 10, zap.NewNop())

		assert.Equal(t, InsightsFailed, svc.Generate(ctx).Report)
		assert.Empty(t, gen.prompt)
	})
}
