package production

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	svc       *OrderService
	repo      *memoryOrderRepository
	products  *MockProductRepository
	staff     *MockSeamstressRepository
	locker    *fakeLocker
	publisher *recordingPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		repo:      newMemoryOrderRepository(),
		products:  new(MockProductRepository),
		staff:     new(MockSeamstressRepository),
		locker:    &fakeLocker{},
		publisher: &recordingPublisher{},
	}
	f.svc = NewOrderService(f.repo, f.products, f.staff, f.locker, zap.NewNop())
	f.svc.SetEventPublisher(f.publisher)
	return f
}

func (f *orderFixture) seamstress(t *testing.T, name string, active bool) *workforce.Seamstress {
	t.Helper()
	s, err := workforce.NewSeamstress(workforce.Profile{Name: name})
	require.NoError(t, err)
	if !active {
		s.Deactivate()
	}
	f.staff.On("FindByID", mock.Anything, s.ID).Return(s, nil)
	return s
}

func planRequest() CreateOrderRequest {
	return CreateOrderRequest{
		ReferenceCode: "REF-1",
		Description:   "Vestido midi",
		Fabric:        "Linho",
		Items: []OrderItemInput{
			{Color: "Azul", Sizes: map[string]int{"P": 10, "M": 10}},
			{Color: "Preto", Sizes: map[string]int{"G": 5}},
		},
	}
}

func cutRequest() ConfirmCutRequest {
	return ConfirmCutRequest{Items: []OrderItemInput{
		{Color: "Azul", Sizes: map[string]int{"P": 8, "M": 10}},
		{Color: "Preto", Sizes: map[string]int{"G": 5}},
	}}
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns the next order number", func(t *testing.T) {
		f := newOrderFixture(t)

		resp, err := f.svc.Create(ctx, planRequest())
		require.NoError(t, err)

		assert.Equal(t, "1001", resp.OrderNumber)
		assert.Equal(t, "PLANNED", resp.Status)
		assert.Equal(t, "STANDARD", resp.GridType)
		assert.Equal(t, 25, resp.Progress.Planned)
		assert.Equal(t, 0, resp.Progress.Cut)
		assert.Empty(t, resp.ActiveCuttingItems)
		assert.Equal(t, []string{production.EventTypeOrderCreated}, f.publisher.types())
	})

	t.Run("retries when the number is taken", func(t *testing.T) {
		f := newOrderFixture(t)
		existing, err := production.NewProductionOrder("1001", "OLD", "", "", "", []production.OrderItem{
			production.NewOrderItem("Azul", "", production.SizeGrid{"P": 1}),
		})
		require.NoError(t, err)
		f.repo.put(existing)

		resp, err := f.svc.Create(ctx, planRequest())
		require.NoError(t, err)
		assert.Equal(t, "1002", resp.OrderNumber)
	})

	t.Run("fills reference fields from the product", func(t *testing.T) {
		f := newOrderFixture(t)
		product, err := catalog.NewProduct("vest-01", catalog.ProductDetails{
			Description:   "Vestido",
			DefaultFabric: "Viscose",
			DefaultColors: []catalog.ColorSwatch{{Name: "Azul", Hex: "#0000ff"}},
			DefaultGrid:   "plus",
		})
		require.NoError(t, err)
		f.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		resp, err := f.svc.Create(ctx, CreateOrderRequest{
			ProductID: &product.ID,
			Items:     []OrderItemInput{{Color: "azul", Sizes: map[string]int{"G1": 3}}},
		})
		require.NoError(t, err)

		assert.Equal(t, "VEST-01", resp.ReferenceCode)
		assert.Equal(t, "Vestido", resp.Description)
		assert.Equal(t, "Viscose", resp.Fabric)
		assert.Equal(t, "PLUS", resp.GridType)
		assert.Equal(t, "#0000FF", resp.Items[0].ColorHex)
		require.NotNil(t, resp.ProductID)
		assert.Equal(t, product.ID, *resp.ProductID)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newOrderFixture(t)
		id := uuid.New()
		f.products.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		req := planRequest()
		req.ProductID = &id
		_, err := f.svc.Create(ctx, req)
		assert.Equal(t, "INVALID_PRODUCT", shared.CodeOf(err))
	})

	t.Run("reference code required without a product", func(t *testing.T) {
		f := newOrderFixture(t)
		req := planRequest()
		req.ReferenceCode = "  "

		_, err := f.svc.Create(ctx, req)
		assert.Equal(t, "INVALID_REFERENCE", shared.CodeOf(err))
		assert.Empty(t, f.publisher.types())
	})

	t.Run("persistence failure", func(t *testing.T) {
		f := newOrderFixture(t)
		f.repo.saveErr = errors.New("connection reset")

		_, err := f.svc.Create(ctx, planRequest())
		require.Error(t, err)
		assert.Empty(t, shared.CodeOf(err))
		assert.Empty(t, f.publisher.types())
	})
}

func TestOrderService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	ana := f.seamstress(t, "Ana", true)

	created, err := f.svc.Create(ctx, planRequest())
	require.NoError(t, err)

	cut, err := f.svc.ConfirmCut(ctx, created.ID, cutRequest())
	require.NoError(t, err)
	assert.Equal(t, "CUTTING", cut.Status)
	assert.Equal(t, 23, cut.Progress.Cut)
	assert.Equal(t, 23, cut.Progress.Remaining)

	sewing, err := f.svc.Distribute(ctx, created.ID, DistributeRequest{
		SeamstressID: ana.ID,
		Items:        map[string]map[string]int{"azul": {"P": 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, "SEWING", sewing.Status)
	assert.Equal(t, 8, sewing.Progress.Distributed)
	assert.Equal(t, 15, sewing.Progress.Remaining)
	require.Len(t, sewing.Splits, 1)
	split := sewing.Splits[0]
	assert.Equal(t, "Ana", split.SeamstressName)
	assert.Equal(t, "SEWING", split.Status)
	assert.Equal(t, "Azul", split.Items[0].Color)

	_, err = f.svc.Finish(ctx, created.ID)
	assert.Equal(t, "SPLITS_PENDING", shared.CodeOf(err))

	returned, err := f.svc.FinishSplit(ctx, created.ID, split.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, returned.Progress.Finished)
	assert.Equal(t, 0, returned.Progress.PendingSplits)

	finished, err := f.svc.Finish(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "FINISHED", finished.Status)
	assert.NotNil(t, finished.FinishedAt)
	assert.Equal(t, 15, finished.Progress.Remaining)

	assert.Equal(t, []string{
		production.EventTypeOrderCreated,
		production.EventTypeOrderCutConfirmed,
		production.EventTypeOrderDistributed,
		production.EventTypeSplitFinished,
		production.EventTypeOrderFinished,
	}, f.publisher.types())
	assert.Equal(t, f.locker.locks, f.locker.unlocked)

	stored, err := f.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, finished.Version, stored.Version)
	assert.NoError(t, stored.CheckConservation())
}

func TestOrderService_Distribute(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*orderFixture, uuid.UUID) {
		f := newOrderFixture(t)
		created, err := f.svc.Create(ctx, planRequest())
		require.NoError(t, err)
		_, err = f.svc.ConfirmCut(ctx, created.ID, cutRequest())
		require.NoError(t, err)
		return f, created.ID
	}

	t.Run("inactive seamstress", func(t *testing.T) {
		f, id := setup(t)
		bia := f.seamstress(t, "Bia", false)
		locks := f.locker.locks

		_, err := f.svc.Distribute(ctx, id, DistributeRequest{
			SeamstressID: bia.ID,
			Items:        map[string]map[string]int{"Azul": {"P": 1}},
		})
		assert.Equal(t, "SEAMSTRESS_INACTIVE", shared.CodeOf(err))
		assert.Equal(t, locks, f.locker.locks)
	})

	t.Run("unknown seamstress", func(t *testing.T) {
		f, id := setup(t)
		missing := uuid.New()
		f.staff.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Distribute(ctx, id, DistributeRequest{
			SeamstressID: missing,
			Items:        map[string]map[string]int{"Azul": {"P": 1}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, "Seamstress not found", err.Error())
	})

	t.Run("excessive request leaves the order untouched", func(t *testing.T) {
		f, id := setup(t)
		ana := f.seamstress(t, "Ana", true)
		before, err := f.repo.FindByID(ctx, id)
		require.NoError(t, err)

		_, err = f.svc.Distribute(ctx, id, DistributeRequest{
			SeamstressID: ana.ID,
			Items:        map[string]map[string]int{"Azul": {"P": 9}},
		})
		assert.True(t, errors.Is(err, production.ErrInsufficientPieces))

		after, err := f.repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before.Version, after.Version)
		assert.Equal(t, production.OrderStatusCutting, after.Status)
		assert.Equal(t, 23, after.RemainingPieces())
		assert.Empty(t, after.Splits)
	})

	t.Run("unknown color", func(t *testing.T) {
		f, id := setup(t)
		ana := f.seamstress(t, "Ana", true)

		_, err := f.svc.Distribute(ctx, id, DistributeRequest{
			SeamstressID: ana.ID,
			Items:        map[string]map[string]int{"Verde": {"P": 1}},
		})
		assert.Equal(t, "UNKNOWN_COLOR", shared.CodeOf(err))
	})
}

func TestOrderService_Update(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	created, err := f.svc.Create(ctx, planRequest())
	require.NoError(t, err)

	t.Run("replaces the plan while planned", func(t *testing.T) {
		notes := "rush"
		resp, err := f.svc.Update(ctx, created.ID, UpdateOrderRequest{
			Notes: &notes,
			Items: []OrderItemInput{{Color: "Vermelho", Sizes: map[string]int{"M": 7}}},
		})
		require.NoError(t, err)
		assert.Equal(t, "rush", resp.Notes)
		assert.Equal(t, 7, resp.Progress.Planned)
		assert.Equal(t, created.Version+1, resp.Version)
		assert.Equal(t, "REF-1", resp.ReferenceCode)
	})

	t.Run("plan is frozen after the cut", func(t *testing.T) {
		_, err := f.svc.ConfirmCut(ctx, created.ID, ConfirmCutRequest{Items: []OrderItemInput{
			{Color: "Vermelho", Sizes: map[string]int{"M": 7}},
		}})
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, created.ID, UpdateOrderRequest{
			Items: []OrderItemInput{{Color: "Azul", Sizes: map[string]int{"M": 1}}},
		})
		assert.Equal(t, "INVALID_STATE", shared.CodeOf(err))

		fabric := "Seda"
		resp, err := f.svc.Update(ctx, created.ID, UpdateOrderRequest{Fabric: &fabric})
		require.NoError(t, err)
		assert.Equal(t, "Seda", resp.Fabric)
		assert.Equal(t, "CUTTING", resp.Status)
	})

	t.Run("invalid grid type", func(t *testing.T) {
		grid := "HUGE"
		_, err := f.svc.Update(ctx, created.ID, UpdateOrderRequest{GridType: &grid})
		assert.Equal(t, "INVALID_GRID_TYPE", shared.CodeOf(err))
	})
}

func TestOrderService_Concurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("version conflict publishes nothing", func(t *testing.T) {
		f := newOrderFixture(t)
		created, err := f.svc.Create(ctx, planRequest())
		require.NoError(t, err)
		f.repo.lockErr = shared.ErrConcurrencyConflict

		_, err = f.svc.ConfirmCut(ctx, created.ID, cutRequest())
		assert.True(t, errors.Is(err, shared.ErrConcurrencyConflict))
		assert.Equal(t, []string{production.EventTypeOrderCreated}, f.publisher.types())
		assert.Equal(t, f.locker.locks, f.locker.unlocked)
	})

	t.Run("busy order", func(t *testing.T) {
		f := newOrderFixture(t)
		created, err := f.svc.Create(ctx, planRequest())
		require.NoError(t, err)
		f.locker.busy = true

		_, err = f.svc.ConfirmCut(ctx, created.ID, cutRequest())
		assert.True(t, errors.Is(err, ErrOrderBusy))

		stored, err := f.repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, production.OrderStatusPlanned, stored.Status)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.svc.Finish(ctx, uuid.New())
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("publish failure does not fail the change", func(t *testing.T) {
		f := newOrderFixture(t)
		created, err := f.svc.Create(ctx, planRequest())
		require.NoError(t, err)
		f.publisher.err = errors.New("bus stopped")

		resp, err := f.svc.ConfirmCut(ctx, created.ID, cutRequest())
		require.NoError(t, err)
		assert.Equal(t, "CUTTING", resp.Status)
	})
}

func TestOrderService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	first, err := f.svc.Create(ctx, planRequest())
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, planRequest())
	require.NoError(t, err)
	_, err = f.svc.ConfirmCut(ctx, first.ID, cutRequest())
	require.NoError(t, err)

	t.Run("filters by status", func(t *testing.T) {
		list, total, err := f.svc.List(ctx, OrderListFilter{Status: "CUTTING"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, 23, list[0].Progress.Cut)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, first.ID))

		_, err := f.svc.GetByID(ctx, first.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))

		err = f.svc.Delete(ctx, first.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
