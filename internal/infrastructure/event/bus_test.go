package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	if h.panics {
		panic("boom")
	}
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.eventTypes }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func newFinishedEvent() shared.DomainEvent {
	return &production.OrderFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(production.EventTypeOrderFinished, production.AggregateTypeProductionOrder, uuid.New()),
		OrderNumber:     "1001",
	}
}

func newCutEvent() shared.DomainEvent {
	return &production.OrderCutConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(production.EventTypeOrderCutConfirmed, production.AggregateTypeProductionOrder, uuid.New()),
	}
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by event type", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		finished := &recordingHandler{eventTypes: []string{production.EventTypeOrderFinished}}
		bus.Subscribe(finished)

		require.NoError(t, bus.Publish(ctx, newFinishedEvent(), newCutEvent(), newFinishedEvent()))
		assert.Equal(t, 2, finished.count())
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		all := &recordingHandler{}
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, newFinishedEvent(), newCutEvent()))
		assert.Equal(t, 2, all.count())
	})

	t.Run("explicit types override the handler's own", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{eventTypes: []string{production.EventTypeOrderFinished}}
		bus.Subscribe(h, production.EventTypeOrderCutConfirmed)

		require.NoError(t, bus.Publish(ctx, newFinishedEvent(), newCutEvent()))
		assert.Equal(t, 1, h.count())
	})

	t.Run("failing and panicking handlers do not stop delivery", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		bus := NewInMemoryEventBus(zap.New(core))

		failing := &recordingHandler{err: errors.New("handler error")}
		panicking := &recordingHandler{panics: true}
		healthy := &recordingHandler{}
		bus.Subscribe(failing)
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newFinishedEvent()))
		assert.Equal(t, 1, healthy.count())
		assert.Equal(t, 2, logs.FilterMessage("handler failed to process event").Len())
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	typed := &recordingHandler{eventTypes: []string{production.EventTypeOrderFinished}}
	all := &recordingHandler{}
	bus.Subscribe(typed)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(ctx, newFinishedEvent()))
	bus.Unsubscribe(typed)
	bus.Unsubscribe(all)
	require.NoError(t, bus.Publish(ctx, newFinishedEvent()))

	assert.Equal(t, 1, typed.count())
	assert.Equal(t, 1, all.count())
	assert.Empty(t, bus.registry.handlers)
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	ctx := context.Background()
	bus := NewInMemoryEventBus(zap.NewNop())

	require.NoError(t, bus.Start(ctx))
	assert.True(t, bus.Running())
	require.NoError(t, bus.Stop(ctx))
	assert.False(t, bus.Running())
}

func TestInMemoryEventBus_AsEventBus(t *testing.T) {
	ctx := context.Background()
	var bus shared.EventBus = NewInMemoryEventBus(zap.NewNop())

	handler := &recordingHandler{eventTypes: []string{production.EventTypeOrderFinished}}
	bus.Subscribe(handler)
	require.NoError(t, bus.Start(ctx))
	require.NoError(t, bus.Publish(ctx, newFinishedEvent()))
	require.NoError(t, bus.Stop(ctx))

	assert.Equal(t, 1, handler.count())
}
