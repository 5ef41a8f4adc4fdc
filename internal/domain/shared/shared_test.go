package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	t.Run("matches by code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("load order: %w", NewDomainError("NOT_FOUND", "Order 1001 not found"))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrConcurrencyConflict)
		assert.Equal(t, "NOT_FOUND", CodeOf(err))
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		assert.Empty(t, CodeOf(errors.New("connection refused")))
		assert.Empty(t, CodeOf(nil))
	})
}

type testEvent struct {
	BaseDomainEvent
}

func TestBaseAggregateRoot(t *testing.T) {
	agg := NewBaseAggregateRoot()
	assert.NotEqual(t, uuid.Nil, agg.GetID())
	assert.Equal(t, 1, agg.GetVersion())
	assert.Equal(t, agg.GetCreatedAt(), agg.GetUpdatedAt())

	agg.IncrementVersion()
	assert.Equal(t, 2, agg.GetVersion())

	evt := &testEvent{BaseDomainEvent: NewBaseDomainEvent("OrderCreated", "ProductionOrder", agg.ID)}
	agg.AddDomainEvent(evt)
	events := agg.GetDomainEvents()
	assert.Len(t, events, 1)
	assert.Equal(t, "OrderCreated", events[0].EventType())
	assert.Equal(t, agg.ID, events[0].AggregateID())

	agg.ClearDomainEvents()
	assert.Empty(t, agg.GetDomainEvents())
}

func TestFilterOffset(t *testing.T) {
	assert.Equal(t, 0, Filter{Page: 0, PageSize: 20}.Offset())
	assert.Equal(t, 0, Filter{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
}
