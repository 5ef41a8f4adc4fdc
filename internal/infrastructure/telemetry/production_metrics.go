package telemetry

import (
	"context"
	"errors"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter is nil")

// ProductionMetrics counts workshop activity from production events
type ProductionMetrics struct {
	events            *Counter
	ordersCreated     *Counter
	ordersFinished    *Counter
	piecesCut         *Counter
	piecesDistributed *Counter
	piecesFinished    *Counter
	piecesScrapped    *Counter
	logger            *zap.Logger
}

// NewProductionMetrics registers the production instruments on meter
func NewProductionMetrics(meter metric.Meter, logger *zap.Logger) (*ProductionMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pm := &ProductionMetrics{logger: logger}
	instruments := []struct {
		target      **Counter
		name        string
		description string
		unit        string
	}{
		{&pm.events, "atelier_production_events_total", "Production events handled", "{events}"},
		{&pm.ordersCreated, "atelier_orders_created_total", "Production orders planned", "{orders}"},
		{&pm.ordersFinished, "atelier_orders_finished_total", "Production orders closed", "{orders}"},
		{&pm.piecesCut, "atelier_pieces_cut_total", "Pieces confirmed at cutting", "{pieces}"},
		{&pm.piecesDistributed, "atelier_pieces_distributed_total", "Pieces handed to seamstresses", "{pieces}"},
		{&pm.piecesFinished, "atelier_pieces_finished_total", "Pieces returned by seamstresses", "{pieces}"},
		{&pm.piecesScrapped, "atelier_pieces_scrapped_total", "Cut pieces never distributed when an order closed", "{pieces}"},
	}
	for _, inst := range instruments {
		c, err := NewCounter(meter, inst.name, inst.description, inst.unit)
		if err != nil {
			return nil, err
		}
		*inst.target = c
	}
	return pm, nil
}

// EventTypes returns the event types this handler is interested in
func (pm *ProductionMetrics) EventTypes() []string {
	return []string{
		production.EventTypeOrderCreated,
		production.EventTypeOrderCutConfirmed,
		production.EventTypeOrderDistributed,
		production.EventTypeSplitFinished,
		production.EventTypeOrderFinished,
	}
}

// Handle records the event
func (pm *ProductionMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	pm.events.Inc(ctx, AttrEventType.String(event.EventType()))

	switch e := event.(type) {
	case *production.OrderCreatedEvent:
		pm.ordersCreated.Inc(ctx)
	case *production.OrderCutConfirmedEvent:
		pm.piecesCut.Add(ctx, int64(e.CutPieces))
	case *production.OrderDistributedEvent:
		pm.piecesDistributed.Add(ctx, int64(e.Pieces))
	case *production.SplitFinishedEvent:
		pm.piecesFinished.Add(ctx, int64(e.Pieces))
	case *production.OrderFinishedEvent:
		pm.ordersFinished.Inc(ctx)
		pm.piecesScrapped.Add(ctx, int64(e.ScrapPieces))
	default:
		pm.logger.Debug("unhandled production event", zap.String("event_type", event.EventType()))
	}
	return nil
}

var _ shared.EventHandler = (*ProductionMetrics)(nil)
