package production

import (
	"context"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityLogHandler writes one structured log line per production event
type ActivityLogHandler struct {
	logger *zap.Logger
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(logger *zap.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{logger: logger.Named("activity")}
}

// EventTypes returns the event types this handler is interested in
func (h *ActivityLogHandler) EventTypes() []string {
	return []string{
		production.EventTypeOrderCreated,
		production.EventTypeOrderCutConfirmed,
		production.EventTypeOrderDistributed,
		production.EventTypeSplitFinished,
		production.EventTypeOrderFinished,
	}
}

// Handle logs the event
func (h *ActivityLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("order_id", event.AggregateID().String()),
	}

	switch e := event.(type) {
	case *production.OrderCreatedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("reference_code", e.ReferenceCode),
			zap.Int("planned_pieces", e.PlannedPieces))
	case *production.OrderCutConfirmedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.Int("cut_pieces", e.CutPieces))
	case *production.OrderDistributedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("seamstress", e.SeamstressName),
			zap.Int("pieces", e.Pieces),
			zap.Int("remaining_pieces", e.RemainingPieces))
	case *production.SplitFinishedEvent:
		fields = append(fields,
			zap.String("split_id", e.SplitID.String()),
			zap.Int("pieces", e.Pieces))
	case *production.OrderFinishedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.Int("finished_pieces", e.FinishedPieces),
			zap.Int("scrap_pieces", e.ScrapPieces))
	}

	h.logger.Info("production activity", fields...)
	return nil
}

var _ shared.EventHandler = (*ActivityLogHandler)(nil)
