package production

import (
	"context"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for production order persistence
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionOrder, error)

	// FindByOrderNumber finds an order by its short number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*ProductionOrder, error)

	// FindAll lists orders. Filters["status"] restricts by OrderStatus and
	// Search matches reference code or order number, case-insensitively.
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionOrder, error)

	// Count counts orders matching the same filter as FindAll
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns how many orders are in each status
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)

	// Save inserts a new order
	Save(ctx context.Context, order *ProductionOrder) error

	// SaveWithLock updates an existing order if its stored version is
	// order.Version-1, failing with a concurrency conflict otherwise
	SaveWithLock(ctx context.Context, order *ProductionOrder) error

	// Delete removes an order
	Delete(ctx context.Context, id uuid.UUID) error

	// GenerateOrderNumber returns the next short order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
