package production

import (
	"context"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrOrderBusy is returned when another mutation holds the order for longer
// than the lock wait allows
var ErrOrderBusy = shared.NewDomainError("ORDER_BUSY", "Order is being changed by another request, try again")

// OrderLocker serializes mutations of a single order. Lock returns a release
// function that is safe to call more than once.
type OrderLocker interface {
	Lock(ctx context.Context, orderID uuid.UUID) (unlock func(), err error)
}
