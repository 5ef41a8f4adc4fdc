package workforce

import (
	"context"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SeamstressRepository defines the interface for seamstress persistence
type SeamstressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Seamstress, error)
	// FindAll lists seamstresses. Filters["active"] (bool) restricts by
	// activity and Search matches name or city.
	FindAll(ctx context.Context, filter shared.Filter) ([]Seamstress, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, s *Seamstress) error
	Delete(ctx context.Context, id uuid.UUID) error
}
