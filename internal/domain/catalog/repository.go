package catalog

import (
	"context"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	// FindAll lists products; Search matches code or description
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FabricRepository defines the interface for fabric persistence
type FabricRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Fabric, error)
	// FindAll lists fabrics; Search matches name or color
	FindAll(ctx context.Context, filter shared.Filter) ([]Fabric, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, fabric *Fabric) error
	Delete(ctx context.Context, id uuid.UUID) error
}
