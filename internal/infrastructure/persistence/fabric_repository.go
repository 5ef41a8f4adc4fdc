package persistence

import (
	"context"
	"errors"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFabricRepository implements catalog.FabricRepository using GORM
type GormFabricRepository struct {
	db *gorm.DB
}

// NewGormFabricRepository creates a new GormFabricRepository
func NewGormFabricRepository(db *gorm.DB) *GormFabricRepository {
	return &GormFabricRepository{db: db}
}

// FindByID finds a fabric by its ID
func (r *GormFabricRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Fabric, error) {
	var model models.FabricModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all fabrics matching the filter
func (r *GormFabricRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Fabric, error) {
	var rows []models.FabricModel
	query := applyPage(applySearch(r.db.WithContext(ctx).Model(&models.FabricModel{}), filter.Search),
		filter, FabricSortFields, "name")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	fabrics := make([]catalog.Fabric, 0, len(rows))
	for i := range rows {
		fabrics = append(fabrics, *rows[i].ToDomain())
	}
	return fabrics, nil
}

// Count counts fabrics matching the filter
func (r *GormFabricRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := applySearch(r.db.WithContext(ctx).Model(&models.FabricModel{}), filter.Search).Count(&count).Error
	return count, err
}

// Save creates or updates a fabric
func (r *GormFabricRepository) Save(ctx context.Context, fabric *catalog.Fabric) error {
	model := models.FabricModelFromDomain(fabric, foldSearch(fabric.Name, fabric.Color))
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a fabric
func (r *GormFabricRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FabricModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.FabricRepository = (*GormFabricRepository)(nil)
