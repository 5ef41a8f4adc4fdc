package persistence

import (
	"context"
	"errors"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSeamstressRepository implements workforce.SeamstressRepository using GORM
type GormSeamstressRepository struct {
	db *gorm.DB
}

// NewGormSeamstressRepository creates a new GormSeamstressRepository
func NewGormSeamstressRepository(db *gorm.DB) *GormSeamstressRepository {
	return &GormSeamstressRepository{db: db}
}

// FindByID finds a seamstress by ID
func (r *GormSeamstressRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Seamstress, error) {
	var model models.SeamstressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all seamstresses matching the filter
func (r *GormSeamstressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Seamstress, error) {
	var rows []models.SeamstressModel
	query := applyPage(r.applyFilter(r.db.WithContext(ctx).Model(&models.SeamstressModel{}), filter),
		filter, SeamstressSortFields, "name")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]workforce.Seamstress, 0, len(rows))
	for i := range rows {
		result = append(result, *rows[i].ToDomain())
	}
	return result, nil
}

// Count counts seamstresses matching the filter
func (r *GormSeamstressRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.SeamstressModel{}), filter).Count(&count).Error
	return count, err
}

// Save creates or updates a seamstress
func (r *GormSeamstressRepository) Save(ctx context.Context, s *workforce.Seamstress) error {
	model := models.SeamstressModelFromDomain(s, foldSearch(s.Name, s.City, s.Specialty))
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a seamstress. Splits keep the seamstress name they were
// created with.
func (r *GormSeamstressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SeamstressModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSeamstressRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search)
	if active, ok := filter.Filters["active"].(bool); ok {
		query = query.Where("active = ?", active)
	}
	return query
}

var _ workforce.SeamstressRepository = (*GormSeamstressRepository)(nil)
