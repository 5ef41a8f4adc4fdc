package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// firstOrderNumber is the number given to the first order ever created
const firstOrderNumber = 1001

// GormOrderRepository implements production.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func orderSearchText(o *production.ProductionOrder) string {
	return foldSearch(o.OrderNumber, o.ReferenceCode, o.Description, o.Fabric)
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	var model models.ProductionOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNumber finds an order by its short number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*production.ProductionOrder, error) {
	var model models.ProductionOrderModel
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]production.ProductionOrder, error) {
	var rows []models.ProductionOrderModel
	query := applyPage(r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductionOrderModel{}), filter),
		filter, OrderSortFields, "created_at")
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]production.ProductionOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductionOrderModel{}), filter).
		Count(&count).Error
	return count, err
}

// CountByStatus returns how many orders are in each status. Statuses without
// orders are reported as zero.
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[production.OrderStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.ProductionOrderModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[production.OrderStatus]int64, len(production.AllOrderStatuses))
	for _, s := range production.AllOrderStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[production.OrderStatus(row.Status)] = row.Total
	}
	return counts, nil
}

// Save inserts a new order
func (r *GormOrderRepository) Save(ctx context.Context, order *production.ProductionOrder) error {
	model := models.ProductionOrderModelFromDomain(order, orderSearchText(order))
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Order number %s is already taken", order.OrderNumber))
		}
		return err
	}
	return nil
}

// SaveWithLock updates an order only if the stored version is the one the
// aggregate was loaded with. The aggregate has already incremented Version.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *production.ProductionOrder) error {
	model := models.ProductionOrderModelFromDomain(order, orderSearchText(order))
	expected := order.Version - 1

	result := r.db.WithContext(ctx).Model(model).
		Where("version = ?", expected).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Order number %s is already taken", order.OrderNumber))
		}
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.ProductionOrderModel{}).
		Where("id = ?", order.ID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrencyConflict
}

// Delete removes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductionOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateOrderNumber returns one past the highest numeric order number.
// Two concurrent creates may get the same number; the unique index rejects
// the second insert.
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	var highest int64
	row := r.db.WithContext(ctx).Model(&models.ProductionOrderModel{}).
		Select("COALESCE(MAX(sequence), 0)").
		Row()
	if err := row.Scan(&highest); err != nil {
		return "", err
	}
	next := int64(firstOrderNumber)
	if highest >= next {
		next = highest + 1
	}
	return strconv.FormatInt(next, 10), nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySearch(query, filter.Search)
	for key, value := range filter.Filters {
		switch key {
		case "status":
			switch v := value.(type) {
			case production.OrderStatus:
				query = query.Where("status = ?", string(v))
			case []production.OrderStatus:
				statuses := make([]string, 0, len(v))
				for _, s := range v {
					statuses = append(statuses, string(s))
				}
				query = query.Where("status IN ?", statuses)
			case string:
				query = query.Where("status = ?", v)
			}
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}
	return query
}

var _ production.OrderRepository = (*GormOrderRepository)(nil)
