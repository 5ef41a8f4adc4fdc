package production

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/atelier/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// orderNumberAttempts bounds retries when two creates race for a number
const orderNumberAttempts = 3

// OrderService handles production order use cases
type OrderService struct {
	orderRepo      production.OrderRepository
	productRepo    catalog.ProductRepository
	seamstressRepo workforce.SeamstressRepository
	locker         OrderLocker
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo production.OrderRepository,
	productRepo catalog.ProductRepository,
	seamstressRepo workforce.SeamstressRepository,
	locker OrderLocker,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		seamstressRepo: seamstressRepo,
		locker:         locker,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListResponse, int64, error) {
	domainFilter := s.domainFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return ToOrderListResponses(orders), total, nil
}

// ListAll returns every order matching the filter, ignoring pagination
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) ([]production.ProductionOrder, error) {
	domainFilter := s.domainFilter(filter)
	domainFilter.Page = 1
	domainFilter.PageSize = 0
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) domainFilter(filter OrderListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = production.OrderStatus(filter.Status)
	}
	if id, err := uuid.Parse(filter.ProductID); err == nil {
		domainFilter.Filters["product_id"] = id
	}
	return domainFilter
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Create plans a new order and assigns it the next order number
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", "create")
	defer span.End()

	items := itemsToDomain(req.Items)
	referenceCode := req.ReferenceCode
	description := req.Description
	fabric := req.Fabric
	gridType := production.GridType(req.GridType)

	var product *catalog.Product
	if req.ProductID != nil {
		p, err := s.productRepo.FindByID(ctx, *req.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
			}
			return nil, err
		}
		product = p
		if strings.TrimSpace(referenceCode) == "" {
			referenceCode = p.Code
		}
		if strings.TrimSpace(description) == "" {
			description = p.Description
		}
		if strings.TrimSpace(fabric) == "" {
			fabric = p.DefaultFabric
		}
		if gridType == "" && production.GridType(p.DefaultGrid).IsValid() {
			gridType = production.GridType(p.DefaultGrid)
		}
		for i := range items {
			if items[i].ColorHex == "" {
				items[i].ColorHex = p.ColorHex(items[i].Color)
			}
		}
	}

	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := s.orderRepo.GenerateOrderNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate order number: %w", err)
		}

		order, err := production.NewProductionOrder(number, referenceCode, description, fabric, gridType, items)
		if err != nil {
			return nil, err
		}
		order.Notes = req.Notes
		if product != nil {
			order.SetProduct(product.ID)
		}

		err = s.orderRepo.Save(ctx, order)
		if errors.Is(err, shared.ErrAlreadyExists) {
			s.logger.Warn("order number taken, retrying",
				zap.String("order_number", number),
				zap.Int("attempt", attempt+1))
			lastErr = err
			continue
		}
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to save order: %w", err)
		}
		telemetry.SetAttributes(span,
			telemetry.SpanAttrOrderID, order.ID.String(),
			telemetry.SpanAttrOrderNumber, order.OrderNumber)

		s.logger.Info("production order created",
			zap.String("order_id", order.ID.String()),
			zap.String("order_number", order.OrderNumber),
			zap.String("reference_code", order.ReferenceCode),
			zap.Int("planned_pieces", order.PlannedPieces()))

		s.publish(ctx, order)
		response := ToOrderResponse(order)
		return &response, nil
	}
	return nil, lastErr
}

// Update revises the descriptive fields and, while PLANNED, the plan
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.mutate(ctx, orderID, "update", func(o *production.ProductionOrder) error {
		details := o.Details()
		if req.ReferenceCode != nil {
			details.ReferenceCode = *req.ReferenceCode
		}
		if req.Description != nil {
			details.Description = *req.Description
		}
		if req.Fabric != nil {
			details.Fabric = *req.Fabric
		}
		if req.GridType != nil {
			details.GridType = production.GridType(*req.GridType)
		}
		if req.Notes != nil {
			details.Notes = *req.Notes
		}
		return o.Revise(details, itemsToDomain(req.Items))
	})
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order in any status
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, orderID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	s.logger.Info("production order deleted", zap.String("order_id", orderID.String()))
	return nil
}

// ConfirmCut records the cut quantities and moves the order to CUTTING
func (s *OrderService) ConfirmCut(ctx context.Context, orderID uuid.UUID, req ConfirmCutRequest) (*OrderResponse, error) {
	order, err := s.mutate(ctx, orderID, "confirm_cut", func(o *production.ProductionOrder) error {
		return o.ConfirmCut(itemsToDomain(req.Items))
	})
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Distribute hands cut pieces to an active seamstress
func (s *OrderService) Distribute(ctx context.Context, orderID uuid.UUID, req DistributeRequest) (*OrderResponse, error) {
	seamstress, err := s.seamstressRepo.FindByID(ctx, req.SeamstressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Seamstress not found")
		}
		return nil, err
	}
	if err := seamstress.CanReceiveWork(); err != nil {
		return nil, err
	}

	order, err := s.mutate(ctx, orderID, "distribute", func(o *production.ProductionOrder) error {
		_, err := o.Distribute(seamstress.ID, seamstress.Name, production.DistributionRequest(req.Items))
		return err
	})
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// FinishSplit marks a split as returned by its seamstress
func (s *OrderService) FinishSplit(ctx context.Context, orderID, splitID uuid.UUID) (*OrderResponse, error) {
	order, err := s.mutate(ctx, orderID, "finish_split", func(o *production.ProductionOrder) error {
		return o.FinishSplit(splitID)
	})
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Finish closes an order once every split is back
func (s *OrderService) Finish(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.mutate(ctx, orderID, "finish", func(o *production.ProductionOrder) error {
		return o.Finish()
	})
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// mutate runs apply on a freshly loaded order while holding the order lock
// and persists the result. The caller only sees the order after the save
// succeeded.
func (s *OrderService) mutate(ctx context.Context, orderID uuid.UUID, action string, apply func(*production.ProductionOrder) error) (order *production.ProductionOrder, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "production_order", action,
		telemetry.SpanAttrOrderID, orderID.String())
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	unlock, err := s.locker.Lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	order, err = s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	from := order.Status

	if err := apply(order); err != nil {
		s.logger.Warn("order change rejected",
			zap.String("order_id", orderID.String()),
			zap.String("action", action),
			zap.String("status", string(from)),
			zap.Error(err))
		return nil, err
	}
	if err := order.CheckConservation(); err != nil {
		s.logger.Error("order ledger mismatch",
			zap.String("order_id", orderID.String()),
			zap.String("action", action),
			zap.Error(err))
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	fields := []zap.Field{
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("action", action),
		zap.Int("version", order.Version),
	}
	if from != order.Status {
		fields = append(fields, zap.String("from", string(from)), zap.String("to", string(order.Status)))
	}
	s.logger.Info("production order changed", fields...)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, order.OrderNumber,
		telemetry.SpanAttrOrderStatus, string(order.Status))

	s.publish(ctx, order)
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, order *production.ProductionOrder) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
}
