package catalog

import (
	"context"
	"fmt"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FabricService handles fabric stock use cases
type FabricService struct {
	fabricRepo     catalog.FabricRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewFabricService creates a new FabricService
func NewFabricService(fabricRepo catalog.FabricRepository, logger *zap.Logger) *FabricService {
	return &FabricService{
		fabricRepo: fabricRepo,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *FabricService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a fabric
func (s *FabricService) Create(ctx context.Context, req FabricRequest) (*FabricResponse, error) {
	fabric, err := catalog.NewFabric(req.Name, req.Color, req.ColorHex, req.StockRolls, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, fmt.Errorf("failed to save fabric: %w", err)
	}

	s.logger.Info("fabric created",
		zap.String("fabric_id", fabric.ID.String()),
		zap.String("name", fabric.Name),
		zap.String("stock_rolls", fabric.StockRolls.String()))

	publishEvents(ctx, s.eventPublisher, fabric, s.logger)

	response := ToFabricResponse(fabric)
	return &response, nil
}

// GetByID retrieves a fabric by ID
func (s *FabricService) GetByID(ctx context.Context, fabricID uuid.UUID) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	response := ToFabricResponse(fabric)
	return &response, nil
}

// List retrieves fabrics with search and pagination
func (s *FabricService) List(ctx context.Context, filter ListFilter) ([]FabricResponse, int64, error) {
	domainFilter := toDomainFilter(filter, "name")

	fabrics, err := s.fabricRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fabrics: %w", err)
	}
	total, err := s.fabricRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count fabrics: %w", err)
	}
	return ToFabricResponses(fabrics), total, nil
}

// Update replaces a fabric's fields
func (s *FabricService) Update(ctx context.Context, fabricID uuid.UUID, req FabricRequest) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if err := fabric.Update(req.Name, req.Color, req.ColorHex, req.StockRolls, req.Notes); err != nil {
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, fmt.Errorf("failed to save fabric: %w", err)
	}
	publishEvents(ctx, s.eventPublisher, fabric, s.logger)

	response := ToFabricResponse(fabric)
	return &response, nil
}

// AdjustStock adds or removes rolls
func (s *FabricService) AdjustStock(ctx context.Context, fabricID uuid.UUID, req AdjustStockRequest) (*FabricResponse, error) {
	fabric, err := s.fabricRepo.FindByID(ctx, fabricID)
	if err != nil {
		return nil, err
	}
	if err := fabric.AdjustStock(req.Delta); err != nil {
		s.logger.Warn("fabric stock adjustment rejected",
			zap.String("fabric_id", fabricID.String()),
			zap.String("delta", req.Delta.String()),
			zap.Error(err))
		return nil, err
	}
	if err := s.fabricRepo.Save(ctx, fabric); err != nil {
		return nil, fmt.Errorf("failed to save fabric: %w", err)
	}
	publishEvents(ctx, s.eventPublisher, fabric, s.logger)

	response := ToFabricResponse(fabric)
	return &response, nil
}

// Delete removes a fabric
func (s *FabricService) Delete(ctx context.Context, fabricID uuid.UUID) error {
	return s.fabricRepo.Delete(ctx, fabricID)
}
