package workforce

import (
	"context"
	"fmt"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeamstressService handles seamstress use cases
type SeamstressService struct {
	repo   workforce.SeamstressRepository
	logger *zap.Logger
}

// NewSeamstressService creates a new SeamstressService
func NewSeamstressService(repo workforce.SeamstressRepository, logger *zap.Logger) *SeamstressService {
	return &SeamstressService{repo: repo, logger: logger}
}

// Create registers a seamstress
func (s *SeamstressService) Create(ctx context.Context, req SeamstressRequest) (*SeamstressResponse, error) {
	seamstress, err := workforce.NewSeamstress(req.profile())
	if err != nil {
		return nil, err
	}
	if req.Active != nil && !*req.Active {
		seamstress.Deactivate()
	}
	if err := s.repo.Save(ctx, seamstress); err != nil {
		return nil, fmt.Errorf("failed to save seamstress: %w", err)
	}

	s.logger.Info("seamstress registered",
		zap.String("seamstress_id", seamstress.ID.String()),
		zap.String("name", seamstress.Name))

	response := ToSeamstressResponse(seamstress)
	return &response, nil
}

// GetByID retrieves a seamstress by ID
func (s *SeamstressService) GetByID(ctx context.Context, id uuid.UUID) (*SeamstressResponse, error) {
	seamstress, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSeamstressResponse(seamstress)
	return &response, nil
}

// List retrieves seamstresses with filtering and pagination
func (s *SeamstressService) List(ctx context.Context, filter SeamstressListFilter) ([]SeamstressResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	list, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list seamstresses: %w", err)
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count seamstresses: %w", err)
	}

	out := make([]SeamstressResponse, len(list))
	for i := range list {
		out[i] = ToSeamstressResponse(&list[i])
	}
	return out, total, nil
}

// Update replaces the profile and, when given, the active flag. Deactivating
// a seamstress keeps her existing splits; she only stops receiving new ones.
func (s *SeamstressService) Update(ctx context.Context, id uuid.UUID, req SeamstressRequest) (*SeamstressResponse, error) {
	seamstress, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := seamstress.Update(req.profile()); err != nil {
		return nil, err
	}
	if req.Active != nil {
		if *req.Active {
			seamstress.Activate()
		} else {
			seamstress.Deactivate()
		}
	}
	if err := s.repo.Save(ctx, seamstress); err != nil {
		return nil, fmt.Errorf("failed to save seamstress: %w", err)
	}

	response := ToSeamstressResponse(seamstress)
	return &response, nil
}

// Delete removes a seamstress. Splits keep the name they were created with.
func (s *SeamstressService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
