package production

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"go.uber.org/zap"
)

// Fixed texts returned instead of an error
const (
	InsightsNotConfigured = "Insights are not configured."
	InsightsFailed        = "Could not generate insights."
	InsightsEmpty         = "No report available."
)

// InsightsGenerator turns a prompt into a short text report
type InsightsGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// InsightsResponse carries the generated Markdown
type InsightsResponse struct {
	Report    string `json:"report"`
	Generated bool   `json:"generated"`
}

type insightsOrder struct {
	Ref    string `json:"ref"`
	Status string `json:"status"`
	Pieces int    `json:"pieces"`
}

type insightsSeamstress struct {
	Name string `json:"name"`
}

type insightsContext struct {
	Orders       []insightsOrder      `json:"orders"`
	Seamstresses []insightsSeamstress `json:"seamstresses"`
}

// InsightsService asks an external model for a production report
type InsightsService struct {
	orderRepo      production.OrderRepository
	seamstressRepo workforce.SeamstressRepository
	generator      InsightsGenerator
	maxOrders      int
	logger         *zap.Logger
}

// NewInsightsService creates the service. A nil generator means insights are
// disabled.
func NewInsightsService(
	orderRepo production.OrderRepository,
	seamstressRepo workforce.SeamstressRepository,
	generator InsightsGenerator,
	maxOrders int,
	logger *zap.Logger,
) *InsightsService {
	if maxOrders <= 0 {
		maxOrders = 200
	}
	return &InsightsService{
		orderRepo:      orderRepo,
		seamstressRepo: seamstressRepo,
		generator:      generator,
		maxOrders:      maxOrders,
		logger:         logger,
	}
}

// Generate never fails: problems are logged and replaced by a fixed text
func (s *InsightsService) Generate(ctx context.Context) *InsightsResponse {
	if s.generator == nil {
		return &InsightsResponse{Report: InsightsNotConfigured}
	}

	prompt, err := s.prompt(ctx)
	if err != nil {
		s.logger.Error("failed to build insights context", zap.Error(err))
		return &InsightsResponse{Report: InsightsFailed}
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("insights generation failed", zap.Error(err))
		return &InsightsResponse{Report: InsightsFailed}
	}
	if strings.TrimSpace(text) == "" {
		return &InsightsResponse{Report: InsightsEmpty}
	}
	return &InsightsResponse{Report: text, Generated: true}
}

func (s *InsightsService) prompt(ctx context.Context) (string, error) {
	orders, err := s.orderRepo.FindAll(ctx, shared.Filter{
		Page:     1,
		PageSize: s.maxOrders,
		OrderBy:  "created_at",
		OrderDir: "desc",
	})
	if err != nil {
		return "", err
	}
	seamstresses, err := s.seamstressRepo.FindAll(ctx, shared.Filter{Page: 1, OrderBy: "name", OrderDir: "asc"})
	if err != nil {
		return "", err
	}

	data := insightsContext{
		Orders:       make([]insightsOrder, len(orders)),
		Seamstresses: make([]insightsSeamstress, len(seamstresses)),
	}
	for i := range orders {
		data.Orders[i] = insightsOrder{
			Ref:    orders[i].ReferenceCode,
			Status: string(orders[i].Status),
			Pieces: production.TotalPieces(orders[i].Items),
		}
	}
	for i := range seamstresses {
		data.Seamstresses[i] = insightsSeamstress{Name: seamstresses[i].Name}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Analyze the production of this garment workshop: %s. "+
		"Write a short, professional report in Markdown.", raw), nil
}
