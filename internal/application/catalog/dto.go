package catalog

import (
	"time"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ColorSwatchInput is a named color with its #RRGGBB value
type ColorSwatchInput struct {
	Name string `json:"name" binding:"required,max=100"`
	Hex  string `json:"hex" binding:"omitempty,hexcolor,len=7"`
}

// ProductRequest creates or replaces a product reference
type ProductRequest struct {
	Code                   string             `json:"code" binding:"required,min=1,max=50"`
	Description            string             `json:"description" binding:"max=500"`
	DefaultFabric          string             `json:"default_fabric" binding:"max=200"`
	DefaultColors          []ColorSwatchInput `json:"default_colors" binding:"omitempty,dive"`
	DefaultGrid            string             `json:"default_grid" binding:"omitempty,oneof=STANDARD PLUS CUSTOM standard plus custom"`
	EstimatedPiecesPerRoll int                `json:"estimated_pieces_per_roll" binding:"min=0"`
}

func (r ProductRequest) details() catalog.ProductDetails {
	colors := make([]catalog.ColorSwatch, len(r.DefaultColors))
	for i, c := range r.DefaultColors {
		colors[i] = catalog.ColorSwatch{Name: c.Name, Hex: c.Hex}
	}
	return catalog.ProductDetails{
		Description:            r.Description,
		DefaultFabric:          r.DefaultFabric,
		DefaultColors:          colors,
		DefaultGrid:            r.DefaultGrid,
		EstimatedPiecesPerRoll: r.EstimatedPiecesPerRoll,
	}
}

// ColorSwatchResponse is a color in API responses
type ColorSwatchResponse struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                     uuid.UUID             `json:"id"`
	Code                   string                `json:"code"`
	Description            string                `json:"description"`
	DefaultFabric          string                `json:"default_fabric"`
	DefaultColors          []ColorSwatchResponse `json:"default_colors"`
	DefaultGrid            string                `json:"default_grid"`
	EstimatedPiecesPerRoll int                   `json:"estimated_pieces_per_roll"`
	CreatedAt              time.Time             `json:"created_at"`
	UpdatedAt              time.Time             `json:"updated_at"`
	Version                int                   `json:"version"`
}

// ListFilter represents filter options shared by the catalog lists
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	colors := make([]ColorSwatchResponse, len(p.DefaultColors))
	for i, c := range p.DefaultColors {
		colors[i] = ColorSwatchResponse{Name: c.Name, Hex: c.Hex}
	}
	return ProductResponse{
		ID:                     p.ID,
		Code:                   p.Code,
		Description:            p.Description,
		DefaultFabric:          p.DefaultFabric,
		DefaultColors:          colors,
		DefaultGrid:            p.DefaultGrid,
		EstimatedPiecesPerRoll: p.EstimatedPiecesPerRoll,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
		Version:                p.Version,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// FabricRequest creates or replaces a fabric
type FabricRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Color      string          `json:"color" binding:"max=100"`
	ColorHex   string          `json:"color_hex" binding:"omitempty,hexcolor,len=7"`
	StockRolls decimal.Decimal `json:"stock_rolls"`
	Notes      string          `json:"notes" binding:"max=2000"`
}

// AdjustStockRequest adds (or removes, when negative) rolls
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// FabricResponse represents a fabric in API responses
type FabricResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	ColorHex   string          `json:"color_hex"`
	StockRolls decimal.Decimal `json:"stock_rolls"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToFabricResponse converts a domain Fabric to FabricResponse
func ToFabricResponse(f *catalog.Fabric) FabricResponse {
	return FabricResponse{
		ID:         f.ID,
		Name:       f.Name,
		Color:      f.Color,
		ColorHex:   f.ColorHex,
		StockRolls: f.StockRolls,
		Notes:      f.Notes,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
		Version:    f.Version,
	}
}

// ToFabricResponses converts a slice of fabrics
func ToFabricResponses(fabrics []catalog.Fabric) []FabricResponse {
	out := make([]FabricResponse, len(fabrics))
	for i := range fabrics {
		out[i] = ToFabricResponse(&fabrics[i])
	}
	return out
}
