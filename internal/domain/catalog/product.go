package catalog

import (
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
)

// Product is a garment reference: the template new production orders are
// planned from.
type Product struct {
	shared.BaseAggregateRoot
	Code                   string
	Description            string
	DefaultFabric          string
	DefaultColors          []ColorSwatch
	DefaultGrid            string
	EstimatedPiecesPerRoll int
}

// ProductDetails carries the editable fields of a product
type ProductDetails struct {
	Description            string
	DefaultFabric          string
	DefaultColors          []ColorSwatch
	DefaultGrid            string
	EstimatedPiecesPerRoll int
}

// NewProduct creates a new product reference
func NewProduct(code string, details ProductDetails) (*Product, error) {
	code, err := validateProductCode(code)
	if err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
	}
	if err := product.apply(details); err != nil {
		return nil, err
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update replaces the editable fields
func (p *Product) Update(code string, details ProductDetails) error {
	code, err := validateProductCode(code)
	if err != nil {
		return err
	}
	if err := p.apply(details); err != nil {
		return err
	}
	p.Code = code
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

func (p *Product) apply(d ProductDetails) error {
	if d.EstimatedPiecesPerRoll < 0 {
		return shared.NewDomainError("INVALID_ESTIMATE", "Estimated pieces per roll cannot be negative")
	}
	colors, err := normalizeSwatches(d.DefaultColors)
	if err != nil {
		return err
	}
	p.Description = strings.TrimSpace(d.Description)
	p.DefaultFabric = strings.TrimSpace(d.DefaultFabric)
	p.DefaultColors = colors
	p.DefaultGrid = strings.ToUpper(strings.TrimSpace(d.DefaultGrid))
	p.EstimatedPiecesPerRoll = d.EstimatedPiecesPerRoll
	return nil
}

// ColorHex returns the hex registered for a color name, "" when unknown
func (p *Product) ColorHex(name string) string {
	for _, c := range p.DefaultColors {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c.Hex
		}
	}
	return ""
}

func validateProductCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return "", shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return code, nil
}
