package production

import (
	"fmt"
	"strings"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItem is the quantity record of one color within an order, broken
// down by size. ActualPieces always equals Sizes.Total() for items produced
// by this package.
type OrderItem struct {
	Color            string
	ColorHex         string
	Sizes            SizeGrid
	ActualPieces     int
	EstimatedPieces  int
	RollsUsed        decimal.Decimal
	PiecesPerSizeEst int
}

// NewOrderItem creates a normalized item
func NewOrderItem(color, colorHex string, sizes SizeGrid) OrderItem {
	item := OrderItem{
		Color:     strings.TrimSpace(color),
		ColorHex:  colorHex,
		Sizes:     sizes.Clone(),
		RollsUsed: decimal.Zero,
	}
	item.Normalize()
	return item
}

// Normalize recomputes ActualPieces from the size counts
func (i *OrderItem) Normalize() {
	if i.Sizes == nil {
		i.Sizes = SizeGrid{}
	}
	i.ActualPieces = i.Sizes.Total()
}

// Clone returns a deep copy
func (i OrderItem) Clone() OrderItem {
	out := i
	out.Sizes = i.Sizes.Clone()
	return out
}

// Validate checks a single item
func (i OrderItem) Validate() error {
	if strings.TrimSpace(i.Color) == "" {
		return shared.NewDomainError("INVALID_COLOR", "Item color cannot be empty")
	}
	if err := i.Sizes.Validate(); err != nil {
		return err
	}
	if i.EstimatedPieces < 0 || i.PiecesPerSizeEst < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Estimates for %s cannot be negative", i.Color))
	}
	if i.RollsUsed.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Rolls used for %s cannot be negative", i.Color))
	}
	return nil
}

// colorKey is the identity used to match colors across items and requests
func colorKey(color string) string {
	return strings.ToLower(strings.TrimSpace(color))
}

// ValidateItems checks every item and rejects duplicate colors
func ValidateItems(items []OrderItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		key := colorKey(item.Color)
		if _, dup := seen[key]; dup {
			return shared.NewDomainError("DUPLICATE_COLOR", fmt.Sprintf("Color %s appears more than once", item.Color))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// CloneItems deep-copies and normalizes a list of items
func CloneItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	for idx, item := range items {
		out[idx] = item.Clone()
		out[idx].Normalize()
	}
	return out
}

// TotalPieces sums ActualPieces over items
func TotalPieces(items []OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.ActualPieces
	}
	return total
}

// findItem returns the index of the item with the given color, or -1
func findItem(items []OrderItem, color string) int {
	key := colorKey(color)
	for idx := range items {
		if colorKey(items[idx].Color) == key {
			return idx
		}
	}
	return -1
}
