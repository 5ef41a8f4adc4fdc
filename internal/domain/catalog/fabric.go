package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Fabric is a fabric in stock, counted in rolls
type Fabric struct {
	shared.BaseAggregateRoot
	Name       string
	Color      string
	ColorHex   string
	StockRolls decimal.Decimal
	Notes      string
}

// NewFabric creates a fabric entry
func NewFabric(name, color, colorHex string, stockRolls decimal.Decimal, notes string) (*Fabric, error) {
	f := &Fabric{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := f.apply(name, color, colorHex, stockRolls, notes); err != nil {
		return nil, err
	}
	f.AddDomainEvent(NewFabricStockChangedEvent(f, decimal.Zero))
	return f, nil
}

// Update replaces all editable fields
func (f *Fabric) Update(name, color, colorHex string, stockRolls decimal.Decimal, notes string) error {
	previous := f.StockRolls
	if err := f.apply(name, color, colorHex, stockRolls, notes); err != nil {
		return err
	}
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	if !previous.Equal(f.StockRolls) {
		f.AddDomainEvent(NewFabricStockChangedEvent(f, previous))
	}
	return nil
}

// AdjustStock adds delta rolls, which may be negative, without going below zero
func (f *Fabric) AdjustStock(delta decimal.Decimal) error {
	next := f.StockRolls.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Fabric %s has %s rolls, cannot remove %s", f.Name, f.StockRolls, delta.Neg()))
	}
	previous := f.StockRolls
	f.StockRolls = next
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	f.AddDomainEvent(NewFabricStockChangedEvent(f, previous))
	return nil
}

func (f *Fabric) apply(name, color, colorHex string, stockRolls decimal.Decimal, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Fabric name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Fabric name cannot exceed 200 characters")
	}
	if stockRolls.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK", "Stock rolls cannot be negative")
	}
	hex, err := NormalizeHex(colorHex)
	if err != nil {
		return err
	}
	f.Name = name
	f.Color = strings.TrimSpace(color)
	f.ColorHex = hex
	f.StockRolls = stockRolls.Round(2)
	f.Notes = notes
	return nil
}
