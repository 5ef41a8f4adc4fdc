package catalog

import (
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeProduct = "Product"
	AggregateTypeFabric  = "Fabric"
)

const (
	EventTypeProductCreated     = "ProductCreated"
	EventTypeFabricStockChanged = "FabricStockChanged"
)

// ProductCreatedEvent is published when a new product reference is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Code:            p.Code,
	}
}

// FabricStockChangedEvent is published whenever the roll count moves
type FabricStockChangedEvent struct {
	shared.BaseDomainEvent
	FabricID uuid.UUID       `json:"fabric_id"`
	Name     string          `json:"name"`
	Previous decimal.Decimal `json:"previous"`
	Current  decimal.Decimal `json:"current"`
}

// NewFabricStockChangedEvent creates a new FabricStockChangedEvent
func NewFabricStockChangedEvent(f *Fabric, previous decimal.Decimal) *FabricStockChangedEvent {
	return &FabricStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFabricStockChanged, AggregateTypeFabric, f.ID),
		FabricID:        f.ID,
		Name:            f.Name,
		Previous:        previous,
		Current:         f.StockRolls,
	}
}
