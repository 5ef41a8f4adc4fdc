package models

import (
	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ColorSwatchDoc is a product default color stored in JSON
type ColorSwatchDoc struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

// ProductModel is the persistence model for product references
type ProductModel struct {
	AggregateModel
	Code                   string           `gorm:"size:50;not null;uniqueIndex"`
	Description            string           `gorm:"size:500"`
	DefaultFabric          string           `gorm:"size:200"`
	DefaultColors          []ColorSwatchDoc `gorm:"serializer:json;not null"`
	DefaultGrid            string           `gorm:"size:20"`
	EstimatedPiecesPerRoll int              `gorm:"not null;default:0"`
	SearchText             string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	colors := make([]catalog.ColorSwatch, 0, len(m.DefaultColors))
	for _, c := range m.DefaultColors {
		colors = append(colors, catalog.ColorSwatch{Name: c.Name, Hex: c.Hex})
	}
	return &catalog.Product{
		BaseAggregateRoot:      m.ToDomainAggregateRoot(),
		Code:                   m.Code,
		Description:            m.Description,
		DefaultFabric:          m.DefaultFabric,
		DefaultColors:          colors,
		DefaultGrid:            m.DefaultGrid,
		EstimatedPiecesPerRoll: m.EstimatedPiecesPerRoll,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product, searchText string) *ProductModel {
	m := &ProductModel{
		Code:                   p.Code,
		Description:            p.Description,
		DefaultFabric:          p.DefaultFabric,
		DefaultColors:          make([]ColorSwatchDoc, 0, len(p.DefaultColors)),
		DefaultGrid:            p.DefaultGrid,
		EstimatedPiecesPerRoll: p.EstimatedPiecesPerRoll,
		SearchText:             searchText,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	for _, c := range p.DefaultColors {
		m.DefaultColors = append(m.DefaultColors, ColorSwatchDoc{Name: c.Name, Hex: c.Hex})
	}
	return m
}

// FabricModel is the persistence model for fabrics
type FabricModel struct {
	AggregateModel
	Name       string          `gorm:"size:200;not null"`
	Color      string          `gorm:"size:100"`
	ColorHex   string          `gorm:"size:7"`
	StockRolls decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notes      string          `gorm:"type:text"`
	SearchText string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FabricModel) TableName() string {
	return "fabrics"
}

// ToDomain converts the persistence model to a domain Fabric
func (m *FabricModel) ToDomain() *catalog.Fabric {
	return &catalog.Fabric{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Color:             m.Color,
		ColorHex:          m.ColorHex,
		StockRolls:        m.StockRolls,
		Notes:             m.Notes,
	}
}

// FabricModelFromDomain creates a persistence model from a domain Fabric
func FabricModelFromDomain(f *catalog.Fabric, searchText string) *FabricModel {
	m := &FabricModel{
		Name:       f.Name,
		Color:      f.Color,
		ColorHex:   f.ColorHex,
		StockRolls: f.StockRolls,
		Notes:      f.Notes,
		SearchText: searchText,
	}
	m.FromDomainAggregateRoot(f.BaseAggregateRoot)
	return m
}
