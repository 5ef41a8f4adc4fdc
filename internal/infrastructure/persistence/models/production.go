package models

import (
	"strconv"
	"time"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemDoc is the stored shape of an order item inside a JSON column
type OrderItemDoc struct {
	Color            string          `json:"color"`
	ColorHex         string          `json:"color_hex,omitempty"`
	Sizes            map[string]int  `json:"sizes"`
	ActualPieces     int             `json:"actual_pieces"`
	EstimatedPieces  int             `json:"estimated_pieces,omitempty"`
	RollsUsed        decimal.Decimal `json:"rolls_used"`
	PiecesPerSizeEst int             `json:"pieces_per_size_est,omitempty"`
}

// OrderSplitDoc is the stored shape of a split inside the splits column
type OrderSplitDoc struct {
	ID             uuid.UUID      `json:"id"`
	SeamstressID   uuid.UUID      `json:"seamstress_id"`
	SeamstressName string         `json:"seamstress_name"`
	Status         string         `json:"status"`
	Items          []OrderItemDoc `json:"items"`
	CreatedAt      time.Time      `json:"created_at"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`
}

// ProductionOrderModel is the persistence model for production orders.
// Quantities live in three JSON document columns.
type ProductionOrderModel struct {
	AggregateModel
	OrderNumber        string          `gorm:"size:50;not null;uniqueIndex"`
	Sequence           int64           `gorm:"not null;default:0;index"`
	ProductID          *uuid.UUID      `gorm:"type:uuid;index"`
	ReferenceCode      string          `gorm:"size:100;not null"`
	Description        string          `gorm:"size:500"`
	Fabric             string          `gorm:"size:200"`
	GridType           string          `gorm:"size:20;not null;default:'STANDARD'"`
	Status             string          `gorm:"size:20;not null;default:'PLANNED';index"`
	Items              []OrderItemDoc  `gorm:"serializer:json;not null"`
	ActiveCuttingItems []OrderItemDoc  `gorm:"serializer:json;not null"`
	Splits             []OrderSplitDoc `gorm:"serializer:json;not null"`
	Notes              string          `gorm:"type:text"`
	SearchText         string          `gorm:"type:text"`
	FinishedAt         *time.Time
}

// TableName returns the table name for GORM
func (ProductionOrderModel) TableName() string {
	return "production_orders"
}

// ToDomain converts the persistence model to a domain ProductionOrder
func (m *ProductionOrderModel) ToDomain() *production.ProductionOrder {
	splits := make([]production.OrderSplit, 0, len(m.Splits))
	for _, s := range m.Splits {
		splits = append(splits, production.OrderSplit{
			ID:             s.ID,
			SeamstressID:   s.SeamstressID,
			SeamstressName: s.SeamstressName,
			Status:         production.SplitStatus(s.Status),
			Items:          itemsToDomain(s.Items),
			CreatedAt:      s.CreatedAt,
			FinishedAt:     s.FinishedAt,
		})
	}

	return &production.ProductionOrder{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		OrderNumber:        m.OrderNumber,
		ProductID:          m.ProductID,
		ReferenceCode:      m.ReferenceCode,
		Description:        m.Description,
		Fabric:             m.Fabric,
		GridType:           production.GridType(m.GridType),
		Status:             production.OrderStatus(m.Status),
		Items:              itemsToDomain(m.Items),
		ActiveCuttingItems: itemsToDomain(m.ActiveCuttingItems),
		Splits:             splits,
		Notes:              m.Notes,
		FinishedAt:         m.FinishedAt,
	}
}

// FromDomain populates the persistence model from a domain ProductionOrder
func (m *ProductionOrderModel) FromDomain(o *production.ProductionOrder, searchText string) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.Sequence, _ = strconv.ParseInt(o.OrderNumber, 10, 64)
	m.ProductID = o.ProductID
	m.ReferenceCode = o.ReferenceCode
	m.Description = o.Description
	m.Fabric = o.Fabric
	m.GridType = string(o.GridType)
	m.Status = string(o.Status)
	m.Items = itemsFromDomain(o.Items)
	m.ActiveCuttingItems = itemsFromDomain(o.ActiveCuttingItems)
	m.Notes = o.Notes
	m.SearchText = searchText
	m.FinishedAt = o.FinishedAt

	m.Splits = make([]OrderSplitDoc, 0, len(o.Splits))
	for _, s := range o.Splits {
		m.Splits = append(m.Splits, OrderSplitDoc{
			ID:             s.ID,
			SeamstressID:   s.SeamstressID,
			SeamstressName: s.SeamstressName,
			Status:         string(s.Status),
			Items:          itemsFromDomain(s.Items),
			CreatedAt:      s.CreatedAt,
			FinishedAt:     s.FinishedAt,
		})
	}
}

// ProductionOrderModelFromDomain creates a persistence model from a domain ProductionOrder
func ProductionOrderModelFromDomain(o *production.ProductionOrder, searchText string) *ProductionOrderModel {
	m := &ProductionOrderModel{}
	m.FromDomain(o, searchText)
	return m
}

func itemsToDomain(docs []OrderItemDoc) []production.OrderItem {
	items := make([]production.OrderItem, 0, len(docs))
	for _, d := range docs {
		sizes := make(production.SizeGrid, len(d.Sizes))
		for k, v := range d.Sizes {
			sizes[k] = v
		}
		item := production.OrderItem{
			Color:            d.Color,
			ColorHex:         d.ColorHex,
			Sizes:            sizes,
			EstimatedPieces:  d.EstimatedPieces,
			RollsUsed:        d.RollsUsed,
			PiecesPerSizeEst: d.PiecesPerSizeEst,
		}
		item.Normalize()
		items = append(items, item)
	}
	return items
}

func itemsFromDomain(items []production.OrderItem) []OrderItemDoc {
	docs := make([]OrderItemDoc, 0, len(items))
	for _, i := range items {
		docs = append(docs, OrderItemDoc{
			Color:            i.Color,
			ColorHex:         i.ColorHex,
			Sizes:            map[string]int(i.Sizes.Clone()),
			ActualPieces:     i.Sizes.Total(),
			EstimatedPieces:  i.EstimatedPieces,
			RollsUsed:        i.RollsUsed,
			PiecesPerSizeEst: i.PiecesPerSizeEst,
		})
	}
	return docs
}
