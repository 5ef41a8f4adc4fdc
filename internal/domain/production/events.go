package production

import (
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProductionOrder = "ProductionOrder"

// Event type constants
const (
	EventTypeOrderCreated      = "ProductionOrderCreated"
	EventTypeOrderCutConfirmed = "ProductionOrderCutConfirmed"
	EventTypeOrderDistributed  = "ProductionOrderDistributed"
	EventTypeSplitFinished     = "ProductionOrderSplitFinished"
	EventTypeOrderFinished     = "ProductionOrderFinished"
)

// OrderCreatedEvent is raised when an order is planned
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	ReferenceCode string    `json:"reference_code"`
	PlannedPieces int       `json:"planned_pieces"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *ProductionOrder) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeProductionOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ReferenceCode:   order.ReferenceCode,
		PlannedPieces:   TotalPieces(order.Items),
	}
}

// OrderCutConfirmedEvent is raised when cutting quantities are confirmed
type OrderCutConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CutPieces   int       `json:"cut_pieces"`
}

// NewOrderCutConfirmedEvent creates a new OrderCutConfirmedEvent
func NewOrderCutConfirmedEvent(order *ProductionOrder) *OrderCutConfirmedEvent {
	return &OrderCutConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCutConfirmed, AggregateTypeProductionOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		CutPieces:       TotalPieces(order.Items),
	}
}

// OrderDistributedEvent is raised for every split handed to a seamstress
type OrderDistributedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	SplitID         uuid.UUID `json:"split_id"`
	SeamstressID    uuid.UUID `json:"seamstress_id"`
	SeamstressName  string    `json:"seamstress_name"`
	Pieces          int       `json:"pieces"`
	RemainingPieces int       `json:"remaining_pieces"`
}

// NewOrderDistributedEvent creates a new OrderDistributedEvent
func NewOrderDistributedEvent(order *ProductionOrder, split *OrderSplit) *OrderDistributedEvent {
	return &OrderDistributedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDistributed, AggregateTypeProductionOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SplitID:         split.ID,
		SeamstressID:    split.SeamstressID,
		SeamstressName:  split.SeamstressName,
		Pieces:          split.Pieces(),
		RemainingPieces: TotalPieces(order.ActiveCuttingItems),
	}
}

// SplitFinishedEvent is raised when a seamstress returns a split
type SplitFinishedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	SplitID      uuid.UUID `json:"split_id"`
	SeamstressID uuid.UUID `json:"seamstress_id"`
	Pieces       int       `json:"pieces"`
}

// NewSplitFinishedEvent creates a new SplitFinishedEvent
func NewSplitFinishedEvent(order *ProductionOrder, split *OrderSplit) *SplitFinishedEvent {
	return &SplitFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSplitFinished, AggregateTypeProductionOrder, order.ID),
		OrderID:         order.ID,
		SplitID:         split.ID,
		SeamstressID:    split.SeamstressID,
		Pieces:          split.Pieces(),
	}
}

// OrderFinishedEvent is raised when the order reaches FINISHED
type OrderFinishedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	FinishedPieces int       `json:"finished_pieces"`
	ScrapPieces    int       `json:"scrap_pieces"`
}

// NewOrderFinishedEvent creates a new OrderFinishedEvent
func NewOrderFinishedEvent(order *ProductionOrder) *OrderFinishedEvent {
	return &OrderFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderFinished, AggregateTypeProductionOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		FinishedPieces:  order.FinishedPieces(),
		ScrapPieces:     order.RemainingPieces(),
	}
}
