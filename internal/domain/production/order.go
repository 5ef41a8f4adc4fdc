package production

import (
	"fmt"
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductionOrder is one production run of a product, tracked from planning
// through cutting and sewing to finishing.
//
// Items is the planned baseline, replaced by the confirmed quantities when the
// cut is confirmed. ActiveCuttingItems holds the cut pieces not yet handed to a
// seamstress. Splits is append-only.
type ProductionOrder struct {
	shared.BaseAggregateRoot
	OrderNumber        string
	ProductID          *uuid.UUID
	ReferenceCode      string
	Description        string
	Fabric             string
	GridType           GridType
	Status             OrderStatus
	Items              []OrderItem
	ActiveCuttingItems []OrderItem
	Splits             []OrderSplit
	Notes              string
	FinishedAt         *time.Time
}

// NewProductionOrder creates an order in PLANNED with its planned items
func NewProductionOrder(orderNumber, referenceCode, description, fabric string, gridType GridType, items []OrderItem) (*ProductionOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	referenceCode = strings.TrimSpace(referenceCode)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if referenceCode == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference code cannot be empty")
	}
	if gridType == "" {
		gridType = GridTypeStandard
	}
	if !gridType.IsValid() {
		return nil, shared.NewDomainError("INVALID_GRID_TYPE", fmt.Sprintf("Unknown grid type %s", gridType))
	}
	if err := validatePlan(items); err != nil {
		return nil, err
	}

	order := &ProductionOrder{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		OrderNumber:        orderNumber,
		ReferenceCode:      referenceCode,
		Description:        strings.TrimSpace(description),
		Fabric:             strings.TrimSpace(fabric),
		GridType:           gridType,
		Status:             OrderStatusPlanned,
		Items:              CloneItems(items),
		ActiveCuttingItems: make([]OrderItem, 0),
		Splits:             make([]OrderSplit, 0),
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

func validatePlan(items []OrderItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Order needs at least one color")
	}
	return ValidateItems(items)
}

// SetProduct links the order to the product reference it was planned from
func (o *ProductionOrder) SetProduct(productID uuid.UUID) {
	o.ProductID = &productID
}

// OrderDetails are the descriptive fields of an order
type OrderDetails struct {
	ReferenceCode string
	Description   string
	Fabric        string
	GridType      GridType
	Notes         string
}

// Details returns the current descriptive fields
func (o *ProductionOrder) Details() OrderDetails {
	return OrderDetails{
		ReferenceCode: o.ReferenceCode,
		Description:   o.Description,
		Fabric:        o.Fabric,
		GridType:      o.GridType,
		Notes:         o.Notes,
	}
}

// UpdateDetails changes descriptive fields. Finished orders are read-only.
func (o *ProductionOrder) UpdateDetails(details OrderDetails) error {
	return o.Revise(details, nil)
}

// UpdatePlan replaces the planned items. Only allowed before cutting.
func (o *ProductionOrder) UpdatePlan(items []OrderItem) error {
	return o.Revise(o.Details(), items)
}

// Revise applies new details and, when items is non-nil, a new plan as one
// change. Everything is validated before anything is applied.
func (o *ProductionOrder) Revise(details OrderDetails, items []OrderItem) error {
	if o.Status == OrderStatusFinished {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a finished order")
	}
	details.ReferenceCode = strings.TrimSpace(details.ReferenceCode)
	if details.ReferenceCode == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference code cannot be empty")
	}
	if details.GridType == "" {
		details.GridType = o.GridType
	}
	if !details.GridType.IsValid() {
		return shared.NewDomainError("INVALID_GRID_TYPE", fmt.Sprintf("Unknown grid type %s", details.GridType))
	}
	if items != nil {
		if o.Status != OrderStatusPlanned {
			return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change the plan of an order in %s status", o.Status))
		}
		if err := validatePlan(items); err != nil {
			return err
		}
		o.Items = CloneItems(items)
	}

	o.ReferenceCode = details.ReferenceCode
	o.Description = strings.TrimSpace(details.Description)
	o.Fabric = strings.TrimSpace(details.Fabric)
	o.GridType = details.GridType
	o.Notes = details.Notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ConfirmCut records the quantities actually cut and moves the order to
// CUTTING. Planning estimates missing from cut are carried over from the plan
// by color. Items becomes the confirmed baseline; ActiveCuttingItems starts as
// a copy of it without colors that yielded no pieces.
func (o *ProductionOrder) ConfirmCut(cut []OrderItem) error {
	if !o.Status.CanTransitionTo(OrderStatusCutting) {
		return transitionError(o.Status, OrderStatusCutting)
	}
	if err := validatePlan(cut); err != nil {
		return err
	}

	confirmed := CloneItems(cut)
	for idx := range confirmed {
		item := &confirmed[idx]
		planned := findItem(o.Items, item.Color)
		if planned < 0 {
			continue
		}
		p := o.Items[planned]
		if item.ColorHex == "" {
			item.ColorHex = p.ColorHex
		}
		if item.EstimatedPieces == 0 {
			item.EstimatedPieces = p.EstimatedPieces
		}
		if item.PiecesPerSizeEst == 0 {
			item.PiecesPerSizeEst = p.PiecesPerSizeEst
		}
		if item.RollsUsed.IsZero() {
			item.RollsUsed = p.RollsUsed
		}
	}
	if TotalPieces(confirmed) == 0 {
		return shared.NewDomainError("EMPTY_CUT", "A confirmed cut must contain at least one piece")
	}

	active := make([]OrderItem, 0, len(confirmed))
	for _, item := range confirmed {
		if item.ActualPieces > 0 {
			active = append(active, item.Clone())
		}
	}

	o.Items = confirmed
	o.ActiveCuttingItems = active
	o.Status = OrderStatusCutting
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderCutConfirmedEvent(o))

	return nil
}

// Distribute hands part of the undistributed cut pieces to a seamstress and
// appends the resulting split. The first distribution moves the order from
// CUTTING to SEWING. On error the order is left untouched.
func (o *ProductionOrder) Distribute(seamstressID uuid.UUID, seamstressName string, request DistributionRequest) (*OrderSplit, error) {
	if !o.Status.CanDistribute() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot distribute an order in %s status", o.Status))
	}
	if seamstressID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SEAMSTRESS", "Seamstress ID cannot be empty")
	}

	alloc, err := Allocate(o.ActiveCuttingItems, request)
	if err != nil {
		return nil, err
	}

	split := newOrderSplit(seamstressID, strings.TrimSpace(seamstressName), alloc.Granted)
	o.Splits = append(o.Splits, split)
	o.ActiveCuttingItems = alloc.Remaining
	if o.Status == OrderStatusCutting {
		o.Status = OrderStatusSewing
	}
	o.UpdatedAt = split.CreatedAt
	o.IncrementVersion()

	added := &o.Splits[len(o.Splits)-1]
	o.AddDomainEvent(NewOrderDistributedEvent(o, added))

	return added, nil
}

// FinishSplit marks one split as returned by its seamstress
func (o *ProductionOrder) FinishSplit(splitID uuid.UUID) error {
	if o.Status != OrderStatusSewing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finish a split of an order in %s status", o.Status))
	}
	split := o.SplitByID(splitID)
	if split == nil {
		return shared.NewDomainError("SPLIT_NOT_FOUND", fmt.Sprintf("Split %s not found in order %s", splitID, o.OrderNumber))
	}

	now := time.Now()
	if err := split.finish(now); err != nil {
		return err
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSplitFinishedEvent(o, split))

	return nil
}

// Finish closes the order. It is an explicit action, legal from SEWING once
// every split has been returned. Pieces never distributed stay in
// ActiveCuttingItems and are reported as scrap.
func (o *ProductionOrder) Finish() error {
	if !o.Status.CanTransitionTo(OrderStatusFinished) {
		return transitionError(o.Status, OrderStatusFinished)
	}
	if pending := o.PendingSplits(); pending > 0 {
		return shared.NewDomainError("SPLITS_PENDING", fmt.Sprintf("%d split(s) are still being sewn", pending))
	}

	now := time.Now()
	o.Status = OrderStatusFinished
	o.FinishedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderFinishedEvent(o))

	return nil
}

// SplitByID returns the split with the given ID, nil if absent
func (o *ProductionOrder) SplitByID(splitID uuid.UUID) *OrderSplit {
	for idx := range o.Splits {
		if o.Splits[idx].ID == splitID {
			return &o.Splits[idx]
		}
	}
	return nil
}

// PendingSplits counts splits still being sewn
func (o *ProductionOrder) PendingSplits() int {
	n := 0
	for idx := range o.Splits {
		if !o.Splits[idx].IsFinished() {
			n++
		}
	}
	return n
}

// PlannedPieces is the sum of the baseline items
func (o *ProductionOrder) PlannedPieces() int {
	return TotalPieces(o.Items)
}

// CutPieces is the confirmed cut total, 0 before the cut is confirmed
func (o *ProductionOrder) CutPieces() int {
	if o.Status == OrderStatusPlanned {
		return 0
	}
	return TotalPieces(o.Items)
}

// DistributedPieces sums every split
func (o *ProductionOrder) DistributedPieces() int {
	total := 0
	for idx := range o.Splits {
		total += o.Splits[idx].Pieces()
	}
	return total
}

// FinishedPieces sums the splits already returned
func (o *ProductionOrder) FinishedPieces() int {
	total := 0
	for idx := range o.Splits {
		if o.Splits[idx].IsFinished() {
			total += o.Splits[idx].Pieces()
		}
	}
	return total
}

// RemainingPieces is what is still waiting to be handed out
func (o *ProductionOrder) RemainingPieces() int {
	return TotalPieces(o.ActiveCuttingItems)
}

// CheckConservation verifies that every cut piece is either still available
// or in exactly one split. Orders that were not cut yet trivially pass.
func (o *ProductionOrder) CheckConservation() error {
	if o.Status == OrderStatusPlanned {
		return nil
	}
	lists := make([][]OrderItem, 0, len(o.Splits)+1)
	lists = append(lists, o.ActiveCuttingItems)
	for idx := range o.Splits {
		lists = append(lists, o.Splits[idx].Items)
	}
	diffs := Discrepancies(o.Items, lists...)
	if len(diffs) == 0 {
		return nil
	}
	d := diffs[0]
	return shared.NewDomainError("LEDGER_MISMATCH",
		fmt.Sprintf("Order %s is off by %d piece(s) for %s/%s", o.OrderNumber, d.Count, d.Color, d.Size))
}
