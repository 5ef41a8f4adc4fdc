package production

import (
	"fmt"

	"github.com/atelier/backend/internal/domain/shared"
)

// OrderStatus is the stage a production order is in
type OrderStatus string

const (
	OrderStatusPlanned  OrderStatus = "PLANNED"
	OrderStatusCutting  OrderStatus = "CUTTING"
	OrderStatusSewing   OrderStatus = "SEWING"
	OrderStatusFinished OrderStatus = "FINISHED"
)

// AllOrderStatuses lists the stages in lifecycle order
var AllOrderStatuses = []OrderStatus{
	OrderStatusPlanned,
	OrderStatusCutting,
	OrderStatusSewing,
	OrderStatusFinished,
}

// IsValid checks if the status is a known OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlanned, OrderStatusCutting, OrderStatusSewing, OrderStatusFinished:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether target is the next stage. The lifecycle is
// linear: there is no skipping and no way back.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPlanned:
		return target == OrderStatusCutting
	case OrderStatusCutting:
		return target == OrderStatusSewing
	case OrderStatusSewing:
		return target == OrderStatusFinished
	case OrderStatusFinished:
		return false
	}
	return false
}

// CanDistribute returns true if cut pieces can be handed out in this status
func (s OrderStatus) CanDistribute() bool {
	return s == OrderStatusCutting || s == OrderStatusSewing
}

// Rank orders statuses along the lifecycle, -1 for unknown values
func (s OrderStatus) Rank() int {
	for i, st := range AllOrderStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

func transitionError(from, to OrderStatus) error {
	return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition from %s to %s", from, to))
}

// SplitStatus is the lifecycle of a single seamstress assignment
type SplitStatus string

const (
	SplitStatusSewing   SplitStatus = "SEWING"
	SplitStatusFinished SplitStatus = "FINISHED"
)

// IsValid checks if the status is a known SplitStatus
func (s SplitStatus) IsValid() bool {
	return s == SplitStatusSewing || s == SplitStatusFinished
}

func (s SplitStatus) String() string {
	return string(s)
}

// GridType names the size template an order was planned with. It is
// informational and does not restrict the size labels stored on items.
type GridType string

const (
	GridTypeStandard GridType = "STANDARD"
	GridTypePlus     GridType = "PLUS"
	GridTypeCustom   GridType = "CUSTOM"
)

// IsValid checks if the grid type is known
func (g GridType) IsValid() bool {
	switch g {
	case GridTypeStandard, GridTypePlus, GridTypeCustom:
		return true
	}
	return false
}

// DefaultSizes returns the size labels a grid template starts with
func (g GridType) DefaultSizes() []string {
	switch g {
	case GridTypeStandard:
		return []string{"P", "M", "G", "GG"}
	case GridTypePlus:
		return []string{"G1", "G2", "G3"}
	}
	return nil
}
