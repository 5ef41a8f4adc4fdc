package production

import (
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderSplit is one hand-off of cut pieces to a seamstress. Once created its
// items never change; only its own status moves to FINISHED.
type OrderSplit struct {
	ID             uuid.UUID
	SeamstressID   uuid.UUID
	SeamstressName string
	Status         SplitStatus
	Items          []OrderItem
	CreatedAt      time.Time
	FinishedAt     *time.Time
}

func newOrderSplit(seamstressID uuid.UUID, seamstressName string, items []OrderItem) OrderSplit {
	return OrderSplit{
		ID:             uuid.New(),
		SeamstressID:   seamstressID,
		SeamstressName: seamstressName,
		Status:         SplitStatusSewing,
		Items:          items,
		CreatedAt:      time.Now(),
	}
}

// Pieces returns the number of pieces handed out in this split
func (s *OrderSplit) Pieces() int {
	return TotalPieces(s.Items)
}

// IsFinished returns true once the seamstress returned the work
func (s *OrderSplit) IsFinished() bool {
	return s.Status == SplitStatusFinished
}

func (s *OrderSplit) finish(at time.Time) error {
	if s.Status != SplitStatusSewing {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Split %s is already %s", s.ID, s.Status))
	}
	s.Status = SplitStatusFinished
	s.FinishedAt = &at
	return nil
}
