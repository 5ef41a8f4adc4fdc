package workforce

import (
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
)

// Seamstress is a sewing worker who receives splits of cut pieces
type Seamstress struct {
	shared.BaseAggregateRoot
	Name      string
	Phone     string
	Specialty string
	Active    bool
	Address   string
	City      string
}

// Profile carries the editable fields of a seamstress
type Profile struct {
	Name      string
	Phone     string
	Specialty string
	Address   string
	City      string
}

// NewSeamstress registers an active seamstress
func NewSeamstress(p Profile) (*Seamstress, error) {
	s := &Seamstress{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Active:            true,
	}
	if err := s.apply(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the profile
func (s *Seamstress) Update(p Profile) error {
	if err := s.apply(p); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Activate makes the seamstress eligible for new splits
func (s *Seamstress) Activate() {
	if s.Active {
		return
	}
	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate stops new splits from being assigned. Existing splits are kept.
func (s *Seamstress) Deactivate() {
	if !s.Active {
		return
	}
	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// CanReceiveWork reports whether new splits may be assigned
func (s *Seamstress) CanReceiveWork() error {
	if !s.Active {
		return shared.NewDomainError("SEAMSTRESS_INACTIVE", "Seamstress "+s.Name+" is inactive")
	}
	return nil
}

func (s *Seamstress) apply(p Profile) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Seamstress name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Seamstress name cannot exceed 200 characters")
	}
	s.Name = name
	s.Phone = strings.TrimSpace(p.Phone)
	s.Specialty = strings.TrimSpace(p.Specialty)
	s.Address = strings.TrimSpace(p.Address)
	s.City = strings.TrimSpace(p.City)
	return nil
}
