package models

import "github.com/atelier/backend/internal/domain/workforce"

// SeamstressModel is the persistence model for seamstresses
type SeamstressModel struct {
	AggregateModel
	Name       string `gorm:"size:200;not null"`
	Phone      string `gorm:"size:50"`
	Specialty  string `gorm:"size:200"`
	Active     bool   `gorm:"not null;index"`
	Address    string `gorm:"size:300"`
	City       string `gorm:"size:100"`
	SearchText string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SeamstressModel) TableName() string {
	return "seamstresses"
}

// ToDomain converts the persistence model to a domain Seamstress
func (m *SeamstressModel) ToDomain() *workforce.Seamstress {
	return &workforce.Seamstress{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Specialty:         m.Specialty,
		Active:            m.Active,
		Address:           m.Address,
		City:              m.City,
	}
}

// SeamstressModelFromDomain creates a persistence model from a domain Seamstress
func SeamstressModelFromDomain(s *workforce.Seamstress, searchText string) *SeamstressModel {
	m := &SeamstressModel{
		Name:       s.Name,
		Phone:      s.Phone,
		Specialty:  s.Specialty,
		Active:     s.Active,
		Address:    s.Address,
		City:       s.City,
		SearchText: searchText,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// AllModels lists every model, in dependency order, for AutoMigrate in tests
func AllModels() []any {
	return []any{
		&ProductModel{},
		&FabricModel{},
		&SeamstressModel{},
		&ProductionOrderModel{},
	}
}
