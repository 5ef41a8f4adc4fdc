package workforce

import (
	"time"

	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/google/uuid"
)

// SeamstressRequest creates or replaces a seamstress profile. Active is
// optional on update and defaults to true on create.
type SeamstressRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	Specialty string `json:"specialty" binding:"max=200"`
	Address   string `json:"address" binding:"max=300"`
	City      string `json:"city" binding:"max=100"`
	Active    *bool  `json:"active"`
}

func (r SeamstressRequest) profile() workforce.Profile {
	return workforce.Profile{
		Name:      r.Name,
		Phone:     r.Phone,
		Specialty: r.Specialty,
		Address:   r.Address,
		City:      r.City,
	}
}

// SeamstressListFilter represents filter options for the seamstress list
type SeamstressListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SeamstressResponse represents a seamstress in API responses
type SeamstressResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
	Active    bool      `json:"active"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToSeamstressResponse converts a domain Seamstress
func ToSeamstressResponse(s *workforce.Seamstress) SeamstressResponse {
	return SeamstressResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Specialty: s.Specialty,
		Active:    s.Active,
		Address:   s.Address,
		City:      s.City,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}
