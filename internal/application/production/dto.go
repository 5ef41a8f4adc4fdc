package production

import (
	"time"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one color of a plan or of a confirmed cut
type OrderItemInput struct {
	Color            string           `json:"color" binding:"required,max=100"`
	ColorHex         string           `json:"color_hex" binding:"omitempty,hexcolor,len=7"`
	Sizes            map[string]int   `json:"sizes" binding:"required,dive,keys,required,max=20,endkeys,min=0"`
	EstimatedPieces  int              `json:"estimated_pieces" binding:"min=0"`
	PiecesPerSizeEst int              `json:"pieces_per_size_est" binding:"min=0"`
	RollsUsed        *decimal.Decimal `json:"rolls_used"`
}

// ToDomain converts the input into a normalized order item
func (in OrderItemInput) ToDomain() production.OrderItem {
	item := production.NewOrderItem(in.Color, in.ColorHex, production.SizeGrid(in.Sizes))
	item.EstimatedPieces = in.EstimatedPieces
	item.PiecesPerSizeEst = in.PiecesPerSizeEst
	if in.RollsUsed != nil {
		item.RollsUsed = *in.RollsUsed
	}
	return item
}

func itemsToDomain(inputs []OrderItemInput) []production.OrderItem {
	if inputs == nil {
		return nil
	}
	items := make([]production.OrderItem, len(inputs))
	for i, in := range inputs {
		items[i] = in.ToDomain()
	}
	return items
}

// CreateOrderRequest represents a request to plan a new order. When ProductID
// is set, empty reference fields are taken from the product.
type CreateOrderRequest struct {
	ProductID     *uuid.UUID       `json:"product_id"`
	ReferenceCode string           `json:"reference_code" binding:"max=50"`
	Description   string           `json:"description" binding:"max=500"`
	Fabric        string           `json:"fabric" binding:"max=200"`
	GridType      string           `json:"grid_type" binding:"omitempty,oneof=STANDARD PLUS CUSTOM"`
	Notes         string           `json:"notes" binding:"max=2000"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest changes descriptive fields and, before cutting, the plan.
// Nil fields are left unchanged.
type UpdateOrderRequest struct {
	ReferenceCode *string          `json:"reference_code" binding:"omitempty,min=1,max=50"`
	Description   *string          `json:"description" binding:"omitempty,max=500"`
	Fabric        *string          `json:"fabric" binding:"omitempty,max=200"`
	GridType      *string          `json:"grid_type" binding:"omitempty,oneof=STANDARD PLUS CUSTOM"`
	Notes         *string          `json:"notes" binding:"omitempty,max=2000"`
	Items         []OrderItemInput `json:"items" binding:"omitempty,dive"`
}

// ConfirmCutRequest carries the quantities actually cut
type ConfirmCutRequest struct {
	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// DistributeRequest hands pieces to a seamstress: color -> size -> quantity
type DistributeRequest struct {
	SeamstressID uuid.UUID                 `json:"seamstress_id" binding:"required"`
	Items        map[string]map[string]int `json:"items" binding:"required"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=PLANNED CUTTING SEWING FINISHED"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is an order item in API responses
type OrderItemResponse struct {
	Color            string          `json:"color"`
	ColorHex         string          `json:"color_hex"`
	Sizes            map[string]int  `json:"sizes"`
	SizeLabels       []string        `json:"size_labels"`
	ActualPieces     int             `json:"actual_pieces"`
	EstimatedPieces  int             `json:"estimated_pieces"`
	PiecesPerSizeEst int             `json:"pieces_per_size_est"`
	RollsUsed        decimal.Decimal `json:"rolls_used"`
}

// SplitResponse is one seamstress assignment
type SplitResponse struct {
	ID             uuid.UUID           `json:"id"`
	SeamstressID   uuid.UUID           `json:"seamstress_id"`
	SeamstressName string              `json:"seamstress_name"`
	Status         string              `json:"status"`
	Pieces         int                 `json:"pieces"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
	FinishedAt     *time.Time          `json:"finished_at,omitempty"`
}

// OrderProgress summarizes where the pieces of an order are
type OrderProgress struct {
	Planned       int `json:"planned"`
	Cut           int `json:"cut"`
	Distributed   int `json:"distributed"`
	Finished      int `json:"finished"`
	Remaining     int `json:"remaining"`
	PendingSplits int `json:"pending_splits"`
}

// OrderResponse represents a production order in API responses
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	ProductID          *uuid.UUID          `json:"product_id,omitempty"`
	ReferenceCode      string              `json:"reference_code"`
	Description        string              `json:"description"`
	Fabric             string              `json:"fabric"`
	GridType           string              `json:"grid_type"`
	Status             string              `json:"status"`
	Items              []OrderItemResponse `json:"items"`
	ActiveCuttingItems []OrderItemResponse `json:"active_cutting_items"`
	Splits             []SplitResponse     `json:"splits"`
	Notes              string              `json:"notes"`
	Progress           OrderProgress       `json:"progress"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	FinishedAt         *time.Time          `json:"finished_at,omitempty"`
	Version            int                 `json:"version"`
}

// OrderListResponse is the lighter list view of an order
type OrderListResponse struct {
	ID            uuid.UUID     `json:"id"`
	OrderNumber   string        `json:"order_number"`
	ReferenceCode string        `json:"reference_code"`
	Description   string        `json:"description"`
	Fabric        string        `json:"fabric"`
	Status        string        `json:"status"`
	Progress      OrderProgress `json:"progress"`
	CreatedAt     time.Time     `json:"created_at"`
	FinishedAt    *time.Time    `json:"finished_at,omitempty"`
}

// ToOrderItemResponse converts a domain item
func ToOrderItemResponse(item production.OrderItem) OrderItemResponse {
	sizes := make(map[string]int, len(item.Sizes))
	for k, v := range item.Sizes {
		sizes[k] = v
	}
	return OrderItemResponse{
		Color:            item.Color,
		ColorHex:         item.ColorHex,
		Sizes:            sizes,
		SizeLabels:       item.Sizes.Labels(),
		ActualPieces:     item.ActualPieces,
		EstimatedPieces:  item.EstimatedPieces,
		PiecesPerSizeEst: item.PiecesPerSizeEst,
		RollsUsed:        item.RollsUsed,
	}
}

func toItemResponses(items []production.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i, item := range items {
		out[i] = ToOrderItemResponse(item)
	}
	return out
}

// ToSplitResponse converts a domain split
func ToSplitResponse(s *production.OrderSplit) SplitResponse {
	return SplitResponse{
		ID:             s.ID,
		SeamstressID:   s.SeamstressID,
		SeamstressName: s.SeamstressName,
		Status:         string(s.Status),
		Pieces:         s.Pieces(),
		Items:          toItemResponses(s.Items),
		CreatedAt:      s.CreatedAt,
		FinishedAt:     s.FinishedAt,
	}
}

func progressOf(o *production.ProductionOrder) OrderProgress {
	return OrderProgress{
		Planned:       o.PlannedPieces(),
		Cut:           o.CutPieces(),
		Distributed:   o.DistributedPieces(),
		Finished:      o.FinishedPieces(),
		Remaining:     o.RemainingPieces(),
		PendingSplits: o.PendingSplits(),
	}
}

// ToOrderResponse converts a domain order to OrderResponse
func ToOrderResponse(o *production.ProductionOrder) OrderResponse {
	splits := make([]SplitResponse, len(o.Splits))
	for i := range o.Splits {
		splits[i] = ToSplitResponse(&o.Splits[i])
	}
	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		ProductID:          o.ProductID,
		ReferenceCode:      o.ReferenceCode,
		Description:        o.Description,
		Fabric:             o.Fabric,
		GridType:           string(o.GridType),
		Status:             string(o.Status),
		Items:              toItemResponses(o.Items),
		ActiveCuttingItems: toItemResponses(o.ActiveCuttingItems),
		Splits:             splits,
		Notes:              o.Notes,
		Progress:           progressOf(o),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		FinishedAt:         o.FinishedAt,
		Version:            o.Version,
	}
}

// ToOrderListResponses converts a slice of orders to list responses
func ToOrderListResponses(orders []production.ProductionOrder) []OrderListResponse {
	out := make([]OrderListResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		out[i] = OrderListResponse{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			ReferenceCode: o.ReferenceCode,
			Description:   o.Description,
			Fabric:        o.Fabric,
			Status:        string(o.Status),
			Progress:      progressOf(o),
			CreatedAt:     o.CreatedAt,
			FinishedAt:    o.FinishedAt,
		}
	}
	return out
}
