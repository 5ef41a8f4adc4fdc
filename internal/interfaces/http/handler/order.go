package handler

import (
	"net/http"
	"strconv"

	productionapp "github.com/atelier/backend/internal/application/production"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves production orders and their ledger operations
type OrderHandler struct {
	BaseHandler
	orderService  *productionapp.OrderService
	exportService *productionapp.ExportService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *productionapp.OrderService, exportService *productionapp.ExportService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		exportService: exportService,
	}
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter productionapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// GetByID handles GET /orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Create handles POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req productionapp.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Update handles PUT /orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req productionapp.UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ConfirmCut handles POST /orders/:id/confirm-cut
func (h *OrderHandler) ConfirmCut(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req productionapp.ConfirmCutRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.ConfirmCut(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Distribute handles POST /orders/:id/distribute
func (h *OrderHandler) Distribute(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req productionapp.DistributeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Distribute(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// FinishSplit handles POST /orders/:id/splits/:splitId/finish
func (h *OrderHandler) FinishSplit(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	splitID, ok := h.uuidParam(c, "splitId")
	if !ok {
		return
	}

	order, err := h.orderService.FinishSplit(c.Request.Context(), id, splitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Finish handles POST /orders/:id/finish
func (h *OrderHandler) Finish(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Finish(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Export handles GET /orders/export and streams the workbook
func (h *OrderHandler) Export(c *gin.Context) {
	var filter productionapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	file, count, err := h.exportService.Export(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Header("X-Order-Count", strconv.Itoa(count))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Publish handles POST /orders/export and returns a download link
func (h *OrderHandler) Publish(c *gin.Context) {
	var filter productionapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	report, err := h.exportService.Publish(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, report)
}
