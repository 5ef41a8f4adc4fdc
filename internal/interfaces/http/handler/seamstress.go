package handler

import (
	workforceapp "github.com/atelier/backend/internal/application/workforce"
	"github.com/gin-gonic/gin"
)

// SeamstressHandler handles the seamstress registry
type SeamstressHandler struct {
	BaseHandler
	seamstressService *workforceapp.SeamstressService
}

// NewSeamstressHandler creates a new SeamstressHandler
func NewSeamstressHandler(seamstressService *workforceapp.SeamstressService) *SeamstressHandler {
	return &SeamstressHandler{seamstressService: seamstressService}
}

// List handles GET /seamstresses
func (h *SeamstressHandler) List(c *gin.Context) {
	var filter workforceapp.SeamstressListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	seamstresses, total, err := h.seamstressService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, seamstresses, total, page, pageSize)
}

// GetByID handles GET /seamstresses/:id
func (h *SeamstressHandler) GetByID(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	s, err := h.seamstressService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Create handles POST /seamstresses
func (h *SeamstressHandler) Create(c *gin.Context) {
	var req workforceapp.SeamstressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	s, err := h.seamstressService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, s)
}

// Update handles PUT /seamstresses/:id
func (h *SeamstressHandler) Update(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req workforceapp.SeamstressRequest
	if !h.bindJSON(c, &req) {
		return
	}
	s, err := h.seamstressService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// Delete handles DELETE /seamstresses/:id
func (h *SeamstressHandler) Delete(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.seamstressService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
