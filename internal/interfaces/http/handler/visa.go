package handler

import (
	"github.com/gin-gonic/gin"
	ticketingapp "github.com/travelerp/backend/internal/application/ticketing"
)

// VisaHandler serves visa processing sales
type VisaHandler struct {
	BaseHandler
	visaService *ticketingapp.VisaService
}

// NewVisaHandler creates a new VisaHandler
func NewVisaHandler(visaService *ticketingapp.VisaService) *VisaHandler {
	return &VisaHandler{visaService: visaService}
}

// Create handles POST /visas
func (h *VisaHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req ticketingapp.VisaRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.visaService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Edit handles PUT /visas/:id
func (h *VisaHandler) Edit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ticketingapp.VisaRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.visaService.Edit(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /visas/:id/cancel
func (h *VisaHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.visaService.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /visas/:id
func (h *VisaHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.visaService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /visas
func (h *VisaHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter ticketingapp.SaleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.visaService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}
