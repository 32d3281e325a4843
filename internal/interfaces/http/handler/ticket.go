package handler

import (
	"github.com/gin-gonic/gin"
	ticketingapp "github.com/travelerp/backend/internal/application/ticketing"
)

// TicketHandler serves air tickets and their adjustment history
type TicketHandler struct {
	BaseHandler
	ticketService *ticketingapp.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *ticketingapp.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create handles POST /tickets
func (h *TicketHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req ticketingapp.TicketRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.ticketService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Edit handles PUT /tickets/:id
func (h *TicketHandler) Edit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ticketingapp.TicketRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.ticketService.Edit(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Adjust handles POST /tickets/:id/adjust
func (h *TicketHandler) Adjust(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ticketingapp.AdjustTicketRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.ticketService.Adjust(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /tickets/:id/cancel
func (h *TicketHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.ticketService.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /tickets/:id
func (h *TicketHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.ticketService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /tickets
func (h *TicketHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter ticketingapp.SaleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.ticketService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}

// Adjustments handles GET /tickets/:id/adjustments
func (h *TicketHandler) Adjustments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	items, err := h.ticketService.ListAdjustments(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
