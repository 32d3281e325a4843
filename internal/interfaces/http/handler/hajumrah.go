package handler

import (
	"github.com/gin-gonic/gin"
	hajumrahapp "github.com/travelerp/backend/internal/application/hajumrah"
)

// CampaignHandler serves Haj and Umrah campaigns
type CampaignHandler struct {
	BaseHandler
	campaignService *hajumrahapp.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *hajumrahapp.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Create handles POST /campaigns
func (h *CampaignHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req hajumrahapp.CampaignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.campaignService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update handles PUT /campaigns/:id
func (h *CampaignHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req hajumrahapp.CampaignRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.campaignService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /campaigns/:id/cancel. Every live booking of the
// campaign is canceled with it.
func (h *CampaignHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.campaignService.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /campaigns/:id
func (h *CampaignHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.campaignService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter hajumrahapp.CampaignListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.campaignService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}

// BookingHandler serves pilgrim bookings
type BookingHandler struct {
	BaseHandler
	bookingService *hajumrahapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *hajumrahapp.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req hajumrahapp.BookingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.bookingService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Edit handles PUT /bookings/:id, including status moves to confirmed or canceled
func (h *BookingHandler) Edit(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req hajumrahapp.BookingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.bookingService.Edit(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /bookings/:id
func (h *BookingHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.bookingService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /bookings
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter hajumrahapp.BookingListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.bookingService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}
