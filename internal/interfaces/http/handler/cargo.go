package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cargoapp "github.com/travelerp/backend/internal/application/cargo"
	"github.com/travelerp/backend/internal/interfaces/http/middleware"
)

// BranchHandler serves cargo branches
type BranchHandler struct {
	BaseHandler
	branchService *cargoapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *cargoapp.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create handles POST /branches
func (h *BranchHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req cargoapp.CreateBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.branchService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /branches
func (h *BranchHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	items, err := h.branchService.List(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ShipmentHandler serves cargo shipments and the public tracking lookup
type ShipmentHandler struct {
	BaseHandler
	shipmentService *cargoapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *cargoapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// Create handles POST /shipments
func (h *ShipmentHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req cargoapp.CreateShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.shipmentService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ChangeStatus handles POST /shipments/:id/status
func (h *ShipmentHandler) ChangeStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req cargoapp.ChangeStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.shipmentService.ChangeStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByID handles GET /shipments/:id
func (h *ShipmentHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.shipmentService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter cargoapp.ShipmentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.shipmentService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}

// Track handles GET /public/tracking/:number. No authentication; the tenant
// narrows the lookup only when the request names one.
func (h *ShipmentHandler) Track(c *gin.Context) {
	var tenantID *uuid.UUID
	if id, ok := middleware.GetTenantID(c); ok {
		tenantID = &id
	}
	resp, err := h.shipmentService.Track(c.Request.Context(), tenantID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
