package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/travelerp/backend/internal/application/finance"
)

// PaymentHandler serves receivables and their receipts
type PaymentHandler struct {
	BaseHandler
	paymentService *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// GetByID handles GET /payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.paymentService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /payments
func (h *PaymentHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter financeapp.PaymentListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.paymentService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}

// AddReceipt handles POST /payments/:id/receipts
func (h *PaymentHandler) AddReceipt(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req financeapp.AddReceiptRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.paymentService.AddReceipt(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// MarkRefund handles POST /payments/:id/refund
func (h *PaymentHandler) MarkRefund(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.paymentService.MarkRefund(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PayableHandler serves supplier payables
type PayableHandler struct {
	BaseHandler
	payableService *financeapp.PayableService
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(payableService *financeapp.PayableService) *PayableHandler {
	return &PayableHandler{payableService: payableService}
}

// GetByID handles GET /payables/:id
func (h *PayableHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.payableService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /payables
func (h *PayableHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter financeapp.PayableListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.payableService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}

// PayDown handles POST /payables/:id/pay
func (h *PayableHandler) PayDown(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req financeapp.PayDownRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.payableService.PayDown(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExpenseHandler serves office expenses and their approval workflow
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req financeapp.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.expenseService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter financeapp.ExpenseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	items, total, err := h.expenseService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.PageQuery)
}

// Approve handles POST /expenses/:id/approve
func (h *ExpenseHandler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.expenseService.Approve(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject handles POST /expenses/:id/reject
func (h *ExpenseHandler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req financeapp.RejectExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.expenseService.Reject(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkPaid handles POST /expenses/:id/pay
func (h *ExpenseHandler) MarkPaid(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.expenseService.MarkPaid(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ApproveMonth handles POST /expenses/approve-month
func (h *ExpenseHandler) ApproveMonth(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req financeapp.ApproveMonthRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.expenseService.ApproveMonth(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CurrencyHandler serves the tenant's rate table
type CurrencyHandler struct {
	BaseHandler
	currencyService *financeapp.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService *financeapp.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// SetRate handles PUT /currency/rates
func (h *CurrencyHandler) SetRate(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req financeapp.SetRateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.currencyService.SetRate(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListRates handles GET /currency/rates
func (h *CurrencyHandler) ListRates(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	items, err := h.currencyService.ListRates(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
