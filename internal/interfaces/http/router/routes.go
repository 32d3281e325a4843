package router

import (
	"github.com/gin-gonic/gin"
	"github.com/travelerp/backend/internal/interfaces/http/handler"
)

// Handlers bundles every API handler
type Handlers struct {
	Customer *handler.CustomerHandler
	Ticket   *handler.TicketHandler
	Visa     *handler.VisaHandler
	Campaign *handler.CampaignHandler
	Booking  *handler.BookingHandler
	Branch   *handler.BranchHandler
	Shipment *handler.ShipmentHandler
	Payment  *handler.PaymentHandler
	Payable  *handler.PayableHandler
	Expense  *handler.ExpenseHandler
	Currency *handler.CurrencyHandler
	Report   *handler.ReportHandler
}

// PublicRoutes returns the unauthenticated API groups. publicMiddleware runs
// in front of them (rate limiting, optional tenant hint).
func PublicRoutes(h Handlers, publicMiddleware ...gin.HandlerFunc) []RouteRegistrar {
	public := NewDomainGroup("public", "/public").Use(publicMiddleware...)
	public.GET("/tracking/:number", h.Shipment.Track)
	return []RouteRegistrar{public}
}

// ProtectedRoutes returns the tenant scoped API groups
func ProtectedRoutes(h Handlers) []RouteRegistrar {
	customers := NewDomainGroup("customers", "/customers").
		POST("", h.Customer.Create).
		GET("", h.Customer.List).
		GET("/:id", h.Customer.GetByID).
		PUT("/:id", h.Customer.Update)

	tickets := NewDomainGroup("tickets", "/tickets").
		POST("", h.Ticket.Create).
		GET("", h.Ticket.List).
		GET("/:id", h.Ticket.GetByID).
		PUT("/:id", h.Ticket.Edit).
		POST("/:id/adjust", h.Ticket.Adjust).
		POST("/:id/cancel", h.Ticket.Cancel).
		GET("/:id/adjustments", h.Ticket.Adjustments)

	visas := NewDomainGroup("visas", "/visas").
		POST("", h.Visa.Create).
		GET("", h.Visa.List).
		GET("/:id", h.Visa.GetByID).
		PUT("/:id", h.Visa.Edit).
		POST("/:id/cancel", h.Visa.Cancel)

	campaigns := NewDomainGroup("campaigns", "/campaigns").
		POST("", h.Campaign.Create).
		GET("", h.Campaign.List).
		GET("/:id", h.Campaign.GetByID).
		PUT("/:id", h.Campaign.Update).
		POST("/:id/cancel", h.Campaign.Cancel)

	bookings := NewDomainGroup("bookings", "/bookings").
		POST("", h.Booking.Create).
		GET("", h.Booking.List).
		GET("/:id", h.Booking.GetByID).
		PUT("/:id", h.Booking.Edit)

	branches := NewDomainGroup("branches", "/branches").
		POST("", h.Branch.Create).
		GET("", h.Branch.List)

	shipments := NewDomainGroup("shipments", "/shipments").
		POST("", h.Shipment.Create).
		GET("", h.Shipment.List).
		GET("/:id", h.Shipment.GetByID).
		POST("/:id/status", h.Shipment.ChangeStatus)

	payments := NewDomainGroup("payments", "/payments").
		GET("", h.Payment.List).
		GET("/:id", h.Payment.GetByID).
		POST("/:id/receipts", h.Payment.AddReceipt).
		POST("/:id/refund", h.Payment.MarkRefund)

	payables := NewDomainGroup("payables", "/payables").
		GET("", h.Payable.List).
		GET("/:id", h.Payable.GetByID).
		POST("/:id/pay", h.Payable.PayDown)

	expenses := NewDomainGroup("expenses", "/expenses").
		POST("", h.Expense.Create).
		GET("", h.Expense.List).
		POST("/approve-month", h.Expense.ApproveMonth).
		POST("/:id/approve", h.Expense.Approve).
		POST("/:id/reject", h.Expense.Reject).
		POST("/:id/pay", h.Expense.MarkPaid)

	currency := NewDomainGroup("currency", "/currency").
		GET("/rates", h.Currency.ListRates).
		PUT("/rates", h.Currency.SetRate)

	reports := NewDomainGroup("reports", "/reports").
		GET("/summary", h.Report.Summary)

	platform := NewDomainGroup("platform", "/platform").
		GET("/overview", h.Report.PlatformOverview)

	return []RouteRegistrar{
		customers, tickets, visas, campaigns, bookings, branches, shipments,
		payments, payables, expenses, currency, reports, platform,
	}
}
