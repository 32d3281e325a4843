package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/travelerp/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.protected)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup_AuthOnlyGuardsProtected(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	r := NewRouter(engine, WithAuth(deny))

	open := NewDomainGroup("open", "/open").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	closed := NewDomainGroup("closed", "/closed").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.RegisterPublic(open).Register(closed)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/open/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/closed/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDomainGroup(t *testing.T) {
	engine := gin.New()
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { order = append(order, name); c.Next() }
	}

	group := NewDomainGroup("tickets", "/tickets").Use(mark("group"))
	group.POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
	group.PUT("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
	group.Group("history", "/history").Use(mark("sub")).GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, "tickets", group.Name())
	assert.Equal(t, "/tickets", group.Prefix())

	group.RegisterRoutes(engine.Group("/api"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/tickets/42", nil))
	assert.Equal(t, "42", w.Body.String())

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tickets", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	order = nil
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tickets/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"group", "sub"}, order)
}

func TestRouteTable(t *testing.T) {
	engine := gin.New()
	h := Handlers{
		Customer: &handler.CustomerHandler{},
		Ticket:   &handler.TicketHandler{},
		Visa:     &handler.VisaHandler{},
		Campaign: &handler.CampaignHandler{},
		Booking:  &handler.BookingHandler{},
		Branch:   &handler.BranchHandler{},
		Shipment: &handler.ShipmentHandler{},
		Payment:  &handler.PaymentHandler{},
		Payable:  &handler.PayableHandler{},
		Expense:  &handler.ExpenseHandler{},
		Currency: &handler.CurrencyHandler{},
		Report:   &handler.ReportHandler{},
	}
	NewRouter(engine).RegisterPublic(PublicRoutes(h)...).Register(ProtectedRoutes(h)...).Setup()

	var got []string
	for _, route := range engine.Routes() {
		got = append(got, route.Method+" "+route.Path)
	}
	sort.Strings(got)

	want := []string{
		"GET /api/v1/bookings",
		"GET /api/v1/bookings/:id",
		"GET /api/v1/branches",
		"GET /api/v1/campaigns",
		"GET /api/v1/campaigns/:id",
		"GET /api/v1/currency/rates",
		"GET /api/v1/customers",
		"GET /api/v1/customers/:id",
		"GET /api/v1/expenses",
		"GET /api/v1/payables",
		"GET /api/v1/payables/:id",
		"GET /api/v1/payments",
		"GET /api/v1/payments/:id",
		"GET /api/v1/platform/overview",
		"GET /api/v1/public/tracking/:number",
		"GET /api/v1/reports/summary",
		"GET /api/v1/shipments",
		"GET /api/v1/shipments/:id",
		"GET /api/v1/tickets",
		"GET /api/v1/tickets/:id",
		"GET /api/v1/tickets/:id/adjustments",
		"GET /api/v1/visas",
		"GET /api/v1/visas/:id",
		"POST /api/v1/bookings",
		"POST /api/v1/branches",
		"POST /api/v1/campaigns",
		"POST /api/v1/campaigns/:id/cancel",
		"POST /api/v1/customers",
		"POST /api/v1/expenses",
		"POST /api/v1/expenses/:id/approve",
		"POST /api/v1/expenses/:id/pay",
		"POST /api/v1/expenses/:id/reject",
		"POST /api/v1/expenses/approve-month",
		"POST /api/v1/payables/:id/pay",
		"POST /api/v1/payments/:id/receipts",
		"POST /api/v1/payments/:id/refund",
		"POST /api/v1/shipments",
		"POST /api/v1/shipments/:id/status",
		"POST /api/v1/tickets",
		"POST /api/v1/tickets/:id/adjust",
		"POST /api/v1/tickets/:id/cancel",
		"POST /api/v1/visas",
		"POST /api/v1/visas/:id/cancel",
		"PUT /api/v1/bookings/:id",
		"PUT /api/v1/campaigns/:id",
		"PUT /api/v1/currency/rates",
		"PUT /api/v1/customers/:id",
		"PUT /api/v1/tickets/:id",
		"PUT /api/v1/visas/:id",
	}
	assert.Equal(t, want, got)
}
