package ticketing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travelerp/backend/internal/domain/shared"
)

func amounts(cost, sales string) SaleAmounts {
	return SaleAmounts{NetCost: decimal.RequireFromString(cost), NetSales: decimal.RequireFromString(sales)}
}

func TestSaleAmounts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cost    string
		sales   string
		wantErr error
	}{
		{"profit", "500", "800", nil},
		{"break even", "500", "500", nil},
		{"free", "0", "0", nil},
		{"underwater", "500", "499.99", ErrNetSalesBelowCost},
		{"negative cost", "-1", "10", ErrNegativeAmounts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := amounts(tt.cost, tt.sales).Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewTicket(t *testing.T) {
	tenantID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		created := time.Date(2026, 2, 14, 8, 0, 0, 0, time.UTC)
		tk, err := NewTicket(tenantID, TicketNumber(7), TicketDetails{
			Reference:    " VN1 ",
			FlightNumber: "vn123",
			Amounts:      amounts("500", "800"),
		}, created)
		require.NoError(t, err)
		assert.Equal(t, "TKT-000007", tk.TicketNumber)
		assert.Equal(t, "VN1", tk.Reference)
		assert.Equal(t, "VN123", tk.FlightNumber)
		assert.Equal(t, "USD", tk.Amounts.Currency.String())
		assert.True(t, tk.Amounts.Profit().Equal(decimal.NewFromInt(300)))
		assert.Equal(t, created, tk.CreatedAt)
		assert.Equal(t, created, tk.IssueDate)
		assert.Equal(t, created, tk.PaymentDate())
	})

	t.Run("blank reference", func(t *testing.T) {
		_, err := NewTicket(tenantID, "TKT-1", TicketDetails{Reference: "  ", Amounts: amounts("1", "2")}, time.Now())
		assert.ErrorIs(t, err, ErrReferenceRequired)
	})

	t.Run("underwater", func(t *testing.T) {
		_, err := NewTicket(tenantID, "TKT-1", TicketDetails{Reference: "X", Amounts: amounts("800", "500")}, time.Now())
		assert.ErrorIs(t, err, ErrNetSalesBelowCost)
	})

	t.Run("return before departure", func(t *testing.T) {
		dep := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
		ret := dep.AddDate(0, 0, -1)
		_, err := NewTicket(tenantID, "TKT-1", TicketDetails{Reference: "X", DepartureDate: &dep, ReturnDate: &ret, Amounts: amounts("1", "2")}, time.Now())
		assert.Error(t, err)
	})
}

func TestTicket_EditAndCancel(t *testing.T) {
	tk, err := NewTicket(uuid.New(), "TKT-1", TicketDetails{Reference: "VN1", Amounts: amounts("500", "800")}, time.Now())
	require.NoError(t, err)

	err = tk.Edit(TicketDetails{Reference: "VN1", Amounts: amounts("500", "400")})
	assert.ErrorIs(t, err, ErrNetSalesBelowCost)
	assert.True(t, tk.Amounts.NetSales.Equal(decimal.NewFromInt(800)))

	require.NoError(t, tk.Edit(TicketDetails{Reference: "VN1", Amounts: amounts("500", "750")}))
	assert.True(t, tk.Amounts.Profit().Equal(decimal.NewFromInt(250)))

	require.NoError(t, tk.Cancel(time.Now()))
	assert.ErrorIs(t, tk.Cancel(time.Now()), shared.ErrAlreadyCanceled)
	assert.Error(t, tk.Edit(TicketDetails{Reference: "VN1", Amounts: amounts("1", "1")}))
}

func TestTicket_Adjust(t *testing.T) {
	tk, err := NewTicket(uuid.New(), "TKT-1", TicketDetails{Reference: "VN1", Amounts: amounts("500", "800")}, time.Now())
	require.NoError(t, err)

	_, err = tk.Adjust(amounts("500", "700"), "", nil)
	assert.Error(t, err)

	adj, err := tk.Adjust(amounts("450", "700"), "fare change", nil)
	require.NoError(t, err)
	assert.True(t, adj.PreviousNetSales.Equal(decimal.NewFromInt(800)))
	assert.True(t, adj.NewNetSales.Equal(decimal.NewFromInt(700)))
	assert.True(t, adj.PreviousNetCost.Equal(decimal.NewFromInt(500)))
	assert.True(t, tk.Amounts.NetCost.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, "USD", tk.Amounts.Currency.String())
}

func TestTicket_PaymentTerms(t *testing.T) {
	dep := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	tk, err := NewTicket(uuid.New(), "TKT-1", TicketDetails{
		Reference:     "VN1",
		PassengerName: "Alice",
		DepartureDate: &dep,
		Amounts:       amounts("500", "800"),
	}, time.Now())
	require.NoError(t, err)

	terms := tk.PaymentTerms("")
	assert.Equal(t, "Alice", terms.PayerName)
	assert.Equal(t, dep, terms.PaymentDate)
	assert.True(t, terms.Amount.Equal(decimal.NewFromInt(800)))
	assert.True(t, tk.PayableTerms().Amount.Equal(decimal.NewFromInt(500)))
}

func TestVisa(t *testing.T) {
	travel := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	v, err := NewVisa(uuid.New(), VisaNumber(3), VisaDetails{
		Reference:      "APP-9",
		PassportNumber: "ab123",
		TravelDate:     &travel,
		Amounts:        amounts("100", "150"),
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "VSA-000003", v.VisaNumber)
	assert.Equal(t, "AB123", v.PassportNumber)
	assert.Equal(t, travel, v.PaymentDate())

	assert.ErrorIs(t, v.Edit(VisaDetails{Reference: "APP-9", Amounts: amounts("200", "150")}), ErrNetSalesBelowCost)
	require.NoError(t, v.Cancel(time.Now()))
	assert.True(t, v.IsCanceled())
}
