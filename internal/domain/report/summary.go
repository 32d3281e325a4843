package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/ledger"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// PaymentRow is the slice of a payment the aggregator needs.
// Received is the receipt total, loaded alongside.
type PaymentRow struct {
	SourceType  ledger.SourceType
	Status      ledger.PaymentStatus
	Amount      decimal.Decimal
	Received    decimal.Decimal
	Currency    valueobject.Currency
	PaymentDate time.Time
}

// SaleRow is the revenue side of a live booking: a ticket or visa netSales, or
// a confirmed Haj/Umrah booking total. Date follows the booking's payment-date rule.
type SaleRow struct {
	SourceType ledger.SourceType
	Amount     decimal.Decimal
	Currency   valueobject.Currency
	Date       time.Time
}

// ReceiptRow is a received amount in its payment's currency
type ReceiptRow struct {
	Amount   decimal.Decimal
	Currency valueobject.Currency
	Date     time.Time
}

// ExpenseRow is an expense with its status
type ExpenseRow struct {
	Amount   decimal.Decimal
	Currency valueobject.Currency
	Status   ledger.ExpenseStatus
	Date     time.Time
}

// PayableRow is a payable balance bucketed by creation date
type PayableRow struct {
	Balance   decimal.Decimal
	Currency  valueobject.Currency
	Canceled  bool
	CreatedAt time.Time
}

// Inputs are the rows of one tenant touching the report range
type Inputs struct {
	Sales    []SaleRow
	Payments []PaymentRow
	Receipts []ReceiptRow
	Expenses []ExpenseRow
	Payables []PayableRow
}

// Row is one period of a summary, all amounts in USD
type Row struct {
	Period      string          `json:"period"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	Income      decimal.Decimal `json:"income"`
	Receivables decimal.Decimal `json:"receivables"`
	Payables    decimal.Decimal `json:"payables"`
}

func (r *Row) add(o Row) {
	r.Revenue = r.Revenue.Add(o.Revenue)
	r.Expenses = r.Expenses.Add(o.Expenses)
	r.Income = r.Income.Add(o.Income)
	r.Receivables = r.Receivables.Add(o.Receivables)
	r.Payables = r.Payables.Add(o.Payables)
}

func zeroRow(p Period) Row {
	return Row{
		Period:      p.Key,
		Start:       p.Start,
		End:         p.End,
		Revenue:     decimal.Zero,
		Expenses:    decimal.Zero,
		Income:      decimal.Zero,
		Receivables: decimal.Zero,
		Payables:    decimal.Zero,
	}
}

// Summary is the aggregator output
type Summary struct {
	Granularity Granularity `json:"granularity"`
	Currency    string      `json:"currency"`
	Rows        []Row       `json:"rows"`
	Totals      Row         `json:"totals"`
}

// Aggregate buckets the inputs into periods. Every period appears exactly once,
// zero-filled; rows outside the buckets are ignored.
//
//   - revenue: ticket and visa netSales plus confirmed Haj/Umrah totals, by payment date
//   - expenses: approved expenses, by expense date
//   - income: receipts, by receipt date
//   - receivables: positive balances of payments that are not refunded, by payment date
//   - payables: balances of payables that are not canceled, by creation date
func Aggregate(periods []Period, g Granularity, in Inputs, conv *currency.Converter) Summary {
	rows := make([]Row, len(periods))
	for i, p := range periods {
		rows[i] = zeroRow(p)
	}
	bucket := func(t time.Time) *Row {
		i := sort.Search(len(periods), func(i int) bool { return periods[i].End.After(t) })
		if i == len(periods) || !periods[i].Contains(t) {
			return nil
		}
		return &rows[i]
	}

	for _, sale := range in.Sales {
		if !sale.SourceType.CountsAsRevenue() {
			continue
		}
		if row := bucket(sale.Date); row != nil {
			row.Revenue = row.Revenue.Add(conv.ToUSD(sale.Amount, sale.Currency))
		}
	}
	for _, p := range in.Payments {
		if p.Status == ledger.PaymentStatusRefunded {
			continue
		}
		if balance := p.Amount.Sub(p.Received); balance.IsPositive() {
			if row := bucket(p.PaymentDate); row != nil {
				row.Receivables = row.Receivables.Add(conv.ToUSD(balance, p.Currency))
			}
		}
	}
	for _, r := range in.Receipts {
		if row := bucket(r.Date); row != nil {
			row.Income = row.Income.Add(conv.ToUSD(r.Amount, r.Currency))
		}
	}
	for _, e := range in.Expenses {
		if e.Status != ledger.ExpenseStatusApproved {
			continue
		}
		if row := bucket(e.Date); row != nil {
			row.Expenses = row.Expenses.Add(conv.ToUSD(e.Amount, e.Currency))
		}
	}
	for _, p := range in.Payables {
		if p.Canceled || !p.Balance.IsPositive() {
			continue
		}
		if row := bucket(p.CreatedAt); row != nil {
			row.Payables = row.Payables.Add(conv.ToUSD(p.Balance, p.Currency))
		}
	}

	s := Summary{Granularity: g, Currency: valueobject.USD.String(), Rows: rows}
	s.Totals = Row{Period: "total", Revenue: decimal.Zero, Expenses: decimal.Zero, Income: decimal.Zero, Receivables: decimal.Zero, Payables: decimal.Zero}
	s.Totals.Start, s.Totals.End = Bounds(periods)
	for _, r := range rows {
		s.Totals.add(r)
	}
	return s
}

// Balance is an open amount in its own currency
type Balance struct {
	Amount   decimal.Decimal
	Currency valueobject.Currency
}

// TenantActivity is one tenant's line of the platform overview input
type TenantActivity struct {
	TenantID    uuid.UUID
	Code        string
	Name        string
	Tickets     int64
	Visas       int64
	Bookings    int64
	Shipments   int64
	Receivables []Balance
}

// TenantOverview is one tenant's line of the platform overview, receivables in USD
type TenantOverview struct {
	TenantID    uuid.UUID       `json:"tenant_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Tickets     int64           `json:"tickets"`
	Visas       int64           `json:"visas"`
	Bookings    int64           `json:"bookings"`
	Shipments   int64           `json:"shipments"`
	Receivables decimal.Decimal `json:"receivables_usd"`
}

// Overview converts a tenant's open balances with that tenant's own rate table
func Overview(a TenantActivity, conv *currency.Converter) TenantOverview {
	total := decimal.Zero
	for _, b := range a.Receivables {
		if b.Amount.IsPositive() {
			total = total.Add(conv.ToUSD(b.Amount, b.Currency))
		}
	}
	return TenantOverview{
		TenantID:    a.TenantID,
		Code:        a.Code,
		Name:        a.Name,
		Tickets:     a.Tickets,
		Visas:       a.Visas,
		Bookings:    a.Bookings,
		Shipments:   a.Shipments,
		Receivables: total,
	}
}
