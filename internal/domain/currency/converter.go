package currency

import (
	"github.com/shopspring/decimal"
	"github.com/travelerp/backend/internal/domain/shared/valueobject"
)

// Converter converts amounts into the USD reporting unit using a spot-rate table.
// A currency with no rate, or with a non-positive rate, converts at identity.
type Converter struct {
	rates map[valueobject.Currency]decimal.Decimal
}

// NewConverter builds a converter from rate rows
func NewConverter(rates []Rate) *Converter {
	c := &Converter{rates: make(map[valueobject.Currency]decimal.Decimal, len(rates))}
	for _, r := range rates {
		c.rates[r.Currency] = r.UnitsPerUSD
	}
	return c
}

// NewConverterFromMap builds a converter from a code to units-per-USD map
func NewConverterFromMap(rates map[string]decimal.Decimal) *Converter {
	c := &Converter{rates: make(map[valueobject.Currency]decimal.Decimal, len(rates))}
	for code, rate := range rates {
		c.rates[valueobject.Currency(code)] = rate
	}
	return c
}

// RateFor returns the units-per-USD rate and whether one is set
func (c *Converter) RateFor(cur valueobject.Currency) (decimal.Decimal, bool) {
	if c == nil || cur.IsUSD() {
		return decimal.NewFromInt(1), false
	}
	rate, ok := c.rates[cur]
	if !ok || !rate.IsPositive() {
		return decimal.NewFromInt(1), false
	}
	return rate, true
}

// ToUSD converts amount in cur into USD: usd = amount / unitsPerUSD
func (c *Converter) ToUSD(amount decimal.Decimal, cur valueobject.Currency) decimal.Decimal {
	rate, ok := c.RateFor(cur)
	if !ok {
		return amount
	}
	return amount.Div(rate)
}

// Convert converts a Money value into USD Money
func (c *Converter) Convert(m valueobject.Money) valueobject.Money {
	return valueobject.NewUSD(c.ToUSD(m.Amount(), m.Currency()))
}

// Sum converts every value to USD before adding them
func (c *Converter) Sum(values ...valueobject.Money) valueobject.Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(c.ToUSD(v.Amount(), v.Currency()))
	}
	return valueobject.NewUSD(total)
}
