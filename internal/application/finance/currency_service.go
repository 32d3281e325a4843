package finance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/currency"
	"go.uber.org/zap"
)

// DefaultRateCacheTTL bounds how stale a cached rate table may be
const DefaultRateCacheTTL = 10 * time.Minute

// CurrencyService maintains the tenant's spot rate table and hands out converters
type CurrencyService struct {
	deps     appshared.Deps
	cacheTTL time.Duration
}

// NewCurrencyService creates a new CurrencyService. A non-positive ttl uses DefaultRateCacheTTL.
func NewCurrencyService(deps appshared.Deps, cacheTTL time.Duration) *CurrencyService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultRateCacheTTL
	}
	return &CurrencyService{deps: deps.WithDefaults(), cacheTTL: cacheTTL}
}

// RatesCacheKey is the cache key of a tenant's rate table
func RatesCacheKey(tenantID uuid.UUID) string {
	return "rates:" + tenantID.String()
}

// SetRate inserts or replaces the rate of one currency
func (s *CurrencyService) SetRate(ctx context.Context, actor appshared.Actor, req SetRateRequest) (*RateResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCurrencyWrite); err != nil {
		return nil, err
	}
	rate, err := currency.NewRate(actor.TenantID, req.Currency, req.UnitsPerUSD)
	if err != nil {
		return nil, err
	}
	rate.UpdatedAt = s.deps.Now()
	if err := s.deps.Repos.Rates().Upsert(ctx, rate); err != nil {
		return nil, err
	}
	s.deps.Cache.Delete(ctx, RatesCacheKey(actor.TenantID))

	s.deps.Logger.Info("Currency rate set",
		zap.String("tenant_id", actor.TenantID.String()),
		zap.String("currency", rate.Currency.String()),
		zap.String("units_per_usd", rate.UnitsPerUSD.String()))
	resp := ToRateResponse(rate)
	return &resp, nil
}

// ListRates returns the tenant's rate table
func (s *CurrencyService) ListRates(ctx context.Context, actor appshared.Actor) ([]RateResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapCurrencyRead); err != nil {
		return nil, err
	}
	rates, err := s.deps.Repos.Rates().FindAllForTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	out := make([]RateResponse, len(rates))
	for i := range rates {
		out[i] = ToRateResponse(&rates[i])
	}
	return out, nil
}

// Converter returns a converter over the tenant's current rate table.
// It is an internal read used by aggregations and performs no permission check.
func (s *CurrencyService) Converter(ctx context.Context, tenantID uuid.UUID) (*currency.Converter, error) {
	key := RatesCacheKey(tenantID)
	if data, ok := s.deps.Cache.Get(ctx, key); ok {
		var cached map[string]decimal.Decimal
		if err := json.Unmarshal(data, &cached); err == nil {
			return currency.NewConverterFromMap(cached), nil
		}
	}

	rates, err := s.deps.Repos.Rates().FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	table := make(map[string]decimal.Decimal, len(rates))
	for _, r := range rates {
		table[r.Currency.String()] = r.UnitsPerUSD
	}
	if data, err := json.Marshal(table); err == nil {
		s.deps.Cache.Set(ctx, key, data, s.cacheTTL)
	}
	return currency.NewConverter(rates), nil
}
