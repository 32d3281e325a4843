package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	appshared "github.com/travelerp/backend/internal/application/shared"
	"github.com/travelerp/backend/internal/domain/currency"
	"github.com/travelerp/backend/internal/domain/report"
	"github.com/travelerp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ConverterSource hands out a tenant's currency converter
type ConverterSource interface {
	Converter(ctx context.Context, tenantID uuid.UUID) (*currency.Converter, error)
}

// SummaryQuery selects the report window
type SummaryQuery struct {
	From        time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To          time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	Granularity string    `form:"granularity"`
}

// PlatformOverviewResponse lists every tenant with its activity
type PlatformOverviewResponse struct {
	Tenants     []report.TenantOverview `json:"tenants"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// ReportService provides application-level report operations
type ReportService struct {
	deps  appshared.Deps
	rates ConverterSource
}

// NewReportService creates a new ReportService
func NewReportService(deps appshared.Deps, rates ConverterSource) *ReportService {
	return &ReportService{deps: deps.WithDefaults(), rates: rates}
}

// Summary aggregates the tenant's ledger into one USD row per period
func (s *ReportService) Summary(ctx context.Context, actor appshared.Actor, q SummaryQuery) (*report.Summary, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "summary")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, actor.TenantID.String(),
		"report.granularity", q.Granularity,
	)

	if err := s.deps.Begin(ctx, actor, appshared.CapReportRead); err != nil {
		return nil, err
	}
	g, err := report.ParseGranularity(q.Granularity)
	if err != nil {
		return nil, err
	}
	periods, err := report.BuildPeriods(q.From, q.To, g)
	if err != nil {
		return nil, err
	}
	start, end := report.Bounds(periods)

	in, err := s.deps.Repos.Reports().LoadInputs(ctx, actor.TenantID, start, end)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	conv, err := s.rates.Converter(ctx, actor.TenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	summary := report.Aggregate(periods, g, *in, conv)
	return &summary, nil
}

// PlatformOverview is the cross-tenant view for platform administrators.
// Every tenant's receivables are converted with that tenant's own rates.
func (s *ReportService) PlatformOverview(ctx context.Context, actor appshared.Actor) (*PlatformOverviewResponse, error) {
	if err := s.deps.Begin(ctx, actor, appshared.CapPlatformAdmin); err != nil {
		return nil, err
	}
	activity, err := s.deps.Repos.Reports().TenantActivity(ctx)
	if err != nil {
		return nil, err
	}
	resp := &PlatformOverviewResponse{
		Tenants:     make([]report.TenantOverview, 0, len(activity)),
		GeneratedAt: s.deps.Now(),
	}
	for _, a := range activity {
		conv, err := s.rates.Converter(ctx, a.TenantID)
		if err != nil {
			return nil, err
		}
		resp.Tenants = append(resp.Tenants, report.Overview(a, conv))
	}
	s.deps.Logger.Info("Platform overview generated",
		zap.String("user_id", actor.UserID.String()),
		zap.Int("tenants", len(resp.Tenants)))
	return resp, nil
}
