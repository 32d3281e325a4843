package telemetry

import (
	"errors"
	"time"

	"github.com/travelerp/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const queryStartKey = "telemetry:query_start"

// DBTracingPlugin registers otelgorm and flags slow statements on their spans
// and in the slow query counter.
type DBTracingPlugin struct {
	config  config.TelemetryConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewDBTracingPlugin creates the plugin. metrics may be nil.
func NewDBTracingPlugin(cfg config.TelemetryConfig, metrics *Metrics, logger *zap.Logger) *DBTracingPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, metrics: metrics, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string { return "telemetry:db" }

// Initialize implements gorm.Plugin so the plugin can be passed to db.Use
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error { return p.Register(db) }

var _ gorm.Plugin = (*DBTracingPlugin)(nil)

// Register installs the callbacks on db. Slow query detection is installed
// even when tracing is off so the counter keeps working.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if p.config.Enabled && p.config.DBTraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
		if !p.config.DBLogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
		p.logger.Info("Database tracing enabled",
			zap.Bool("log_full_sql", p.config.DBLogFullSQL),
			zap.Duration("slow_query_threshold", p.config.DBSlowQueryThresh))
	}

	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("telemetry:before_create", markStart); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("telemetry:after_create", p.afterStatement); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("telemetry:before_query", markStart); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("telemetry:after_query", p.afterStatement); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("telemetry:before_update", markStart); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("telemetry:after_update", p.afterStatement); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", markStart); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("telemetry:after_delete", p.afterStatement); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("telemetry:before_row", markStart); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("telemetry:after_row", p.afterStatement); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", markStart); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("telemetry:after_raw", p.afterStatement)
}

func markStart(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func (p *DBTracingPlugin) afterStatement(db *gorm.DB) {
	v, ok := db.InstanceGet(queryStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)

	span := trace.SpanFromContext(db.Statement.Context)
	if span.IsRecording() {
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			RecordError(span, db.Error)
		}
	}

	thresh := p.config.DBSlowQueryThresh
	if thresh <= 0 || elapsed <= thresh {
		return
	}
	if p.metrics != nil {
		p.metrics.SlowQuery(db.Statement.Table)
	}
	if span.IsRecording() {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
