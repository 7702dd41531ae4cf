package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls SQL statement spans.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // keep bound query variables in spans; development only
	SlowQueryThresh time.Duration // statements above this are flagged db.slow_query
	DBSystem        string
}

// DefaultDBTracingConfig returns a disabled config with a 200ms slow threshold.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBSystemForDriver maps a configured database driver to its semantic-convention name.
func DBSystemForDriver(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}

// DBTracingPlugin installs otelgorm and annotates its spans with row counts,
// table names and slow-statement markers.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a DBTracingPlugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type queryStartKey struct{}

type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// around returns the positions just before and just after GORM's own
// callback for one SQL-running chain.
func around(db *gorm.DB, chain string) (before, after callbackRegistrar) {
	cb := db.Callback()
	anchor := "gorm:" + chain
	switch chain {
	case "create":
		return cb.Create().Before(anchor), cb.Create().After(anchor)
	case "query":
		return cb.Query().Before(anchor), cb.Query().After(anchor)
	case "update":
		return cb.Update().Before(anchor), cb.Update().After(anchor)
	case "delete":
		return cb.Delete().Before(anchor), cb.Delete().After(anchor)
	case "row":
		return cb.Row().Before(anchor), cb.Row().After(anchor)
	default:
		return cb.Raw().Before(anchor), cb.Raw().After(anchor)
	}
}

var sqlChains = []string{"create", "query", "update", "delete", "row", "raw"}

// RegisterOtelGorm installs the tracing callbacks on db. It is a no-op when
// tracing is disabled.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}

	for _, chain := range sqlChains {
		before, after := around(db, chain)
		if err := before.Register("parcel_tracing:start_"+chain, markQueryStart); err != nil {
			return fmt.Errorf("register %s start callback: %w", chain, err)
		}
		if err := after.Register("parcel_tracing:finish_"+chain, p.annotate); err != nil {
			return fmt.Errorf("register %s finish callback: %w", chain, err)
		}
	}

	p.logger.Info("Database tracing enabled",
		zap.String("db_system", p.config.DBSystem),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.Bool("log_full_sql", p.config.LogFullSQL),
	)
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (p *DBTracingPlugin) annotate(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
