// Package logger configures the application's logging and telemetry.
//
// It builds the zerolog root logger and integrates with New Relic,
// forwarding logs, metrics, and traces when a license key is
// configured. Without one, everything degrades to plain local logging.
package logger

import (
	"os"
	"time"

	"github.com/agamjotsodhi/jobly/internal/config"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerService owns the New Relic application and the root logger
// built on top of it. The application is nil when New Relic is not
// configured; callers must treat it as optional.
type LoggerService struct {
	app *newrelic.Application
	log zerolog.Logger
}

// NewLoggerService initializes New Relic (when configured) and builds
// the root logger. New Relic failures are not fatal: the service logs
// the problem and continues without APM.
func NewLoggerService(cfg *config.Config) *LoggerService {
	service := &LoggerService{}

	obs := cfg.Observability

	if obs.NewRelic.LicenseKey != "" {
		opts := []newrelic.ConfigOption{
			newrelic.ConfigAppName(obs.ServiceName),
			newrelic.ConfigLicense(obs.NewRelic.LicenseKey),
			newrelic.ConfigAppLogForwardingEnabled(obs.NewRelic.AppLogForwardingEnabled),
			newrelic.ConfigDistributedTracerEnabled(obs.NewRelic.DistributedTracingEnabled),
		}
		if obs.NewRelic.DebugLogging {
			opts = append(opts, newrelic.ConfigDebugLogger(os.Stdout))
		}

		app, err := newrelic.NewApplication(opts...)
		if err != nil {
			// Fall through with a nil app; telemetry is optional.
			bootLog := bootstrapLogger()
			bootLog.Error().Err(err).Msg("failed to initialize New Relic, continuing without APM")
		} else {
			service.app = app
		}
	}

	service.log = newRootLogger(obs, service.app)

	return service
}

// Logger returns the root application logger.
func (s *LoggerService) Logger() *zerolog.Logger {
	return &s.log
}

// GetApplication returns the New Relic application, or nil when APM is
// not configured.
func (s *LoggerService) GetApplication() *newrelic.Application {
	if s == nil {
		return nil
	}
	return s.app
}

// Shutdown flushes buffered telemetry. Safe to call with no app.
func (s *LoggerService) Shutdown(timeout time.Duration) {
	if s != nil && s.app != nil {
		s.app.Shutdown(timeout)
	}
}

// newRootLogger builds the zerolog root logger per the observability
// config: console format for humans, JSON for pipelines. With an
// active New Relic app and JSON output, logs are routed through the
// zerologWriter so they carry linking metadata and get forwarded.
func newRootLogger(obs *config.ObservabilityConfig, app *newrelic.Application) zerolog.Logger {
	level, err := zerolog.ParseLevel(obs.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if obs.Logging.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else if app != nil && obs.NewRelic.AppLogForwardingEnabled {
		logger = zerolog.New(zerologWriter.New(os.Stdout, app))
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("env", obs.Environment).
		Logger()
}

// bootstrapLogger is used before the root logger exists.
func bootstrapLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// WithTraceContext returns a copy of the logger enriched with trace.id
// and span.id from the transaction, so log lines correlate with traces.
// A nil transaction returns the logger unchanged.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	md := txn.GetTraceMetadata()
	logCtx := logger.With()
	if md.TraceID != "" {
		logCtx = logCtx.Str("trace.id", md.TraceID)
	}
	if md.SpanID != "" {
		logCtx = logCtx.Str("span.id", md.SpanID)
	}
	return logCtx.Logger()
}

// NewPgxLogger builds the logger the SQL tracer writes to. Console
// format regardless of the root logger: query logging is a local
// debugging aid, not pipeline input.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		Level(level).
		With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the app log level to the pgx tracelog level
// so SQL logging verbosity follows the global setting.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelInfo
	}
}
