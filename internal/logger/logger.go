package logger

import (
	"context"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/groupwarden/groupwarden/internal/config"
	"github.com/groupwarden/groupwarden/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger and optionally forwards structured records
// to a fluentd collector.
type Logger struct {
	*zap.SugaredLogger
	fluentdLogger *fluent.Fluent
	serviceName   string
}

// NewLogger creates a Logger from configuration.
func NewLogger(cfg *config.Configuration) (*Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Logging.Level == "debug" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.DisableStacktrace = true

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	var fluentdLogger *fluent.Fluent
	if cfg.Logging.FluentdEnabled && cfg.Logging.FluentdHost != "" && cfg.Logging.FluentdPort > 0 {
		fluentdLogger, err = fluent.New(fluent.Config{
			FluentHost:   cfg.Logging.FluentdHost,
			FluentPort:   cfg.Logging.FluentdPort,
			Async:        true,
			WriteTimeout: 3 * time.Second,
			MaxRetry:     5,
		})
		if err != nil {
			zapLogger.Sugar().Warnf("failed to initialize fluentd logger: %v, falling back to stdout only", err)
			fluentdLogger = nil
		}
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
		fluentdLogger: fluentdLogger,
		serviceName:   cfg.Deployment.Mode,
	}, nil
}

// NewNopLogger returns a logger that discards everything. Used in tests.
func NewNopLogger() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// WithContext returns a logger annotated with the request-scoped fields
// carried in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(
			"request_id", types.GetRequestID(ctx),
			"tenant_id", types.GetTenantID(ctx),
		),
		fluentdLogger: l.fluentdLogger,
		serviceName:   l.serviceName,
	}
}

func (l *Logger) Debugw(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
	l.forward("debug", msg, keysAndValues...)
}

func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
	l.forward("info", msg, keysAndValues...)
}

func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
	l.forward("warning", msg, keysAndValues...)
}

func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
	l.forward("error", msg, keysAndValues...)
}

// forward posts the record to fluentd without ever blocking the caller.
func (l *Logger) forward(level, msg string, keysAndValues ...interface{}) {
	if l.fluentdLogger == nil {
		return
	}

	record := map[string]interface{}{
		"level":     level,
		"message":   msg,
		"service":   l.serviceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			record[key] = keysAndValues[i+1]
		}
	}

	if err := l.fluentdLogger.Post("app.logs", record); err != nil {
		l.SugaredLogger.Warnf("failed to send log to fluentd: %v", err)
	}
}

// retryableHTTPLogger adapts Logger to go-retryablehttp's logging interface.
type retryableHTTPLogger struct {
	logger *Logger
}

// GetRetryableHTTPLogger returns a go-retryablehttp compatible logger.
func (l *Logger) GetRetryableHTTPLogger() *retryableHTTPLogger {
	return &retryableHTTPLogger{logger: l}
}

func (r *retryableHTTPLogger) Printf(format string, v ...interface{}) {
	r.logger.Debugf(format, v...)
}

// ginLogger adapts Logger to gin's io.Writer based logging.
type ginLogger struct {
	logger *Logger
}

// GetGinLogger returns a gin-compatible writer.
func (l *Logger) GetGinLogger() *ginLogger {
	return &ginLogger{logger: l}
}

func (g *ginLogger) Write(p []byte) (n int, err error) {
	g.logger.Info(string(p))
	return len(p), nil
}
