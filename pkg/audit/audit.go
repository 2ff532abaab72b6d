// Package audit records security-relevant events (login attempts, admin
// actions, database resets) as structured JSON, separate from the request
// log.
package audit

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType classifies an audit event
type EventType string

const (
	EventLoginSuccess   EventType = "login_success"
	EventLoginFailed    EventType = "login_failed"
	EventRegistered     EventType = "user_registered"
	EventVerification   EventType = "verification_toggled"
	EventSuspension     EventType = "suspension_toggled"
	EventDatabaseReset  EventType = "database_reset"
	EventSyncRoomJoined EventType = "sync_room_joined"
	EventSyncRoomLeft   EventType = "sync_room_left"
)

// Logger wraps zap for audit events.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
}

var defaultLogger *Logger

// Init builds the audit logger. Falls back to a plain production logger when
// the config fails.
func Init(serviceName string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	defaultLogger = &Logger{zapLogger: logger, serviceName: serviceName}
	return defaultLogger
}

// Default returns the initialized logger, initializing lazily if needed.
func Default() *Logger {
	if defaultLogger == nil {
		return Init("meup-backend")
	}
	return defaultLogger
}

// Event emits one audit record. Subject is the acted-on identity (email or
// user id); fields carry event-specific detail.
func (l *Logger) Event(event EventType, subject string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("event", string(event)),
		zap.String("subject", subject),
		zap.Time("at", time.Now().UTC()),
	}
	l.zapLogger.Info("audit", append(base, fields...)...)
}

// Sync flushes buffered entries; call on shutdown.
func (l *Logger) Sync() {
	_ = l.zapLogger.Sync()
}
