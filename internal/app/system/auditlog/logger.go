// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/mediateam/internal/app/system/metrics"
	"github.com/dalemusser/mediateam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Modes select where activity is recorded.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds activity logging configuration.
type Config struct {
	Mode string
}

// Writer persists activity records.
type Writer interface {
	Insert(ctx context.Context, a models.AdminActivity) (models.AdminActivity, error)
}

// Entry describes one admin action to record.
type Entry struct {
	AdminID     primitive.ObjectID
	Action      models.ActivityAction
	Target      models.Target
	Description string
	Metadata    map[string]any
	IPAddress   string
}

// Outcome of a Log call.
type Outcome int

const (
	Skipped Outcome = iota // disabled by config
	Logged
	Failed
)

// Result reports what happened to an activity record. A Failed result
// never stops the caller; it exists so the condition can be observed.
type Result struct {
	Outcome Outcome
	Record  *models.AdminActivity
	Err     error
}

// OK reports whether the record was stored.
func (r Result) OK() bool { return r.Outcome == Logged }

// Logger records admin activity. Storage failures are logged and counted
// but never returned as errors.
type Logger struct {
	store  Writer
	zapLog *zap.Logger
	config Config
	now    func() time.Time
}

// New creates a new activity Logger.
func New(store Writer, zapLog *zap.Logger, config Config) *Logger {
	if config.Mode == "" {
		config.Mode = ModeAll
	}
	return &Logger{store: store, zapLog: zapLog, config: config, now: time.Now}
}

// Log records an admin action according to the configured mode.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, e Entry) Result {
	if l == nil || l.config.Mode == ModeOff {
		return Result{Outcome: Skipped}
	}

	rec := models.AdminActivity{
		ID:          primitive.NewObjectID(),
		AdminID:     e.AdminID,
		Action:      e.Action,
		Target:      e.Target,
		Description: e.Description,
		Metadata:    e.Metadata,
		IPAddress:   e.IPAddress,
		CreatedAt:   l.now().UTC(),
	}

	if l.config.Mode == ModeAll || l.config.Mode == ModeLog {
		l.logToZap(rec)
	}
	if l.config.Mode == ModeLog {
		metrics.ActivityRecorded(metrics.OutcomeLogged)
		return Result{Outcome: Logged, Record: &rec}
	}

	saved, err := l.store.Insert(ctx, rec)
	if err != nil {
		l.zapLog.Error("failed to store admin activity",
			zap.Error(err),
			zap.String("action", string(e.Action)),
			zap.String("target_kind", string(e.Target.Kind)),
			zap.String("admin_id", e.AdminID.Hex()))
		metrics.ActivityRecorded(metrics.OutcomeFailed)
		return Result{Outcome: Failed, Err: err}
	}
	metrics.ActivityRecorded(metrics.OutcomeLogged)
	return Result{Outcome: Logged, Record: &saved}
}

// LogRequest is Log with the client IP taken from r.
func (l *Logger) LogRequest(r *http.Request, e Entry) Result {
	if e.IPAddress == "" {
		e.IPAddress = ClientIP(r)
	}
	return l.Log(r.Context(), e)
}

func (l *Logger) logToZap(a models.AdminActivity) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("action", string(a.Action)),
		zap.String("admin_id", a.AdminID.Hex()),
		zap.String("target_kind", string(a.Target.Kind)),
		zap.String("ip", a.IPAddress),
		zap.String("description", a.Description),
	}
	if a.Target.ID != nil {
		fields = append(fields, zap.String("target_id", a.Target.ID.Hex()))
	}
	l.zapLog.Info("admin activity", fields...)
}

// ClientIP returns the caller's address without port, preferring the
// first X-Forwarded-For hop.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// TargetOf builds a target reference for kind and id.
func TargetOf(kind models.TargetKind, id primitive.ObjectID) models.Target {
	return models.Target{Kind: kind, ID: &id}
}

// SystemTarget is the target of actions that are not about one record.
func SystemTarget() models.Target {
	return models.Target{Kind: models.TargetSystem}
}
