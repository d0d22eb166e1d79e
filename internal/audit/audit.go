package audit

import (
	"context"

	"go.uber.org/zap"
)

// Event records one access decision for the audit trail.
type Event struct {
	TenantID int64
	UserID   int64
	ModuleID string
	Allowed  bool
	Reason   string
}

// Recorder receives access decisions. The gate calls it after deciding; a
// recorder must never influence the decision itself.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// ZapRecorder writes decisions to the structured log.
type ZapRecorder struct {
	logger *zap.Logger
}

var _ Recorder = (*ZapRecorder)(nil)

func NewZapRecorder(logger *zap.Logger) *ZapRecorder {
	return &ZapRecorder{logger: logger}
}

func (r *ZapRecorder) Record(ctx context.Context, event Event) {
	fields := []zap.Field{
		zap.Int64("tenant_id", event.TenantID),
		zap.Int64("user_id", event.UserID),
		zap.String("module_id", event.ModuleID),
		zap.Bool("allowed", event.Allowed),
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	r.logger.Info("module access decision", fields...)
}
