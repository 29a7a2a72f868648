// Package notify delivers editor notifications to whatever surface shows
// them. Delivery is fire-and-forget: nothing reports back to the caller.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"storefront/internal/core"
	applog "storefront/internal/log"
)

// Notifier receives notifications. Implementations must not block the caller
// for long and must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n core.Notification)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, n core.Notification)

func (f Func) Notify(ctx context.Context, n core.Notification) { f(ctx, n) }

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, core.Notification) {})

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n core.Notification) {
	for _, nt := range m {
		if nt != nil {
			nt.Notify(ctx, n)
		}
	}
}

// Logger writes each notification as a structured log record. Errors are
// logged at warn level since they are user mistakes, not faults.
type Logger struct {
	logger *applog.Logger
	kind   string
}

// NewLogger returns a log sink tagged with the editor kind.
func NewLogger(logger *applog.Logger, kind string) *Logger {
	return &Logger{logger: logger.WithComponent(applog.ComponentNotify), kind: kind}
}

func (l *Logger) Notify(ctx context.Context, n core.Notification) {
	level := slog.LevelInfo
	if n.Kind == core.NotifyError || n.Kind == core.NotifyWarning {
		level = slog.LevelWarn
	}
	fields := applog.NewFields().WithEditor(l.kind, 0)
	fields[applog.FieldNotifyKind] = string(n.Kind)
	fields[applog.FieldNotifyMsg] = n.Message
	l.logger.Emit(ctx, level, "Notification emitted", fields)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []core.Notification
}

func (r *Recorder) Notify(_ context.Context, n core.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []core.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Notification(nil), r.items...)
}

// Len returns the number of recorded notifications.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
