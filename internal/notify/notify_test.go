package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/core"
	applog "storefront/internal/log"
)

func TestMultiFansOutInOrder(t *testing.T) {
	var order []string
	a := Func(func(_ context.Context, n core.Notification) { order = append(order, "a:"+n.Message) })
	b := &Recorder{}

	Multi{a, nil, b}.Notify(context.Background(), core.Success("saved"))

	assert.Equal(t, []string{"a:saved"}, order)
	assert.Equal(t, []core.Notification{core.Success("saved")}, b.All())
}

func TestRecorderReset(t *testing.T) {
	r := &Recorder{}
	r.Notify(context.Background(), core.Info("one"))
	r.Notify(context.Background(), core.Error("two"))
	require.Equal(t, 2, r.Len())

	r.Reset()
	assert.Zero(t, r.Len())
	assert.Empty(t, r.All())
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(applog.New(applog.Config{Level: slog.LevelDebug, Output: &buf}), "sales")

	l.Notify(context.Background(), core.Success("Sale added"))
	l.Notify(context.Background(), core.Error(core.MsgAllFieldsRequired))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "editor_kind=sales")
	assert.Contains(t, lines[1], "level=WARN")
	assert.Contains(t, lines[1], "notification_kind=error")
}

func TestDiscardIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Notify(context.Background(), core.Warning("ignored"))
	})
}
