package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_InjectsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newWithWriter(&buf, Config{})

	ctx := WithRequestID(context.Background(), "req-1")
	log.InfoContext(ctx, "invoice sent", slog.String("client_email", "a@x.com"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "req-1", rec["request_id"])
	require.Equal(t, "a@x.com", rec["client_email"])
	require.Equal(t, "invoice sent", rec["msg"])
}

func TestNew_WithoutRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newWithWriter(&buf, Config{}).Info("started")

	require.NotContains(t, buf.String(), "request_id")
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newWithWriter(&buf, Config{Level: "warn"})

	log.Info("hidden")
	log.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFanout_SendsToEnabledHandlers(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	h := fanout{
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	log := slog.New(h).With(slog.String("batch_id", "b1"))

	log.Info("info")
	log.Error("boom")

	require.Contains(t, a.String(), "info")
	require.Contains(t, a.String(), "boom")
	require.NotContains(t, b.String(), "info")
	require.Contains(t, b.String(), "boom")
	require.Contains(t, b.String(), "b1")
}

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sentry unreachable")
}

func TestFanout_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	h := fanout{
		failingHandler{slog.NewJSONHandler(io.Discard, nil)},
		slog.NewJSONHandler(&out, nil),
	}

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "invoice failed", 0))

	require.ErrorContains(t, err, "sentry unreachable")
	require.Contains(t, out.String(), "invoice failed")
}

func TestRequestIDHandler_KeepsIDThroughWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(requestIDHandler{slog.NewJSONHandler(&buf, nil)}).
		WithGroup("dispatch").
		With(slog.String("batch_id", "b1"))

	log.InfoContext(WithRequestID(context.Background(), "req-9"), "invoice sent")

	require.Contains(t, buf.String(), `"request_id":"req-9"`)
	require.Contains(t, buf.String(), `"batch_id":"b1"`)
}
