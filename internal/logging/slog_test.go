package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(t *testing.T) (*TextLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewTextLogger(slog.New(h)), &buf
}

func TestTextLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=dbg a=1",
		"level=INFO msg=inf b=2",
		"level=WARN msg=wrn c=3",
		"level=ERROR msg=err d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextLogger_WithAddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "session").Info(context.Background(), "changed", "logged_in", true)

	assert.Contains(t, buf.String(), "component=session")
	assert.Contains(t, buf.String(), "logged_in=true")
}

func TestNew_SelectsBackend(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("text", "debug", &buf)
	assert.NoError(t, err)
	assert.IsType(t, &TextLogger{}, l)

	l, err = New("json", "warn", &buf)
	assert.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)

	_, err = New("xml", "info", &buf)
	assert.Error(t, err)

	_, err = New("text", "loud", &buf)
	assert.Error(t, err)
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("", "warn", &buf)
	assert.NoError(t, err)

	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.With("k", "v").Error(context.TODO(), "x")
	})
}
