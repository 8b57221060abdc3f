package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInto_From_RoundTrip — логгер, положенный в контекст, достаётся обратно.
func TestInto_From_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := Into(context.Background(), lg)
	require.Same(t, lg, From(ctx))
}

// TestFrom_EmptyContext_ReturnsDefault — без логгера в контексте отдаём slog.Default().
func TestFrom_EmptyContext_ReturnsDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), From(context.Background()))
}

// TestFrom_NilLogger_ReturnsDefault — nil в контексте не должен попадать наружу.
func TestFrom_NilLogger_ReturnsDefault(t *testing.T) {
	t.Parallel()

	ctx := Into(context.Background(), nil)
	require.Same(t, slog.Default(), From(ctx))
}

// TestFrom_ChildLoggerAttrs — атрибуты request-scoped логгера доходят до записи.
func TestFrom_ChildLoggerAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "abc123")

	ctx := Into(context.Background(), lg)
	From(ctx).Info("ping")

	require.Contains(t, buf.String(), "request_id=abc123")
	require.Contains(t, buf.String(), "ping")
}
