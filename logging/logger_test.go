package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}

	return out
}

func TestLogger_Helpers(t *testing.T) {
	var buf bytes.Buffer
	l := newBufferLogger(&buf).WithContainer("sequence")
	ctx := context.Background()

	l.LogAppend(ctx, 3, 5, 5, 10)
	l.LogRemove(ctx, 3, 5, nil)
	l.LogRemove(ctx, 0, 1, errors.New("boom"))
	l.LogReplace(ctx, 4, 5, 2, 12, true)
	l.LogReindex(ctx, 17, 12)
	l.LogClose(ctx, 2)
	l.WithSlot(9).LogInvariant(ctx, 9, errors.New("desync"))
	l.LogSnapshot(ctx, "encoded", 12, 96, 60)

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 8)

	require.Equal(t, "segment appended", recs[0]["msg"])
	require.Equal(t, "sequence", recs[0]["container"])
	require.InDelta(t, 10, recs[0]["total"], 0)

	require.Equal(t, "segment removed", recs[1]["msg"])
	require.Equal(t, "segment removal rejected", recs[2]["msg"])
	require.Equal(t, "boom", recs[2]["error"])

	require.Equal(t, "slot replaced", recs[3]["msg"])
	require.Equal(t, true, recs[3]["index_adjusted"])

	require.Equal(t, "prefix index rebuilt", recs[4]["msg"])
	require.Equal(t, "container closed", recs[5]["msg"])

	require.Equal(t, "invariant violated", recs[6]["msg"])
	require.Equal(t, "ERROR", recs[6]["level"])

	require.Equal(t, "snapshot encoded", recs[7]["msg"])
	require.InDelta(t, 96, recs[7]["payload_bytes"], 0)
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	require.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogInvariant(context.Background(), 0, errors.New("ignored"))
}

func TestNewLoggerDefaults(t *testing.T) {
	require.NotNil(t, NewLogger(nil))
	require.NotNil(t, NewTextLogger(slog.LevelWarn))
	require.NotNil(t, NewJSONLogger(slog.LevelWarn))
}
