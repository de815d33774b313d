package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-calm/internal/observability"
)

func TestSetupAndRequestID(t *testing.T) {
	t.Cleanup(func() { _ = observability.Setup(io.Discard, "info", "json") })

	var buf bytes.Buffer
	require.NoError(t, observability.Setup(&buf, "debug", "json"))

	ctx := observability.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", observability.RequestID(ctx))
	observability.LoggerFromContext(ctx).Debug("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "v", line["k"])
}

func TestSetupLevelFilters(t *testing.T) {
	t.Cleanup(func() { _ = observability.Setup(io.Discard, "info", "json") })

	var buf bytes.Buffer
	require.NoError(t, observability.Setup(&buf, "warn", "text"))
	observability.Logger().Info("quiet")
	assert.Empty(t, buf.String())
	observability.Logger().Warn("loud")
	assert.Contains(t, buf.String(), "msg=loud")
}

func TestSetupRejectsBadInput(t *testing.T) {
	assert.Error(t, observability.Setup(io.Discard, "chatty", "json"))
	assert.Error(t, observability.Setup(io.Discard, "info", "xml"))
}
