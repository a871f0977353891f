package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger, err := setup(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "post_id", 7)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"post_id":7`)
}

func TestSetupRejectsUnknownValues(t *testing.T) {
	_, err := setup(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = setup(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
