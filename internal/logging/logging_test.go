package logging_test

import (
	"bytes"
	"testing"

	"glade/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() {
		_ = logging.SetLevel("info")
	})

	require.NoError(t, logging.SetLevel("warn"))
	logging.Info("hidden %d", 1)
	assert.Empty(t, buf.String())

	logging.Warn("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	assert.Error(t, logging.SetLevel("chatty"))
}
