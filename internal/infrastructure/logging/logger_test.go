package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesToConfiguredPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.log")
	logger, err := New(Config{Level: "debug", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.ForComponent("router").Info("ready")
	require.NoError(t, logger.Sync())
	assert.FileExists(t, path)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, []string{"stderr"}, DefaultConfig().OutputPaths)
	assert.True(t, DevelopmentConfig().Development)
	assert.NotNil(t, NewDefault())
	assert.NotNil(t, NewNop())
}
