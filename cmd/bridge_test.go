package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, secret string) {
	t.Helper()
	body := `{"listen_addr":":0","secrets":{"CAM_PASSWORD":"` + secret + `"},"instances":[]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestReloadRefreshesSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, "old")

	bridge, err := NewBridge(path, "")
	require.NoError(t, err)
	assert.Equal(t, "old", bridge.secrets.GetSecret("CAM_PASSWORD"))

	// a rotated password in the config file must survive a live reload
	writeConfig(t, path, "new")
	bridge.Reload()
	assert.Equal(t, "new", bridge.secrets.GetSecret("CAM_PASSWORD"))
}

func TestReloadKeepsSecretsOnBrokenConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, "old")

	bridge, err := NewBridge(path, "")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	bridge.Reload()
	assert.Equal(t, "old", bridge.secrets.GetSecret("CAM_PASSWORD"))
}
