package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"external_url": "http://bridge:8099",
		"log_level": "debug",
		"instances": [
			{"id": "home", "name": "Home", "url": "http://me:8765", "webhook_set": true, "poll_interval_sec": 10}
		]
	}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8099", config.ListenAddr, "default listen address applies")
	assert.Equal(t, "http://bridge:8099", config.ExternalURL)
	require.Len(t, config.Instances, 1)
	assert.Equal(t, 10*time.Second, config.Instances[0].PollInterval())
	assert.True(t, config.Instances[0].WebhookSet)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("BRIDGE_LISTEN_ADDR", ":9100")
	path := writeTempConfig(t, `{"listen_addr": ":8099"}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", config.ListenAddr)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeTempConfig(t, `not json`)
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestSecretManagerRoundTrip(t *testing.T) {
	key := "0123456789abcdef0123456789abcdef"

	sm := NewSecretManager(key)
	sm.LoadSecrets(map[string]string{"ADMIN_PASSWORD": "hunter2"})
	encrypted, err := sm.GetEncryptedSecrets()
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", encrypted["ADMIN_PASSWORD"])

	restored := NewSecretManager(key)
	require.NoError(t, restored.LoadEncryptedSecrets(encrypted))
	assert.Equal(t, "hunter2", restored.GetSecret("ADMIN_PASSWORD"))

	// unknown references fall back to the literal value
	assert.Equal(t, "plaintext", restored.GetSecret("plaintext"))
}

func TestEncryptStringRejectsShortKey(t *testing.T) {
	_, err := EncryptString("short", "text")
	assert.Error(t, err)
	_, err = DecryptString("short", "text")
	assert.Error(t, err)
}
