package internal

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// InstanceConfig describes one motionEye server the bridge connects to
// (a config entry).
type InstanceConfig struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`

	AdminUsername        string `json:"admin_username"`
	AdminPassword        string `json:"admin_password"`
	SurveillanceUsername string `json:"surveillance_username"`
	SurveillancePassword string `json:"surveillance_password"`

	// WebhookSet enables webhook provisioning; WebhookSetOverwrite also
	// replaces hooks that were configured by hand.
	WebhookSet          bool   `json:"webhook_set"`
	WebhookSetOverwrite bool   `json:"webhook_set_overwrite"`
	StreamURLTemplate   string `json:"stream_url_template"`

	PollIntervalSec int `json:"poll_interval_sec"`
}

// PollInterval returns the effective poll interval, zero when unset so the
// coordinator default applies.
func (c InstanceConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// StaticConfig is the bridge's file configuration. Environment variables
// prefixed with BRIDGE_ override the top level fields.
type StaticConfig struct {
	ListenAddr  string `json:"listen_addr" envconfig:"LISTEN_ADDR"`
	ExternalURL string `json:"external_url" envconfig:"EXTERNAL_URL"`

	LogLevel string `json:"log_level" envconfig:"LOG_LEVEL"`
	LogDir   string `json:"log_dir" envconfig:"LOG_DIR"`

	// Secrets holds encrypted values referenced by name from instance
	// credentials.
	Secrets map[string]string `json:"secrets"`

	Instances []InstanceConfig `json:"instances"`
}

// LoadConfig reads and parses the config file, then applies environment
// overrides.
func LoadConfig(path string) (*StaticConfig, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config file")
	}
	var config StaticConfig
	if err = json.Unmarshal(body, &config); err != nil {
		return nil, errors.Wrap(err, "incorrect config file format")
	}
	if err = envconfig.Process("bridge", &config); err != nil {
		return nil, errors.Wrap(err, "failed to apply env overrides")
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8099"
	}
	return &config, nil
}

// Save writes the config back, used by the gen_config and encrypt_config
// operations.
func (c *StaticConfig) Save(path string) error {
	body, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0644)
}
