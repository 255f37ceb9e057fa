package main

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/api"
	"github.com/edgehive/motioneye-bridge/integrations/cameras"
	"github.com/edgehive/motioneye-bridge/integrations/entities"
	"github.com/edgehive/motioneye-bridge/internal"
	"github.com/edgehive/motioneye-bridge/internal/hub"
	"github.com/edgehive/motioneye-bridge/mediasource"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

const loginTimeout = 10 * time.Second

// Bridge assembles and supervises all runtime services: the hub primitives,
// one camera integration per configured motionEye server, the media source
// and the API server. Config file changes trigger a full instance reload.
type Bridge struct {
	configPath    string
	encryptionKey string
	secrets       *internal.SecretManager

	bus        *hub.Bus
	dispatcher *hub.Dispatcher
	devices    *hub.DeviceRegistry
	instances  *cameras.InstanceRegistry
	entityReg  *entities.Registry
	states     *internal.StateTracker
	server     *api.Server
	watcher    *internal.ConfigWatcher

	mux    sync.Mutex
	config *internal.StaticConfig
}

func NewBridge(configPath, encryptionKey string) (*Bridge, error) {
	config, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	b := &Bridge{
		configPath:    configPath,
		encryptionKey: encryptionKey,
		config:        config,
		bus:           hub.NewBus(),
		dispatcher:    hub.NewDispatcher(),
		devices:       hub.NewDeviceRegistry(),
		instances:     cameras.NewInstanceRegistry(),
		entityReg:     entities.NewRegistry(),
		states:        internal.NewStateTracker(),
	}
	if err = b.loadSecrets(config); err != nil {
		return nil, err
	}
	source := mediasource.NewSource(b.instances, b.devices)
	b.server = api.NewServer(config.ListenAddr, b.bus, b.devices, b.instances, source, b.entityReg, b.states)
	return b, nil
}

// loadSecrets replaces the secret store with the secrets block of config.
// Called at startup and again on every config reload so password changes take
// effect without a process restart.
func (b *Bridge) loadSecrets(config *internal.StaticConfig) error {
	secrets := internal.NewSecretManager(b.encryptionKey)
	if b.encryptionKey != "" {
		if err := secrets.LoadEncryptedSecrets(config.Secrets); err != nil {
			return err
		}
	} else {
		secrets.LoadSecrets(config.Secrets)
	}
	b.secrets = secrets
	return nil
}

// ExternalURL is read per provisioning pass so a config reload takes effect
// without restarting the coordinators.
func (b *Bridge) ExternalURL() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.config.ExternalURL
}

// Start brings up all configured instances, the API server and the config
// watcher.
func (b *Bridge) Start() error {
	b.mux.Lock()
	instanceConfigs := b.config.Instances
	b.mux.Unlock()

	for _, cfg := range instanceConfigs {
		b.startInstance(cfg)
	}
	b.server.Start()

	watcher, err := internal.NewConfigWatcher(b.configPath, b.Reload)
	if err != nil {
		log.Errorf("Failed to start config watcher, live reload disabled : %s", err.Error())
	} else {
		b.watcher = watcher
	}
	return nil
}

func (b *Bridge) startInstance(cfg internal.InstanceConfig) {
	log.Infof("Starting motionEye instance %s (%s)", cfg.ID, cfg.URL)
	b.states.SetInstanceTargetState(cfg.ID, internal.InstanceStateRunning)
	b.states.SetInstanceCurrentState(cfg.ID, internal.InstanceStateStarting)

	client := motioneye.NewClient(
		cfg.URL,
		cfg.AdminUsername, b.secrets.GetSecret(cfg.AdminPassword),
		cfg.SurveillanceUsername, b.secrets.GetSecret(cfg.SurveillancePassword),
	)
	ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
	if err := client.Login(ctx); err != nil {
		// The coordinator keeps retrying; auth failures need a config fix.
		log.Errorf("Initial login to %s failed : %s", cfg.URL, err.Error())
	}
	cancel()

	provisioner := cameras.NewProvisioner(cfg.ID, b.ExternalURL, cfg.WebhookSet, cfg.WebhookSetOverwrite)
	coordinator := cameras.NewCoordinator(cfg.ID, client, cfg.PollInterval())
	instance := &cameras.Instance{
		ID:                cfg.ID,
		Title:             cfg.Name,
		URL:               cfg.URL,
		Client:            client,
		Coordinator:       coordinator,
		StreamURLTemplate: cfg.StreamURLTemplate,
	}

	reconciler := cameras.NewReconciler(cfg.ID, b.devices, b.dispatcher, provisioner, client)
	coordinator.AddListener(reconciler.Process)

	manager := entities.NewManager(instance, b.bus, b.dispatcher)
	manager.Start()

	b.entityReg.Add(manager)
	b.instances.Add(instance)
	coordinator.Start()
	b.states.SetInstanceCurrentState(cfg.ID, internal.InstanceStateRunning)
}

func (b *Bridge) stopInstance(entryID string) {
	log.Infof("Stopping motionEye instance %s", entryID)
	b.states.SetInstanceTargetState(entryID, internal.InstanceStateStopped)
	b.states.SetInstanceCurrentState(entryID, internal.InstanceStateShutdown)

	if instance := b.instances.Remove(entryID); instance != nil {
		instance.Coordinator.Stop()
	}
	if manager := b.entityReg.Remove(entryID); manager != nil {
		manager.Stop()
	}
	for _, device := range b.devices.EntriesForConfigEntry(entryID) {
		b.devices.Remove(device.ID)
	}
	b.states.SetInstanceCurrentState(entryID, internal.InstanceStateStopped)
}

// Reload reloads the config file and rebuilds all instances. Coordinators are
// torn down and recreated; device registries are rebuilt from the first poll.
func (b *Bridge) Reload() {
	log.Info("Reloading configuration")
	config, err := internal.LoadConfig(b.configPath)
	if err != nil {
		log.Errorf("Config reload aborted : %s", err.Error())
		return
	}
	if err = b.loadSecrets(config); err != nil {
		log.Errorf("Config reload aborted, failed to decrypt secrets : %s", err.Error())
		return
	}
	for _, instance := range b.instances.List() {
		b.stopInstance(instance.ID)
		b.states.WaitForInstanceTargetState(instance.ID, 30*time.Second)
	}
	b.mux.Lock()
	b.config = config
	b.mux.Unlock()
	for _, cfg := range config.Instances {
		b.startInstance(cfg)
	}
}

// Stop tears everything down in dependency order.
func (b *Bridge) Stop() {
	if b.watcher != nil {
		b.watcher.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.server.Shutdown(ctx); err != nil {
		log.Errorf("API server shutdown failed : %s", err.Error())
	}
	for _, instance := range b.instances.List() {
		b.stopInstance(instance.ID)
	}
	b.dispatcher.Shutdown()
	b.bus.Shutdown()
}
