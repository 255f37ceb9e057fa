package hub

import (
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Device is the hub's representation of one camera.
type Device struct {
	ID            string
	ConfigEntryID string
	Identifier    Identifier
	Name          string
	Manufacturer  string
	Model         string
}

// DeviceRegistry is the keyed device store. The bridge owns the store in this
// standalone deployment; integration code only ever holds device ids and
// identifiers, never the maps.
type DeviceRegistry struct {
	mux        sync.RWMutex
	byID       map[string]*Device
	byIdentity map[Identifier]*Device
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{
		byID:       map[string]*Device{},
		byIdentity: map[Identifier]*Device{},
	}
}

// deviceID derives the hub device id from the identifier. The id must be
// stable across restarts: it is embedded in the webhook URLs written into
// motionEye, and a fresh id per process would force a webhook rewrite on
// every camera after every restart.
func deviceID(identifier Identifier) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(identifier.Domain+":"+identifier.ID)).String()
}

// GetOrCreate returns the device registered under identifier, creating it on
// first sight. Creation is the only registry write during a reconciliation
// pass for cameras that are already known.
func (r *DeviceRegistry) GetOrCreate(configEntryID string, identifier Identifier, name, manufacturer, model string) *Device {
	r.mux.Lock()
	defer r.mux.Unlock()
	if device, ok := r.byIdentity[identifier]; ok {
		return device
	}
	device := &Device{
		ID:            deviceID(identifier),
		ConfigEntryID: configEntryID,
		Identifier:    identifier,
		Name:          name,
		Manufacturer:  manufacturer,
		Model:         model,
	}
	r.byID[device.ID] = device
	r.byIdentity[identifier] = device
	log.Infof("Registered device %s for camera %q", device.ID, name)
	return device
}

// Get returns a device by its hub id.
func (r *DeviceRegistry) Get(deviceID string) *Device {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.byID[deviceID]
}

// EntriesForConfigEntry lists all devices belonging to one config entry.
func (r *DeviceRegistry) EntriesForConfigEntry(configEntryID string) []*Device {
	r.mux.RLock()
	defer r.mux.RUnlock()
	var devices []*Device
	for _, device := range r.byID {
		if device.ConfigEntryID == configEntryID {
			devices = append(devices, device)
		}
	}
	return devices
}

// Remove deletes a device. Returns false if the device was already gone.
func (r *DeviceRegistry) Remove(deviceID string) bool {
	r.mux.Lock()
	defer r.mux.Unlock()
	device, ok := r.byID[deviceID]
	if !ok {
		return false
	}
	delete(r.byID, deviceID)
	delete(r.byIdentity, device.Identifier)
	log.Infof("Removed device %s (%q)", device.ID, device.Name)
	return true
}
