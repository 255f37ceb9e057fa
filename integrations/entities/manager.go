package entities

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/integrations/cameras"
	"github.com/edgehive/motioneye-bridge/internal/hub"
)

// Group is the set of entities materialized for one device.
type Group struct {
	DeviceID string
	Name     string

	Camera     *CameraEntity
	Switches   []*Switch
	Motion     *BinarySensor
	FileStored *BinarySensor
	Actions    *ActionsSensor
}

// State is a snapshot of all entity values of one device, served by the API.
type State struct {
	DeviceID   string          `json:"device_id"`
	Name       string          `json:"name"`
	StreamURL  string          `json:"stream_url,omitempty"`
	Motion     bool            `json:"motion"`
	FileStored bool            `json:"file_stored"`
	Switches   map[string]bool `json:"switches"`
	Actions    []string        `json:"actions"`
}

func (g *Group) State() State {
	switches := make(map[string]bool, len(g.Switches))
	for _, sw := range g.Switches {
		switches[sw.Key()] = sw.IsOn()
	}
	return State{
		DeviceID:   g.DeviceID,
		Name:       g.Name,
		StreamURL:  g.Camera.StreamURL(),
		Motion:     g.Motion.IsOn(),
		FileStored: g.FileStored.IsOn(),
		Switches:   switches,
		Actions:    g.Actions.Actions(),
	}
}

// Switch finds a toggle by its config key.
func (g *Group) Switch(key string) *Switch {
	for _, sw := range g.Switches {
		if sw.Key() == key {
			return sw
		}
	}
	return nil
}

func (g *Group) close() {
	g.Motion.Close()
	g.FileStored.Close()
}

// Manager owns the entity lifecycle for one config entry. It listens to the
// camera add/remove signals the reconciler publishes and builds or tears down
// entity groups accordingly.
type Manager struct {
	entryID    string
	instance   *cameras.Instance
	bus        *hub.Bus
	dispatcher *hub.Dispatcher

	add    chan hub.CameraSignal
	remove chan hub.CameraSignal
	wg     sync.WaitGroup

	mux    sync.RWMutex
	groups map[string]*Group
}

func NewManager(instance *cameras.Instance, bus *hub.Bus, dispatcher *hub.Dispatcher) *Manager {
	return &Manager{
		entryID:    instance.ID,
		instance:   instance,
		bus:        bus,
		dispatcher: dispatcher,
		groups:     map[string]*Group{},
	}
}

// Start subscribes to the dispatcher. Must be called before the coordinator
// starts publishing, or the first signals are lost.
func (m *Manager) Start() {
	m.add = m.dispatcher.SubscribeAdd(m.entryID)
	m.remove = m.dispatcher.SubscribeRemove(m.entryID)
	m.wg.Add(2)
	go func() {
		defer m.wg.Done()
		for signal := range m.add {
			m.onAdd(signal)
		}
	}()
	go func() {
		defer m.wg.Done()
		for signal := range m.remove {
			m.onRemove(signal)
		}
	}()
}

func (m *Manager) onAdd(signal hub.CameraSignal) {
	camera := signal.Camera
	if camera == nil {
		return
	}
	group := &Group{
		DeviceID:   signal.DeviceID,
		Name:       camera.Name,
		Camera:     NewCameraEntity(m.instance, camera.ID),
		Motion:     NewBinarySensor(m.bus, signal.DeviceID, hub.EventMotionDetected),
		FileStored: NewBinarySensor(m.bus, signal.DeviceID, hub.EventFileStored),
		Actions:    NewActionsSensor(m.instance, camera.ID),
	}
	for _, key := range SwitchKeys {
		group.Switches = append(group.Switches, NewSwitch(m.instance, camera.ID, key))
	}

	m.mux.Lock()
	defer m.mux.Unlock()
	if old, ok := m.groups[signal.DeviceID]; ok {
		old.close()
	}
	m.groups[signal.DeviceID] = group
	log.Infof("Created entities for camera %q on entry %s", camera.Name, m.entryID)
}

func (m *Manager) onRemove(signal hub.CameraSignal) {
	m.mux.Lock()
	group, ok := m.groups[signal.DeviceID]
	delete(m.groups, signal.DeviceID)
	m.mux.Unlock()
	if ok {
		group.close()
		log.Infof("Removed entities for device %s on entry %s", signal.DeviceID, m.entryID)
	}
}

// Group returns the entity group of a device, nil if unknown to this entry.
func (m *Manager) Group(deviceID string) *Group {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return m.groups[deviceID]
}

// Stop unsubscribes from the dispatcher and closes every entity group.
func (m *Manager) Stop() {
	m.dispatcher.Unsubscribe(m.add)
	m.dispatcher.Unsubscribe(m.remove)
	m.wg.Wait()

	m.mux.Lock()
	defer m.mux.Unlock()
	for _, group := range m.groups {
		group.close()
	}
	m.groups = map[string]*Group{}
}
