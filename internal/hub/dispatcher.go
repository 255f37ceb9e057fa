package hub

import (
	"github.com/cskr/pubsub/v2"

	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// CameraSignal announces a camera that was materialized as a device, or a
// device that is being torn down.
type CameraSignal struct {
	ConfigEntryID string
	DeviceID      string
	Camera        *motioneye.Camera
}

// Dispatcher carries camera add/remove signals from the reconciler to the
// entity factories, scoped per config entry.
type Dispatcher struct {
	ps *pubsub.PubSub[string, CameraSignal]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{ps: pubsub.New[string, CameraSignal](16)}
}

func addTopic(configEntryID string) string    { return "add." + configEntryID }
func removeTopic(configEntryID string) string { return "remove." + configEntryID }

// SubscribeAdd delivers one signal per camera added under the config entry.
func (d *Dispatcher) SubscribeAdd(configEntryID string) chan CameraSignal {
	return d.ps.Sub(addTopic(configEntryID))
}

// SubscribeRemove delivers one signal per device removed under the config entry.
func (d *Dispatcher) SubscribeRemove(configEntryID string) chan CameraSignal {
	return d.ps.Sub(removeTopic(configEntryID))
}

func (d *Dispatcher) PublishAdd(signal CameraSignal) {
	d.ps.Pub(signal, addTopic(signal.ConfigEntryID))
}

func (d *Dispatcher) PublishRemove(signal CameraSignal) {
	d.ps.Pub(signal, removeTopic(signal.ConfigEntryID))
}

// Unsubscribe detaches a channel and drains it.
func (d *Dispatcher) Unsubscribe(ch chan CameraSignal) {
	go d.ps.Unsub(ch)
	for range ch {
	}
}

// Shutdown closes the dispatcher and all subscriber channels.
func (d *Dispatcher) Shutdown() {
	d.ps.Shutdown()
}
