package entities

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/internal/hub"
)

// AutoResetDelay is how long an event-driven binary sensor stays on after the
// last matching event.
var AutoResetDelay = 30 * time.Second

// BinarySensor turns on when its event type fires for its device and falls
// back to off after a dwell time. Each matching event restarts the timer.
type BinarySensor struct {
	deviceID  string
	eventType string
	bus       *hub.Bus
	events    chan hub.Event

	mux   sync.Mutex
	on    bool
	timer *time.Timer
	done  chan struct{}
}

func NewBinarySensor(bus *hub.Bus, deviceID, eventType string) *BinarySensor {
	s := &BinarySensor{
		deviceID:  deviceID,
		eventType: eventType,
		bus:       bus,
		events:    bus.Subscribe(hub.EventName(eventType)),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *BinarySensor) run() {
	defer close(s.done)
	for event := range s.events {
		if deviceID, _ := event.Data["device_id"].(string); deviceID == s.deviceID {
			s.trigger()
		}
	}
}

func (s *BinarySensor) trigger() {
	s.mux.Lock()
	defer s.mux.Unlock()
	log.Debugf("Binary sensor %s/%s triggered", s.deviceID, s.eventType)
	s.on = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(AutoResetDelay, s.reset)
}

func (s *BinarySensor) reset() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.on = false
	s.timer = nil
}

// IsOn reports the current sensor state.
func (s *BinarySensor) IsOn() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.on
}

// Close detaches the sensor from the bus and cancels any pending reset timer.
// The timer must not outlive the sensor, a leaked callback would flip state
// on an entity that is already gone.
func (s *BinarySensor) Close() {
	s.bus.Unsubscribe(s.events)
	<-s.done
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.on = false
}
