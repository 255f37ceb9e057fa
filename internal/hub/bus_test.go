package hub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToTypeAndFirehoseSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	typed := bus.Subscribe(EventName(EventMotionDetected))
	all := bus.SubscribeAll()

	bus.Fire(EventName(EventMotionDetected), map[string]interface{}{"device_id": "d1"})

	select {
	case event := <-typed:
		assert.Equal(t, "d1", event.Data["device_id"])
	case <-time.After(time.Second):
		t.Fatal("typed subscriber did not receive event")
	}
	select {
	case event := <-all:
		require.Equal(t, EventName(EventMotionDetected), event.Type)
	case <-time.After(time.Second):
		t.Fatal("firehose subscriber did not receive event")
	}
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	defer bus.Shutdown()

	ch := bus.Subscribe(EventName(EventFileStored))
	bus.Unsubscribe(ch)
	// must not block or panic
	bus.Fire(EventName(EventFileStored), nil)
}
