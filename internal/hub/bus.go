package hub

import (
	"github.com/cskr/pubsub/v2"
	log "github.com/sirupsen/logrus"
)

// topicAll receives a copy of every fired event, used by stream consumers
// that want the whole firehose (e.g. the websocket event stream).
const topicAll = "*"

// Event is one hub event, e.g. "motioneye.motion_detected" with the webhook
// payload merged in.
type Event struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// Bus is the hub event bus. Subscribers get their own buffered channel;
// slow subscribers block publishers once the buffer fills, same trade-off
// the upstream pubsub package documents.
type Bus struct {
	ps *pubsub.PubSub[string, Event]
}

func NewBus() *Bus {
	return &Bus{ps: pubsub.New[string, Event](16)}
}

// Fire publishes an event to subscribers of its type and to firehose
// subscribers.
func (b *Bus) Fire(eventType string, data map[string]interface{}) {
	log.Debugf("Firing event %s", eventType)
	b.ps.Pub(Event{Type: eventType, Data: data}, eventType, topicAll)
}

// Subscribe returns a channel delivering events of the given types.
func (b *Bus) Subscribe(eventTypes ...string) chan Event {
	return b.ps.Sub(eventTypes...)
}

// SubscribeAll returns a channel delivering every event.
func (b *Bus) SubscribeAll() chan Event {
	return b.ps.Sub(topicAll)
}

// Unsubscribe detaches a channel from all its topics and drains it.
func (b *Bus) Unsubscribe(ch chan Event) {
	go b.ps.Unsub(ch)
	for range ch {
	}
}

// Shutdown closes the bus and all subscriber channels.
func (b *Bus) Shutdown() {
	b.ps.Shutdown()
}
