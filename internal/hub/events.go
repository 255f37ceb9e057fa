package hub

// Event types emitted by the bridge. The full hub event name is
// "{domain}.{event type}".
const (
	EventMotionDetected = "motion_detected"
	EventFileStored     = "file_stored"
)

// EventName returns the fully qualified hub event name for an event type.
func EventName(eventType string) string {
	return Domain + "." + eventType
}

// KnownEventType reports whether the bridge emits this event type.
func KnownEventType(eventType string) bool {
	return eventType == EventMotionDetected || eventType == EventFileStored
}
