package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceIdentifierRoundTrip(t *testing.T) {
	id := DeviceIdentifier("entry-1", 42)
	assert.Equal(t, Identifier{Domain: Domain, ID: "entry-1_42"}, id)

	entryID, cameraID, ok := SplitIdentifier(id)
	assert.True(t, ok)
	assert.Equal(t, "entry-1", entryID)
	assert.Equal(t, 42, cameraID)
}

func TestSplitIdentifierRejectsForeign(t *testing.T) {
	_, _, ok := SplitIdentifier(Identifier{Domain: "zwave", ID: "entry_1"})
	assert.False(t, ok)

	_, _, ok = SplitIdentifier(Identifier{Domain: Domain, ID: "no-separator"})
	assert.False(t, ok)

	_, _, ok = SplitIdentifier(Identifier{Domain: Domain, ID: "entry_notanumber"})
	assert.False(t, ok)
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, "motioneye.motion_detected", EventName(EventMotionDetected))
	assert.True(t, KnownEventType(EventFileStored))
	assert.False(t, KnownEventType("door_opened"))
}
