package cameras

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgehive/motioneye-bridge/internal/hub"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

func externalURL(url string) func() string {
	return func() string { return url }
}

func TestBuildURLIsDeterministicAndSorted(t *testing.T) {
	a := BuildURL("http://bridge:8099/", "dev-1", hub.EventMotionDetected, MotionDetectedKeys)
	b := BuildURL("http://bridge:8099/", "dev-1", hub.EventMotionDetected, MotionDetectedKeys)
	assert.Equal(t, a, b)

	require.True(t, strings.HasPrefix(a, "http://bridge:8099/api/motioneye/device/dev-1/motion_detected?"))
	query := strings.SplitN(a, "?", 2)[1]
	pairs := strings.Split(query, "&")
	assert.Equal(t, WebhookSentinelKey+"="+WebhookSentinelValue, pairs[len(pairs)-1])
	// specifier keys come sorted ahead of the sentinel
	keys := pairs[:len(pairs)-1]
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
	// %-specifiers stay raw, motion substitutes them before fetching
	assert.Contains(t, a, "camera_id=%t")
	assert.NotContains(t, a, "%25")
}

func TestProvisionSetsBothWebhooks(t *testing.T) {
	p := NewProvisioner("entry", externalURL("http://bridge"), true, false)
	device := &hub.Device{ID: "dev-1"}
	cam := motioneye.NewCamera(1, "cam")

	updated, changed := p.Provision(device, cam)
	require.True(t, changed)

	assert.True(t, updated.Notifications.Enabled)
	assert.Equal(t, WebhookMethodGET, updated.Notifications.HTTPMethod)
	assert.Equal(t, BuildURL("http://bridge", "dev-1", hub.EventMotionDetected, MotionDetectedKeys), updated.Notifications.URL)
	assert.True(t, updated.Storage.Enabled)
	assert.Equal(t, BuildURL("http://bridge", "dev-1", hub.EventFileStored, FileStoredKeys), updated.Storage.URL)

	// the original snapshot camera is untouched
	assert.False(t, cam.Notifications.Enabled)
}

func TestProvisionIsIdempotent(t *testing.T) {
	p := NewProvisioner("entry", externalURL("http://bridge"), true, false)
	device := &hub.Device{ID: "dev-1"}
	cam := motioneye.NewCamera(1, "cam")

	updated, changed := p.Provision(device, cam)
	require.True(t, changed)

	// a camera already carrying the exact target config needs zero writes
	_, changed = p.Provision(device, updated)
	assert.False(t, changed)
}

func TestProvisionIsIdempotentAcrossRestarts(t *testing.T) {
	p := NewProvisioner("entry", externalURL("http://bridge"), true, false)
	identifier := hub.DeviceIdentifier("entry", 1)

	gen1 := hub.NewDeviceRegistry().GetOrCreate("entry", identifier, "cam", hub.Manufacturer, hub.Manufacturer)
	updated, changed := p.Provision(gen1, motioneye.NewCamera(1, "cam"))
	require.True(t, changed)

	// a process restart rebuilds the registry; the camera config written by
	// the previous run must still match, or every restart rewrites every hook
	gen2 := hub.NewDeviceRegistry().GetOrCreate("entry", identifier, "cam", hub.Manufacturer, hub.Manufacturer)
	require.Equal(t, gen1.ID, gen2.ID)
	_, changed = p.Provision(gen2, updated)
	assert.False(t, changed)
}

func TestProvisionLeavesForeignWebhooksAlone(t *testing.T) {
	p := NewProvisioner("entry", externalURL("http://bridge"), true, false)
	device := &hub.Device{ID: "dev-1"}
	cam := motioneye.NewCamera(1, "cam")
	cam.Notifications = motioneye.Webhook{Enabled: true, HTTPMethod: "POST", URL: "http://users-own-hook"}
	cam.Storage = motioneye.Webhook{Enabled: true, HTTPMethod: "POST", URL: "http://users-other-hook"}

	updated, changed := p.Provision(device, cam)
	require.False(t, changed)
	assert.Nil(t, updated)
}

func TestProvisionOverwriteReplacesForeignWebhooks(t *testing.T) {
	p := NewProvisioner("entry", externalURL("http://bridge"), true, true)
	device := &hub.Device{ID: "dev-1"}
	cam := motioneye.NewCamera(1, "cam")
	cam.Notifications = motioneye.Webhook{Enabled: true, HTTPMethod: "POST", URL: "http://users-own-hook"}

	updated, changed := p.Provision(device, cam)
	require.True(t, changed)
	assert.Contains(t, updated.Notifications.URL, "http://bridge/api/motioneye/device/dev-1/")
}

func TestProvisionReplacesOwnStaleWebhook(t *testing.T) {
	p := NewProvisioner("entry", externalURL("http://new-bridge"), true, false)
	device := &hub.Device{ID: "dev-1"}
	cam := motioneye.NewCamera(1, "cam")
	// URL carries our sentinel but points at an old external URL
	cam.Notifications = motioneye.Webhook{
		Enabled:    true,
		HTTPMethod: WebhookMethodGET,
		URL:        "http://old-bridge/api/motioneye/device/dev-1/motion_detected?camera_id=%t&" + WebhookSentinelKey + "=" + WebhookSentinelValue,
	}

	updated, changed := p.Provision(device, cam)
	require.True(t, changed)
	assert.True(t, strings.HasPrefix(updated.Notifications.URL, "http://new-bridge/"))
}

func TestProvisionSkipsWithoutExternalURL(t *testing.T) {
	p := NewProvisioner("entry", externalURL(""), true, false)
	_, changed := p.Provision(&hub.Device{ID: "dev-1"}, motioneye.NewCamera(1, "cam"))
	assert.False(t, changed)
}

func TestProvisionDisabled(t *testing.T) {
	p := NewProvisioner("entry", externalURL("http://bridge"), false, false)
	_, changed := p.Provision(&hub.Device{ID: "dev-1"}, motioneye.NewCamera(1, "cam"))
	assert.False(t, changed)
}
