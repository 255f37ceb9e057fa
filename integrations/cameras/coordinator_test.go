package cameras

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

func TestCoordinatorRefreshAndListeners(t *testing.T) {
	client := &fakeClient{cameras: []*motioneye.Camera{motioneye.NewCamera(1, "one")}}
	coordinator := NewCoordinator("entry", client, time.Hour)

	snapshots := make(chan []*motioneye.Camera, 4)
	coordinator.AddListener(func(cams []*motioneye.Camera) { snapshots <- cams })
	coordinator.Start()
	defer coordinator.Stop()

	select {
	case cams := <-snapshots:
		require.Len(t, cams, 1)
	case <-time.After(time.Second):
		t.Fatal("initial refresh did not run")
	}
	assert.Len(t, coordinator.Cameras(), 1)
	assert.NotNil(t, coordinator.CameraByID(1))
	assert.Nil(t, coordinator.CameraByID(99))

	coordinator.RequestRefresh()
	select {
	case <-snapshots:
	case <-time.After(time.Second):
		t.Fatal("requested refresh did not run")
	}
}

func TestCoordinatorStopIsIdempotent(t *testing.T) {
	coordinator := NewCoordinator("entry", &fakeClient{}, time.Hour)
	coordinator.Start()
	coordinator.Stop()
	coordinator.Stop()
}
