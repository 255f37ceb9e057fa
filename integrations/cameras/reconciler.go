package cameras

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/internal/hub"
	"github.com/edgehive/motioneye-bridge/internal/metrics"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

const setCameraTimeout = 15 * time.Second

// Reconciler turns coordinator snapshots into device registry state. It is
// registered as a coordinator listener, so Process runs serialized on the
// polling goroutine.
type Reconciler struct {
	entryID     string
	registry    *hub.DeviceRegistry
	dispatcher  *hub.Dispatcher
	provisioner *Provisioner
	client      Client

	// Identifiers already processed at least once. Grows only; a camera that
	// disappears and comes back keeps its device and is not re-announced.
	known map[hub.Identifier]struct{}
}

func NewReconciler(entryID string, registry *hub.DeviceRegistry, dispatcher *hub.Dispatcher, provisioner *Provisioner, client Client) *Reconciler {
	return &Reconciler{
		entryID:     entryID,
		registry:    registry,
		dispatcher:  dispatcher,
		provisioner: provisioner,
		client:      client,
		known:       map[hub.Identifier]struct{}{},
	}
}

// Process reconciles one camera directory snapshot against the device
// registry. A nil snapshot (failed refresh) is a no-op. A camera descriptor
// missing its id or name aborts the whole pass before any state is touched.
func (r *Reconciler) Process(cameras []*motioneye.Camera) {
	if cameras == nil {
		return
	}

	// Validate the whole snapshot before touching anything. A half-formed
	// directory usually means the server is mid-restart; applying part of it
	// would tear down healthy devices.
	for _, camera := range cameras {
		if !camera.Acceptable() {
			log.Warnf("Received incomplete camera descriptor for entry %s, aborting reconciliation pass", r.entryID)
			metrics.RecordReconcile(r.entryID, "aborted")
			return
		}
	}

	inbound := map[hub.Identifier]struct{}{}
	for _, camera := range cameras {
		identifier := hub.DeviceIdentifier(r.entryID, camera.ID)
		inbound[identifier] = struct{}{}
		if _, ok := r.known[identifier]; ok {
			continue
		}
		r.known[identifier] = struct{}{}

		device := r.registry.GetOrCreate(r.entryID, identifier, camera.Name, hub.Manufacturer, hub.Manufacturer)
		metrics.RecordDeviceAdded(r.entryID)
		r.provision(device, camera)
		r.dispatcher.PublishAdd(hub.CameraSignal{
			ConfigEntryID: r.entryID,
			DeviceID:      device.ID,
			Camera:        camera,
		})
	}

	for _, device := range r.registry.EntriesForConfigEntry(r.entryID) {
		if _, ok := inbound[device.Identifier]; ok {
			continue
		}
		if r.registry.Remove(device.ID) {
			metrics.RecordDeviceRemoved(r.entryID)
			r.dispatcher.PublishRemove(hub.CameraSignal{
				ConfigEntryID: r.entryID,
				DeviceID:      device.ID,
			})
		}
	}
	metrics.RecordReconcile(r.entryID, "ok")
}

// provision rewrites the camera's webhooks when needed. The write-back runs
// detached so one slow or broken camera cannot stall the rest of the pass,
// and a failed write only costs this camera its hooks until the next pass.
func (r *Reconciler) provision(device *hub.Device, camera *motioneye.Camera) {
	updated, changed := r.provisioner.Provision(device, camera)
	if !changed {
		return
	}
	cameraID := camera.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), setCameraTimeout)
		defer cancel()
		if err := r.client.SetCamera(ctx, cameraID, updated); err != nil {
			log.Errorf("Failed to write webhook config for camera %d on entry %s : %s", cameraID, r.entryID, err.Error())
			metrics.RecordWebhookWrite(r.entryID, "error")
			return
		}
		log.Infof("Provisioned webhooks for camera %d on entry %s", cameraID, r.entryID)
		metrics.RecordWebhookWrite(r.entryID, "ok")
	}()
}
