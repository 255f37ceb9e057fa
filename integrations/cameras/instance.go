package cameras

import (
	"sync"

	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// Instance bundles everything the bridge runs for one configured motionEye
// server (one config entry): the API client and the polling coordinator.
// The webhook provisioner lives inside the reconciler.
type Instance struct {
	ID    string
	Title string
	// URL is the motionEye server base URL, used to derive stream URLs.
	URL string

	Client      Client
	Coordinator *Coordinator

	// StreamURLTemplate overrides the derived MJPEG stream URL. "{id}" and
	// "{port}" are substituted per camera.
	StreamURLTemplate string
}

// Camera is a convenience lookup into the coordinator snapshot.
func (i *Instance) Camera(cameraID int) *motioneye.Camera {
	return i.Coordinator.CameraByID(cameraID)
}

// InstanceRegistry tracks the running instances by config entry id. Listing
// preserves insertion order so browse trees stay stable between requests.
type InstanceRegistry struct {
	mux       sync.RWMutex
	instances map[string]*Instance
	order     []string
}

func NewInstanceRegistry() *InstanceRegistry {
	return &InstanceRegistry{instances: map[string]*Instance{}}
}

func (r *InstanceRegistry) Add(instance *Instance) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.instances[instance.ID]; !ok {
		r.order = append(r.order, instance.ID)
	}
	r.instances[instance.ID] = instance
}

func (r *InstanceRegistry) Remove(entryID string) *Instance {
	r.mux.Lock()
	defer r.mux.Unlock()
	instance, ok := r.instances[entryID]
	if !ok {
		return nil
	}
	delete(r.instances, entryID)
	for i, id := range r.order {
		if id == entryID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return instance
}

func (r *InstanceRegistry) Get(entryID string) *Instance {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.instances[entryID]
}

func (r *InstanceRegistry) List() []*Instance {
	r.mux.RLock()
	defer r.mux.RUnlock()
	out := make([]*Instance, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.instances[id])
	}
	return out
}
