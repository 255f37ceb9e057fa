package cameras

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// DefaultPollInterval is how often the camera directory is refetched when the
// config does not override it.
const DefaultPollInterval = 30 * time.Second

// Coordinator polls one motionEye server for its camera directory and runs
// registered listeners after every successful refresh. Listener callbacks run
// serialized on the polling goroutine, so no two reconciliation passes for
// the same config entry ever overlap. A failed refresh keeps the previous
// snapshot.
type Coordinator struct {
	entryID  string
	client   Client
	interval time.Duration

	mux       sync.RWMutex
	cameras   []*motioneye.Camera
	listeners []func([]*motioneye.Camera)

	refresh chan struct{}
	stop    chan struct{}
	once    sync.Once
}

func NewCoordinator(entryID string, client Client, interval time.Duration) *Coordinator {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Coordinator{
		entryID:  entryID,
		client:   client,
		interval: interval,
		refresh:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// AddListener registers a callback invoked with the snapshot after each
// successful refresh. Must be called before Start.
func (c *Coordinator) AddListener(fn func([]*motioneye.Camera)) {
	c.listeners = append(c.listeners, fn)
}

// Start launches the poll loop. The first refresh happens immediately.
func (c *Coordinator) Start() {
	go func() {
		log.Infof("Starting camera coordinator for entry %s, interval %s", c.entryID, c.interval)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		c.refreshOnce()
		for {
			select {
			case <-c.stop:
				log.Infof("Camera coordinator for entry %s has been stopped", c.entryID)
				return
			case <-ticker.C:
				c.refreshOnce()
			case <-c.refresh:
				c.refreshOnce()
			}
		}
	}()
}

// RequestRefresh schedules an out-of-band refresh, used after config reloads
// and webhook writes. Non-blocking; coalesces with a pending request.
func (c *Coordinator) RequestRefresh() {
	select {
	case c.refresh <- struct{}{}:
	default:
	}
}

// Stop terminates the poll loop. Safe to call more than once.
func (c *Coordinator) Stop() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Coordinator) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), c.interval)
	defer cancel()

	cams, err := c.client.GetCameras(ctx)
	if err != nil {
		// Keep serving the stale snapshot; the next tick retries.
		log.Errorf("Failed to refresh cameras for entry %s : %s", c.entryID, err.Error())
		return
	}
	c.mux.Lock()
	c.cameras = cams
	c.mux.Unlock()

	for _, fn := range c.listeners {
		fn(cams)
	}
}

// Cameras returns the latest successful snapshot, nil before the first
// successful refresh.
func (c *Coordinator) Cameras() []*motioneye.Camera {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.cameras
}

// CameraByID looks a camera up in the latest snapshot.
func (c *Coordinator) CameraByID(cameraID int) *motioneye.Camera {
	c.mux.RLock()
	defer c.mux.RUnlock()
	for _, cam := range c.cameras {
		if cam.Acceptable() && cam.ID == cameraID {
			return cam
		}
	}
	return nil
}
