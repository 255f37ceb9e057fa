package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/integrations/cameras"
	"github.com/edgehive/motioneye-bridge/integrations/entities"
	"github.com/edgehive/motioneye-bridge/internal"
	"github.com/edgehive/motioneye-bridge/internal/hub"
	"github.com/edgehive/motioneye-bridge/mediasource"
)

// Server is the bridge's HTTP surface: the webhook receiver motionEye calls
// back into, camera action triggers, media browsing and the websocket event
// stream.
type Server struct {
	bus       *hub.Bus
	devices   *hub.DeviceRegistry
	instances *cameras.InstanceRegistry
	source    *mediasource.Source
	entities  *entities.Registry
	states    *internal.StateTracker

	srv *http.Server
}

func NewServer(addr string, bus *hub.Bus, devices *hub.DeviceRegistry, instances *cameras.InstanceRegistry, source *mediasource.Source, entityRegistry *entities.Registry, states *internal.StateTracker) *Server {
	s := &Server{
		bus:       bus,
		devices:   devices,
		instances: instances,
		source:    source,
		entities:  entityRegistry,
		states:    states,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/api/"+hub.Domain+"/device/{device_id}/{event_type}", s.handleWebhook)
	r.Post("/api/"+hub.Domain+"/device/{device_id}/{event_type}", s.handleWebhook)
	r.Post("/api/"+hub.Domain+"/device/{device_id}/action/{action}", s.handleAction)
	r.Get("/api/"+hub.Domain+"/device/{device_id}/state", s.handleState)
	r.Post("/api/"+hub.Domain+"/device/{device_id}/switch/{key}", s.handleSwitch)
	r.Post("/api/"+hub.Domain+"/device/{device_id}/text_overlay", s.handleTextOverlay)
	r.Get("/api/media/browse", s.handleBrowse)
	r.Get("/api/media/resolve", s.handleResolve)
	r.Get("/api/events/stream", s.handleEventStream)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", s.handleHealth)

	s.srv = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() {
	go func() {
		log.Infof("API server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("API server failed : %s", err.Error())
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"instances": s.states.States(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to write response : %s", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
