package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/integrations/cameras"
	"github.com/edgehive/motioneye-bridge/internal/hub"
	"github.com/edgehive/motioneye-bridge/internal/metrics"
	"github.com/edgehive/motioneye-bridge/mediasource"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// handleWebhook accepts the callbacks motionEye fires at the URLs the
// provisioner wrote into its camera config, and re-emits them as hub events.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	eventType := chi.URLParam(r, "event_type")
	if !hub.KnownEventType(eventType) {
		metrics.RecordEvent(eventType, "bad_request")
		writeError(w, http.StatusBadRequest, "unknown event type "+eventType)
		return
	}
	device := s.devices.Get(chi.URLParam(r, "device_id"))
	if device == nil {
		metrics.RecordEvent(eventType, "not_found")
		writeError(w, http.StatusNotFound, "unknown device")
		return
	}

	fields := map[string]interface{}{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	if r.Method == http.MethodPost && r.Body != nil {
		// Older motionEye revisions POST a JSON body instead of (or on top
		// of) query parameters.
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			for key, value := range body {
				fields[key] = value
			}
		}
	}

	if eventType == hub.EventFileStored {
		s.enrichFileStored(device, fields)
	}
	fields["device_id"] = device.ID
	fields["name"] = device.Name

	s.bus.Fire(hub.EventName(eventType), fields)
	metrics.RecordEvent(eventType, "ok")
	writeJSON(w, http.StatusOK, map[string]string{})
}

// enrichFileStored adds a media content id and direct playback URL to a
// file-stored event when the reported path sits under the camera's known
// root directory. Enrichment is best effort, any missing piece just leaves
// the extra fields out.
func (s *Server) enrichFileStored(device *hub.Device, fields map[string]interface{}) {
	instance := s.instances.Get(device.ConfigEntryID)
	if instance == nil {
		return
	}
	_, cameraID, ok := hub.SplitIdentifier(device.Identifier)
	if !ok {
		return
	}
	camera := instance.Camera(cameraID)
	if camera == nil || camera.RootDirectory == "" {
		return
	}
	filePath, _ := fields[motioneye.KeyFilePath].(string)
	fileType, ok := fieldInt(fields[motioneye.KeyFileType])
	if filePath == "" || !ok {
		return
	}
	root := strings.TrimSuffix(camera.RootDirectory, "/")
	if !strings.HasPrefix(filePath, root+"/") {
		log.Debugf("Stored file %q is outside root directory %q, skipping media enrichment", filePath, root)
		return
	}
	rel := strings.TrimPrefix(filePath, root)

	kind := mediasource.KindMovies
	urlFor := instance.Client.MovieURL
	if motioneye.IsFileTypeImage(fileType) {
		kind = mediasource.KindImages
		urlFor = instance.Client.ImageURL
	}
	fields["media_content_id"] = mediasource.ContentID(device.ConfigEntryID, device.ID, kind, rel)
	if url, err := urlFor(cameraID, rel); err == nil {
		fields["file_url"] = url
	}
}

func fieldInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// handleAction triggers a motionEye action (snapshot, lock, up, ...) on the
// camera behind a device.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	device := s.devices.Get(chi.URLParam(r, "device_id"))
	if device == nil {
		writeError(w, http.StatusNotFound, "unknown device")
		return
	}
	instance, cameraID, ok := s.instanceFor(device)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown config entry")
		return
	}
	action := chi.URLParam(r, "action")
	if err := instance.Client.Action(r.Context(), cameraID, action); err != nil {
		log.Errorf("Failed to run action %q on camera %d : %s", action, cameraID, err.Error())
		writeError(w, http.StatusBadGateway, "action failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}

func (s *Server) instanceFor(device *hub.Device) (*cameras.Instance, int, bool) {
	instance := s.instances.Get(device.ConfigEntryID)
	if instance == nil {
		return nil, 0, false
	}
	_, cameraID, ok := hub.SplitIdentifier(device.Identifier)
	if !ok {
		return nil, 0, false
	}
	return instance, cameraID, true
}
