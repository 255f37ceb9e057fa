package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/integrations/entities"
)

// handleState returns a snapshot of all entity values of one device.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	group := s.entities.GroupForDevice(chi.URLParam(r, "device_id"))
	if group == nil {
		writeError(w, http.StatusNotFound, "unknown device")
		return
	}
	writeJSON(w, http.StatusOK, group.State())
}

// handleSwitch toggles one camera config flag via its switch entity.
func (s *Server) handleSwitch(w http.ResponseWriter, r *http.Request) {
	group := s.entities.GroupForDevice(chi.URLParam(r, "device_id"))
	if group == nil {
		writeError(w, http.StatusNotFound, "unknown device")
		return
	}
	sw := group.Switch(chi.URLParam(r, "key"))
	if sw == nil {
		writeError(w, http.StatusBadRequest, "unknown switch")
		return
	}
	var body struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := sw.Set(r.Context(), body.On); err != nil {
		log.Errorf("Failed to set switch %q : %s", sw.Key(), err.Error())
		writeError(w, http.StatusBadGateway, "switch write failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}

// handleTextOverlay updates the text rendered onto a camera's video.
func (s *Server) handleTextOverlay(w http.ResponseWriter, r *http.Request) {
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
	var overlay entities.TextOverlay
	if err := json.NewDecoder(r.Body).Decode(&overlay); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := overlay.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := entities.SetTextOverlay(r.Context(), instance, cameraID, overlay); err != nil {
		log.Errorf("Failed to set text overlay on camera %d : %s", cameraID, err.Error())
		writeError(w, http.StatusBadGateway, "text overlay write failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}
