package api

import (
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/mediasource"
)

// handleBrowse serves one level of the media tree. The id query parameter is
// a media content identifier; omitting it browses the root.
func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	node, err := s.source.Browse(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		writeMediaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// handleResolve translates a leaf media content identifier into a direct
// playback URL.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	play, err := s.source.Resolve(r.URL.Query().Get("id"))
	if err != nil {
		writeMediaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, play)
}

func writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediasource.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, mediasource.ErrUnresolvable), errors.Is(err, mediasource.ErrBadKind):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Errorf("Media request failed : %s", err.Error())
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
