package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stream is consumed by local dashboards and automations.
	CheckOrigin: func(*http.Request) bool { return true },
}

const streamWriteTimeout = 10 * time.Second

// handleEventStream upgrades to a websocket and forwards every hub event to
// the peer as JSON until either side goes away.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade event stream connection : %s", err.Error())
		return
	}
	events := s.bus.SubscribeAll()
	defer func() {
		s.bus.Unsubscribe(events)
		_ = conn.Close()
	}()

	closed := make(chan struct{})
	go func() {
		// Drain the read side so close frames are processed.
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(event); err != nil {
				log.Debugf("Event stream peer gone : %s", err.Error())
				return
			}
		}
	}
}
