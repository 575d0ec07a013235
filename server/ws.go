package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gyscos/coinched/domain"
	"github.com/gyscos/coinched/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// handleWebSocket streams the player's event log over a socket,
// starting from event 0. It is the long-poll loop run server-side.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	pid, err := playerID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid player id"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("upgrading to websocket: %v", err)
		return
	}
	log.Debugf("websocket stream for player %d from %s", pid, r.RemoteAddr)

	// Drain incoming frames so pings are answered; a read error means
	// the client is gone.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer conn.Close()
	eid := 0
	turnNotified := false
	for {
		select {
		case <-closed:
			return
		default:
		}

		ev, err := s.manager.Wait(pid, eid)
		if errors.Is(err, domain.ErrWaitTimeout) {
			continue
		}
		if err != nil {
			conn.WriteJSON(errorResponse{Error: err.Error()})
			return
		}

		// The wait fast path answers YourTurn without consuming a
		// log slot; notify once and back off until the log grows.
		if _, ok := ev.Event.(events.YourTurn); ok {
			if !turnNotified {
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
				turnNotified = true
			}
			time.Sleep(250 * time.Millisecond)
			continue
		}
		turnNotified = false

		if err := conn.WriteJSON(ev); err != nil {
			return
		}
		eid = ev.ID + 1
	}
}
