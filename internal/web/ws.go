package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"horizon-cli/internal/model"
)

const wsWriteTimeout = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		// Basic same-origin check; good enough for localhost use.
		host := strings.TrimSpace(r.Host)
		return strings.Contains(origin, "://"+host)
	},
}

// nextChannelID hands out process-unique delivery channel ids.
var nextChannelID atomic.Uint32

// handleWS runs one websocket session. The client sends a subscribe message
// to start the stream; the first queued event is always a full snapshot, and
// each later event is a minimal diff. Malformed client frames are dropped
// without killing the connection.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	channelID := nextChannelID.Add(1)
	subscribed := false
	done := make(chan struct{})
	defer func() {
		if subscribed {
			s.app.Unsubscribe(channelID)
			<-done
		}
	}()

	s.log.Debug("websocket connected", "channel", channelID, "remote", r.RemoteAddr)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("websocket closed", "channel", channelID, "error", err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var msg model.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case model.ClientSubscribe:
			if subscribed {
				continue
			}
			subscribed = true
			outbox := s.app.Subscribe(channelID)
			go s.pumpOutbox(conn, outbox, done)
		case model.ClientPing:
			// Keepalive only; nothing to answer.
		default:
			// Unknown types are ignored for forward compatibility.
		}
	}
}

// pumpOutbox writes queued events to the socket until the outbox closes
// (unsubscribe) or a write fails. It signals done so the session teardown can
// wait for the writer before returning.
func (s *Server) pumpOutbox(conn *websocket.Conn, outbox <-chan []byte, done chan<- struct{}) {
	defer close(done)
	for b := range outbox {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			// The read loop will notice the broken socket and unsubscribe;
			// keep draining so Unsubscribe's close is observed.
			for range outbox {
			}
			return
		}
	}
}
