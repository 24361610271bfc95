package server

import (
	"net/http"
	"time"

	"tunevault/logger"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const wsWriteTimeout = 10 * time.Second

// NowPlayingFeedHandler streams player state changes over a websocket. The
// current state is sent immediately on connect, then every transition until
// the client goes away or the player shuts down.
func (h *APIHandler) NowPlayingFeedHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	events := h.player.Subscribe()
	defer h.player.Unsubscribe(events)

	// Reader loop only exists to observe the close; inbound messages are
	// discarded.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	now := h.player.Now()
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(now); err != nil {
		logger.Warn("websocket write", logger.ErrorField(err))
		return
	}

	for {
		select {
		case state, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(state); err != nil {
				logger.Warn("websocket write", logger.ErrorField(err))
				return
			}
		case <-closed:
			return
		}
	}
}
