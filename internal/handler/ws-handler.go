package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"clubhub/internal/events"
	"clubhub/internal/logger"
	"clubhub/internal/models"
	"clubhub/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler upgrades leaderboard watchers onto the hub.
type WSHandler struct {
	hub *ws.Hub
	log *logger.Logger
}

func NewWSHandler(hub *ws.Hub, log *logger.Logger) *WSHandler {
	return &WSHandler{hub: hub, log: log}
}

// Leaderboard subscribes the connection to the group's time attack
// feed, or to one event board when an "event" query is given.
func (h *WSHandler) Leaderboard(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	if rawEvent := c.Query("event"); rawEvent != "" {
		event, parseErr := models.ParseEventType(rawEvent)
		if parseErr != nil {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown event"))
			conn.Close()
			return
		}
		h.hub.Subscribe(events.ScoreTopic(models.Scope{Group: group, Event: event}), conn)
		return
	}

	h.hub.Subscribe(events.TimeTopic(group), conn)
}
