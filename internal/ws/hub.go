// Package ws fans leaderboard updates out to subscribed pages. A page opens
// one connection per leaderboard it is watching; closing the connection is
// the unsubscribe.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"clubhub/internal/logger"
)

type subscription struct {
	conn  *websocket.Conn
	topic string
}

type broadcastMsg struct {
	topic   string
	payload interface{}
}

type Hub struct {
	mu         sync.Mutex
	topics     map[string]map[*websocket.Conn]struct{}
	sendChans  map[*websocket.Conn]chan []byte
	broadcast  chan broadcastMsg
	register   chan subscription
	unregister chan *websocket.Conn
	logger     *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		topics:     make(map[string]map[*websocket.Conn]struct{}),
		sendChans:  make(map[*websocket.Conn]chan []byte),
		broadcast:  make(chan broadcastMsg, 16),
		register:   make(chan subscription),
		unregister: make(chan *websocket.Conn),
		logger:     log.With("component", "ws-hub"),
	}
}

// Run handles registration and fan-out until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.topics[sub.topic] == nil {
				h.topics[sub.topic] = make(map[*websocket.Conn]struct{})
			}
			h.topics[sub.topic][sub.conn] = struct{}{}
			h.sendChans[sub.conn] = make(chan []byte, 8)
			go h.writer(sub.conn, h.sendChans[sub.conn])
			h.mu.Unlock()
			h.logger.Debug("Subscriber connected", "topic", sub.topic)

		case conn := <-h.unregister:
			h.mu.Lock()
			h.drop(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.payload)
			if err != nil {
				h.logger.Error("Failed to marshal broadcast payload", "error", err)
				continue
			}

			h.mu.Lock()
			for conn := range h.topics[msg.topic] {
				select {
				case h.sendChans[conn] <- data:
				default:
					// Slow consumer, drop it rather than block everyone.
					h.drop(conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a payload for every subscriber of the topic.
func (h *Hub) Broadcast(topic string, payload interface{}) {
	h.broadcast <- broadcastMsg{topic: topic, payload: payload}
}

// Subscribe registers an upgraded connection on a topic and starts its
// reader loop. The reader exists only to detect the close.
func (h *Hub) Subscribe(topic string, conn *websocket.Conn) {
	h.register <- subscription{conn: conn, topic: topic}

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.unregister <- conn
				return
			}
		}
	}()
}

// drop removes the connection from every topic. Caller holds the lock.
func (h *Hub) drop(conn *websocket.Conn) {
	for _, conns := range h.topics {
		delete(conns, conn)
	}
	if sendChan, ok := h.sendChans[conn]; ok {
		close(sendChan)
		delete(h.sendChans, conn)
	}
	conn.Close()
}

func (h *Hub) writer(conn *websocket.Conn, sendChan chan []byte) {
	for data := range sendChan {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
