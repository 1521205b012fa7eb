package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"clubhub/internal/logger"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// hubServer runs a hub and an HTTP endpoint that subscribes each
// upgraded connection to the topic named in the query string.
func hubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(logger.ForEnvironment("test", "error", ""))
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.Subscribe(r.URL.Query().Get("topic"), conn)
	}))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dialTopic(t *testing.T, srv *httptest.Server, topic string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?topic=" + topic
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", topic, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readPayload(t *testing.T, conn *websocket.Conn) map[string]string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return payload
}

func (h *Hub) subscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

func waitForCount(t *testing.T, hub *Hub, topic string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.subscriberCount(topic) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("topic %s has %d subscribers, want %d", topic, hub.subscriberCount(topic), want)
}

func TestBroadcastFansOutPerTopic(t *testing.T) {
	hub, srv := hubServer(t)

	scoreA := dialTopic(t, srv, "score:prime:endurance")
	scoreB := dialTopic(t, srv, "score:prime:endurance")
	timeC := dialTopic(t, srv, "ta:prime")
	waitForCount(t, hub, "score:prime:endurance", 2)
	waitForCount(t, hub, "ta:prime", 1)

	hub.Broadcast("score:prime:endurance", map[string]string{"board": "scores"})
	hub.Broadcast("ta:prime", map[string]string{"board": "times"})

	for _, conn := range []*websocket.Conn{scoreA, scoreB} {
		if got := readPayload(t, conn)["board"]; got != "scores" {
			t.Errorf("score subscriber got %q, want scores", got)
		}
	}
	if got := readPayload(t, timeC)["board"]; got != "times" {
		t.Errorf("time subscriber got %q, want times", got)
	}
}

func TestClosedConnectionUnregisters(t *testing.T) {
	hub, srv := hubServer(t)

	conn := dialTopic(t, srv, "ta:prime")
	waitForCount(t, hub, "ta:prime", 1)

	conn.Close()
	waitForCount(t, hub, "ta:prime", 0)

	// Broadcasting to an emptied topic must not block or panic.
	hub.Broadcast("ta:prime", map[string]string{"board": "times"})
	waitForCount(t, hub, "ta:prime", 0)
}

func TestSlowConsumerDropped(t *testing.T) {
	hub, srv := hubServer(t)

	// Never read from this connection so its writer backs up.
	dialTopic(t, srv, "ta:prime")
	waitForCount(t, hub, "ta:prime", 1)

	// A large payload stalls the writer once the socket buffer fills,
	// then the pending sends overflow the per-connection queue.
	big := strings.Repeat("x", 8<<20)
	for i := 0; i < 12; i++ {
		hub.Broadcast("ta:prime", map[string]string{"fill": big})
	}

	waitForCount(t, hub, "ta:prime", 0)
}
