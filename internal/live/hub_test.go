package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	r := chi.NewRouter()
	hub.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", wsURL, err)
	}
	defer conn.Close()
	waitForClients(t, hub, 1)

	loadedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hub.Broadcast(Event{Type: "snapshot", LoadedAt: loadedAt, Teams: 4, Users: 11})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("reading event: %v", err)
	}
	if ev.Type != "snapshot" || ev.Teams != 4 || ev.Users != 11 {
		t.Errorf("event = %+v", ev)
	}
	if !ev.LoadedAt.Equal(loadedAt) {
		t.Errorf("loadedAt = %v, want %v", ev.LoadedAt, loadedAt)
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewHub()
	r := chi.NewRouter()
	hub.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	// Broadcasting with nobody connected is a no-op.
	hub.Broadcast(Event{Type: "snapshot"})
}
