package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/liarheads/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, sendBuffer),
	}
}

func testState() *engine.GameState {
	return &engine.GameState{
		Position: engine.Position{Row: 1, Col: 2},
		Length:   3,
		Width:    4,
		Turn:     5,
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.register == nil || hub.unregister == nil {
		t.Error("Hub registration channels are nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if got := hub.ClientCount("test-session"); got != 1 {
		t.Errorf("Expected 1 client in session, got %d", got)
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed")
	}

	// Second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID)
	client2 := newTestClient(hub, sessionID)

	hub.registerClient(client1)
	hub.registerClient(client2)

	if got := hub.ClientCount(sessionID); got != 2 {
		t.Errorf("Expected 2 clients in session, got %d", got)
	}

	hub.unregisterClient(client1)

	if got := hub.ClientCount(sessionID); got != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", got)
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func readMessage(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return message
	case <-time.After(100 * time.Millisecond):
		t.Fatal("No message received within timeout")
	}
	return Message{}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := newTestClient(hub, sessionID)
	other := newTestClient(hub, "other-session")
	hub.registerClient(client)
	hub.registerClient(other)

	hub.BroadcastToSession(sessionID, testState())

	message := readMessage(t, client)
	if message.SessionID != sessionID {
		t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
	}
	if message.Event != EventStateUpdate {
		t.Errorf("Expected event %q, got %q", EventStateUpdate, message.Event)
	}
	if message.GameState == nil || message.GameState.Position != (engine.Position{Row: 1, Col: 2}) {
		t.Error("GameState not correctly transmitted")
	}
	if len(message.Grid) != 3 {
		t.Errorf("Expected 3 grid rows, got %d", len(message.Grid))
	}

	select {
	case <-other.send:
		t.Error("Message leaked to another session")
	default:
	}
}

func TestHubBroadcastTurn(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "turn-test")
	hub.registerClient(client)

	turn := &engine.TurnResult{
		Turn:      5,
		Outcome:   engine.OutcomeMoved,
		Head:      engine.Lie,
		Resolved:  engine.Lie,
		Lying:     true,
		Actual:    engine.Forward,
		Announced: engine.Backward,
	}
	hub.BroadcastTurn("turn-test", turn, testState())

	message := readMessage(t, client)
	if message.Event != EventTurn {
		t.Errorf("Expected event %q, got %q", EventTurn, message.Event)
	}
	if message.Turn == nil {
		t.Fatal("Turn missing from message")
	}
	if message.Turn.Head != engine.Lie || message.Turn.Announced != engine.Backward {
		t.Errorf("Turn not correctly transmitted: %+v", message.Turn)
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "event-test")
	hub.registerClient(client)

	hub.BroadcastEvent("event-test", "custom-event", "test-data")

	message := readMessage(t, client)
	if message.Event != "custom-event" {
		t.Errorf("Expected event 'custom-event', got %s", message.Event)
	}
	if message.Data != "test-data" {
		t.Errorf("Expected data 'test-data', got %v", message.Data)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{hub: hub, sessionID: "slow", send: make(chan []byte, 1)}
	hub.registerClient(slow)

	hub.BroadcastEvent("slow", "one", nil)
	hub.BroadcastEvent("slow", "two", nil)

	if got := hub.ClientCount("slow"); got != 0 {
		t.Errorf("Expected slow client to be dropped, %d clients remain", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within timeout")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func startHubServer(t *testing.T) (*Hub, string) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocketUpgrade(t *testing.T) {
	hub, wsURL := startHubServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?session=ws-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 1 })

	conn.Close()

	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 0 })
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub, wsURL := startHubServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?session=msg-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return hub.ClientCount("msg-test") == 1 })

	hub.BroadcastToSession("msg-test", testState())

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID 'msg-test', got %s", message.SessionID)
	}
	if message.GameState.Turn != 5 {
		t.Errorf("Expected turn 5, got %d", message.GameState.Turn)
	}
}

func TestHubRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := newTestClient(hub, "stop-test")
	hub.register <- client

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if got := hub.ClientCount("stop-test"); got != 0 {
		t.Errorf("Expected clients closed on stop, got %d", got)
	}
}
