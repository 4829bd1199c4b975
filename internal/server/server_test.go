package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/standuplabs/standup/internal/team"
	"github.com/standuplabs/standup/pkg/models"
)

// memStore implements team.Store in memory for server tests.
type memStore struct {
	mu       sync.Mutex
	messages []models.Message
	agents   []models.Agent
}

func newMemStore() *memStore {
	return &memStore{
		agents: []models.Agent{
			{ID: models.AgentScrumMaster, Role: "Scrum Master/PO", Active: true},
			{ID: models.AgentJuniorDev, Role: "Junior Developer", Active: true},
			{ID: models.AgentSeniorDev, Role: "Senior Developer", Active: true},
		},
	}
}

func (s *memStore) AppendMessage(m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *m)
	return nil
}

func (s *memStore) RecentMessages(limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *memStore) ListAgents() ([]models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Agent, len(s.agents))
	copy(out, s.agents)
	return out, nil
}

func (s *memStore) SetAgentActive(id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.agents {
		if s.agents[i].ID == id {
			s.agents[i].Active = active
		}
	}
	return nil
}

func (s *memStore) SetAgentRole(id, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.agents {
		if s.agents[i].ID == id {
			s.agents[i].Role = role
		}
	}
	return nil
}

func (s *memStore) SetAgentSystemPrompt(id, prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.agents {
		if s.agents[i].ID == id {
			s.agents[i].SystemPrompt = prompt
		}
	}
	return nil
}

func (s *memStore) InsertTask(t *models.Task) error                        { return nil }
func (s *memStore) UpdateTaskStatus(id string, st models.TaskStatus) error { return nil }
func (s *memStore) TasksByStatus(st models.TaskStatus) ([]models.Task, error) {
	return nil, nil
}

// echoResponder replies with one canned agent message per request.
type echoResponder struct{ busy bool }

func (r *echoResponder) Respond(ctx context.Context, content string, deliver func(models.Message)) {
	deliver(models.Message{ID: "r1", Content: "echo: " + content, Author: "Junior Developer", Type: models.MessageAI, Timestamp: time.Now()})
}

func (r *echoResponder) Busy() bool { return r.busy }

func newTestServer(t *testing.T) (*Server, *memStore, *httptest.Server) {
	t.Helper()

	store := newMemStore()
	reg := team.NewRegistry(store)
	if err := reg.Load(); err != nil {
		t.Fatalf("load registry: %v", err)
	}

	s := New(":0", store, reg, &echoResponder{}, 30)
	go s.hub.Run()
	t.Cleanup(s.hub.Stop)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return s, store, ts
}

func TestHealthEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["busy"] != false {
		t.Errorf("busy field = %v", body["busy"])
	}
}

func TestAgentsStatusEndpoint(t *testing.T) {
	_, _, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/agents/status")
	if err != nil {
		t.Fatalf("GET /api/agents/status: %v", err)
	}
	defer resp.Body.Close()

	var agents []models.Agent
	if err := json.NewDecoder(resp.Body).Decode(&agents); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(agents) != 3 {
		t.Fatalf("agents = %d, want 3", len(agents))
	}
	if agents[0].ID != models.AgentScrumMaster {
		t.Errorf("first agent = %s, want scrum-master", agents[0].ID)
	}
}

func TestChatHistoryEndpoint(t *testing.T) {
	_, store, ts := newTestServer(t)
	store.AppendMessage(&models.Message{ID: "m1", Content: "hi", Author: "Human", Type: models.MessageHuman, Timestamp: time.Now()})

	resp, err := http.Get(ts.URL + "/api/chat/history")
	if err != nil {
		t.Fatalf("GET /api/chat/history: %v", err)
	}
	defer resp.Body.Close()

	var msgs []models.Message
	if err := json.NewDecoder(resp.Body).Decode(&msgs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hi" {
		t.Errorf("history = %v", msgs)
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()

	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return env
}

func TestWebsocketConnectSendsRosterAndHistory(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dialWS(t, ts)

	first := readEvent(t, conn)
	if first.Type != EventAgentsUpdate {
		t.Fatalf("first event = %s, want agents_update", first.Type)
	}
	var agents []models.Agent
	if err := json.Unmarshal(first.Payload, &agents); err != nil {
		t.Fatalf("decode roster: %v", err)
	}
	if len(agents) != 3 {
		t.Errorf("roster size = %d, want 3", len(agents))
	}

	second := readEvent(t, conn)
	if second.Type != EventChatHistory {
		t.Fatalf("second event = %s, want chat_history", second.Type)
	}
}

func TestWebsocketMessageRoundTrip(t *testing.T) {
	_, store, ts := newTestServer(t)
	conn := dialWS(t, ts)

	// Drain the connect events.
	readEvent(t, conn)
	readEvent(t, conn)

	payload, _ := json.Marshal(MessagePayload{Content: "hello team"})
	if err := conn.WriteJSON(Envelope{Type: EventMessage, Payload: payload}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// The human message is broadcast first, then the responder's reply.
	var human, reply models.Message
	env := readEvent(t, conn)
	if env.Type != EventNewMessage {
		t.Fatalf("event = %s, want new_message", env.Type)
	}
	json.Unmarshal(env.Payload, &human)
	if human.Type != models.MessageHuman || human.Content != "hello team" {
		t.Errorf("human message = %+v", human)
	}

	env = readEvent(t, conn)
	json.Unmarshal(env.Payload, &reply)
	if reply.Type != models.MessageAI || reply.Content != "echo: hello team" {
		t.Errorf("reply = %+v", reply)
	}

	// The human message was persisted before broadcasting.
	msgs, _ := store.RecentMessages(10)
	if len(msgs) != 1 || msgs[0].Type != models.MessageHuman {
		t.Errorf("persisted = %v", msgs)
	}
}

func TestWebsocketToggleAgent(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dialWS(t, ts)
	readEvent(t, conn)
	readEvent(t, conn)

	payload, _ := json.Marshal(TogglePayload{AgentID: models.AgentSeniorDev, Active: false})
	if err := conn.WriteJSON(Envelope{Type: EventToggleAgent, Payload: payload}); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEvent(t, conn)
	if env.Type != EventAgentsUpdate {
		t.Fatalf("event = %s, want agents_update", env.Type)
	}
	var agents []models.Agent
	json.Unmarshal(env.Payload, &agents)
	for _, a := range agents {
		if a.ID == models.AgentSeniorDev && a.Active {
			t.Error("senior-dev still active after toggle")
		}
	}
}

func TestWebsocketUnknownEvent(t *testing.T) {
	_, _, ts := newTestServer(t)
	conn := dialWS(t, ts)
	readEvent(t, conn)
	readEvent(t, conn)

	if err := conn.WriteJSON(Envelope{Type: "bogus"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEvent(t, conn)
	if env.Type != EventError {
		t.Fatalf("event = %s, want error", env.Type)
	}
}
