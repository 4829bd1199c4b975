package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/standuplabs/standup/internal/team"
	"github.com/standuplabs/standup/pkg/models"
)

// Responder runs the response pipeline for one human message. Implemented
// by team.Orchestrator.
type Responder interface {
	Respond(ctx context.Context, content string, deliver func(models.Message))
	Busy() bool
}

// HistoryStore is the read/write surface the server needs from the store.
type HistoryStore interface {
	AppendMessage(m *models.Message) error
	RecentMessages(limit int) ([]models.Message, error)
}

// Server wires the websocket hub, the REST endpoints, and the response
// pipeline together.
type Server struct {
	hub       *Hub
	store     HistoryStore
	registry  *team.Registry
	responder Responder

	// historyLimit is how many messages clients receive on connect and
	// from the history endpoint.
	historyLimit int

	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New builds a server listening on addr.
func New(addr string, store HistoryStore, registry *team.Registry, responder Responder, historyLimit int) *Server {
	if historyLimit <= 0 {
		historyLimit = 30
	}

	s := &Server{
		hub:          NewHub(),
		store:        store,
		registry:     registry,
		responder:    responder,
		historyLimit: historyLimit,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The operator UI may be served from anywhere.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/agents/status", s.handleAgentsStatus)
	mux.HandleFunc("/api/chat/history", s.handleChatHistory)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the HTTP handler (for tests).
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe runs the hub and the HTTP server. Blocks until the
// server stops.
func (s *Server) ListenAndServe() error {
	go s.hub.Run()
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the HTTP server and disconnects all clients.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	s.hub.Stop()
	return err
}

// handleWS upgrades the connection and starts the client pumps. New
// clients immediately receive the agent roster and recent history.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := newClient(s.hub, conn, s.handleEvent)
	s.hub.register <- c

	go c.writePump()
	go c.readPump()

	c.Send(EventAgentsUpdate, s.registry.Snapshot())
	s.sendHistory(c)
}

// handleEvent dispatches one inbound envelope.
func (s *Server) handleEvent(c *Client, env Envelope) {
	switch env.Type {
	case EventMessage:
		var p MessagePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil || p.Content == "" {
			c.Send(EventError, ErrorPayload{Message: "invalid message payload"})
			return
		}
		s.handleHumanMessage(p)

	case EventToggleAgent:
		var p TogglePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.Send(EventError, ErrorPayload{Message: "invalid toggle payload"})
			return
		}
		if err := s.registry.SetActive(p.AgentID, p.Active); err != nil {
			c.Send(EventError, ErrorPayload{Message: err.Error()})
			return
		}
		s.hub.Broadcast(EventAgentsUpdate, s.registry.Snapshot())

	case EventSetRole:
		var p SetRolePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil || p.Role == "" {
			c.Send(EventError, ErrorPayload{Message: "invalid role payload"})
			return
		}
		if err := s.registry.SetRole(p.AgentID, p.Role); err != nil {
			c.Send(EventError, ErrorPayload{Message: err.Error()})
			return
		}
		s.hub.Broadcast(EventAgentsUpdate, s.registry.Snapshot())

	case EventRequestHistory:
		s.sendHistory(c)

	case EventRequestAgents:
		c.Send(EventAgentsUpdate, s.registry.Snapshot())

	default:
		c.Send(EventError, ErrorPayload{Message: "unknown event type: " + env.Type})
	}
}

// handleHumanMessage persists and broadcasts the human message, then runs
// the response pipeline in the background. Agent replies stream out as
// they are generated.
func (s *Server) handleHumanMessage(p MessagePayload) {
	author := p.Author
	if author == "" {
		author = "Human"
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		Content:   p.Content,
		Author:    author,
		Timestamp: time.Now(),
		Type:      models.MessageHuman,
	}

	if err := s.store.AppendMessage(&msg); err == nil {
		s.hub.Broadcast(EventNewMessage, msg)
	} else {
		s.hub.Broadcast(EventError, ErrorPayload{Message: "failed to save message"})
	}

	go s.responder.Respond(context.Background(), p.Content, func(m models.Message) {
		s.hub.Broadcast(EventNewMessage, m)
	})
}

func (s *Server) sendHistory(c *Client) {
	msgs, err := s.store.RecentMessages(s.historyLimit)
	if err != nil {
		c.Send(EventError, ErrorPayload{Message: "failed to load history"})
		return
	}
	c.Send(EventChatHistory, msgs)
}

// handleHealth reports liveness and whether a pipeline is in flight.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"busy":    s.responder.Busy(),
		"clients": s.hub.ClientCount(),
	})
}

// handleAgentsStatus returns the current agent roster.
func (s *Server) handleAgentsStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.registry.Snapshot())
}

// handleChatHistory returns the recent chat log.
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.store.RecentMessages(s.historyLimit)
	if err != nil {
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, msgs)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
