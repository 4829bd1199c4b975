package team

import (
	"fmt"
	"sync"

	"github.com/standuplabs/standup/pkg/models"
)

// Registry is the in-memory directory of team agents, kept in sync with
// the store. Operator commands mutate it directly and take effect
// immediately, including while a response pipeline is in flight.
type Registry struct {
	store Store

	// mu protects agents.
	mu     sync.RWMutex
	agents map[string]*models.Agent
}

// NewRegistry creates a registry backed by the given store.
// Call Load before use.
func NewRegistry(store Store) *Registry {
	return &Registry{
		store:  store,
		agents: make(map[string]*models.Agent),
	}
}

// Load replaces the in-memory directory with the store's agent records.
func (r *Registry) Load() error {
	agents, err := r.store.ListAgents()
	if err != nil {
		return fmt.Errorf("load agents: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.agents = make(map[string]*models.Agent, len(agents))
	for i := range agents {
		a := agents[i]
		r.agents[a.ID] = &a
	}
	return nil
}

// Get returns a copy of the agent record for id.
func (r *Registry) Get(id string) (models.Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[id]
	if !ok {
		return models.Agent{}, false
	}
	return *a, true
}

// IsActive reports whether the agent exists and is currently active.
// This is read live: the answer can change between scheduling and a
// scheduled agent's turn.
func (r *Registry) IsActive(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.agents[id]
	return ok && a.Active
}

// Role returns the agent's current display role name, or "" if unknown.
func (r *Registry) Role(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.agents[id]; ok {
		return a.Role
	}
	return ""
}

// SetActive flips an agent's active flag in memory and in the store.
func (r *Registry) SetActive(id string, active bool) error {
	r.mu.Lock()
	a, ok := r.agents[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("agent %s not found", id)
	}
	a.Active = active
	r.mu.Unlock()

	if err := r.store.SetAgentActive(id, active); err != nil {
		return fmt.Errorf("persist active flag: %w", err)
	}
	return nil
}

// SetRole changes an agent's display role name in memory and in the store.
// The canonical identifier, behavior template, and turn position are
// unaffected.
func (r *Registry) SetRole(id, role string) error {
	r.mu.Lock()
	a, ok := r.agents[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("agent %s not found", id)
	}
	a.Role = role
	r.mu.Unlock()

	if err := r.store.SetAgentRole(id, role); err != nil {
		return fmt.Errorf("persist role: %w", err)
	}
	return nil
}

// SetSystemPrompt replaces an agent's behavior template in memory and in
// the store.
func (r *Registry) SetSystemPrompt(id, prompt string) error {
	r.mu.Lock()
	a, ok := r.agents[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("agent %s not found", id)
	}
	a.SystemPrompt = prompt
	r.mu.Unlock()

	if err := r.store.SetAgentSystemPrompt(id, prompt); err != nil {
		return fmt.Errorf("persist system prompt: %w", err)
	}
	return nil
}

// SetLastResponse caches an agent's most recent reply. Informational only;
// not persisted.
func (r *Registry) SetLastResponse(id, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.agents[id]; ok {
		a.LastResponse = content
	}
}

// Snapshot returns copies of all agents in canonical turn order.
func (r *Registry) Snapshot() []models.Agent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agents := make([]models.Agent, 0, len(r.agents))
	for _, id := range models.TurnOrder {
		if a, ok := r.agents[id]; ok {
			agents = append(agents, *a)
		}
	}
	return agents
}
