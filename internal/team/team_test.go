package team

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/standuplabs/standup/internal/vcs"
	"github.com/standuplabs/standup/pkg/models"
)

// fakeStore is an in-memory Store for pipeline tests.
type fakeStore struct {
	mu       sync.Mutex
	messages []models.Message
	agents   []models.Agent
	tasks    []models.Task

	appendErr error
	recentErr error
	insertErr error
}

func newFakeStore() *fakeStore {
	now := time.Now()
	return &fakeStore{
		agents: []models.Agent{
			{ID: models.AgentScrumMaster, Role: "Scrum Master/PO", SystemPrompt: "You are the scrum master.", Active: true, CreatedAt: now, UpdatedAt: now},
			{ID: models.AgentJuniorDev, Role: "Junior Developer", SystemPrompt: "You are the junior dev.", Active: true, CreatedAt: now, UpdatedAt: now},
			{ID: models.AgentSeniorDev, Role: "Senior Developer", SystemPrompt: "You are the senior dev.", Active: true, CreatedAt: now, UpdatedAt: now},
		},
	}
}

func (s *fakeStore) AppendMessage(m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.messages = append(s.messages, *m)
	return nil
}

func (s *fakeStore) RecentMessages(limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	msgs := s.messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *fakeStore) ListAgents() ([]models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Agent, len(s.agents))
	copy(out, s.agents)
	return out, nil
}

func (s *fakeStore) SetAgentActive(id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.agents {
		if s.agents[i].ID == id {
			s.agents[i].Active = active
			return nil
		}
	}
	return errors.New("agent not found")
}

func (s *fakeStore) SetAgentRole(id, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.agents {
		if s.agents[i].ID == id {
			s.agents[i].Role = role
			return nil
		}
	}
	return errors.New("agent not found")
}

func (s *fakeStore) SetAgentSystemPrompt(id, prompt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.agents {
		if s.agents[i].ID == id {
			s.agents[i].SystemPrompt = prompt
			return nil
		}
	}
	return errors.New("agent not found")
}

func (s *fakeStore) InsertTask(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.tasks = append(s.tasks, *t)
	return nil
}

func (s *fakeStore) UpdateTaskStatus(id string, status models.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = status
			return nil
		}
	}
	return errors.New("task not found")
}

func (s *fakeStore) TasksByStatus(status models.TaskStatus) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the real store's ordering.
	var out []models.Task
	for i := len(s.tasks) - 1; i >= 0; i-- {
		if s.tasks[i].Status == status {
			out = append(out, s.tasks[i])
		}
	}
	return out, nil
}

func (s *fakeStore) taskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// fakeGenerator returns canned responses and can be made to fail.
type fakeGenerator struct {
	mu    sync.Mutex
	calls int

	generateErr error
	reviewText  string
	approved    bool
	reviewErr   error
	codeErr     error
}

func (g *fakeGenerator) Generate(ctx context.Context, systemPrompt, userMessage string, history []models.Message, projectContext string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.generateErr != nil {
		return "", g.generateErr
	}
	return fmt.Sprintf("response %d", g.calls), nil
}

func (g *fakeGenerator) GenerateCode(ctx context.Context, task string) (string, error) {
	if g.codeErr != nil {
		return "", g.codeErr
	}
	return "function feature() { return true; }", nil
}

func (g *fakeGenerator) GenerateReview(ctx context.Context, code, description string) (string, bool, error) {
	if g.reviewErr != nil {
		return "", false, g.reviewErr
	}
	return g.reviewText, g.approved, nil
}

// fakeVCS records calls and can be made to fail at any step.
type fakeVCS struct {
	branches []string
	files    []string
	prs      []string

	branchErr error
	fileErr   error
	prErr     error
}

func (v *fakeVCS) CreateBranch(ctx context.Context, name, base string) error {
	if v.branchErr != nil {
		return v.branchErr
	}
	v.branches = append(v.branches, name)
	return nil
}

func (v *fakeVCS) CreateOrUpdateFile(ctx context.Context, path, content, message, branch string) error {
	if v.fileErr != nil {
		return v.fileErr
	}
	v.files = append(v.files, path)
	return nil
}

func (v *fakeVCS) CreatePullRequest(ctx context.Context, title, body, head, base string) (vcs.PullRequest, error) {
	if v.prErr != nil {
		return vcs.PullRequest{}, v.prErr
	}
	v.prs = append(v.prs, title)
	return vcs.PullRequest{Number: 42, URL: "https://github.com/acme/demo/pull/42"}, nil
}

// newTestRegistry returns a loaded registry over a fresh fake store.
func newTestRegistry(store *fakeStore) *Registry {
	reg := NewRegistry(store)
	if err := reg.Load(); err != nil {
		panic(err)
	}
	return reg
}

// collect returns a deliver func appending to the given slice.
func collect(out *[]models.Message) func(models.Message) {
	return func(m models.Message) { *out = append(*out, m) }
}
