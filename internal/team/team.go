// Package team implements the turn-orchestration engine for the simulated
// development team: tag routing, turn scheduling, the single-flight
// response pipeline, and the PR create/review workflows.
package team

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/standuplabs/standup/internal/vcs"
	"github.com/standuplabs/standup/pkg/models"
)

// Generator produces agent dialogue, feature code, and code reviews.
// Implemented by llm.Client.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMessage string, history []models.Message, projectContext string) (string, error)
	GenerateCode(ctx context.Context, task string) (string, error)
	GenerateReview(ctx context.Context, code, description string) (review string, approved bool, err error)
}

// VCS performs version-control side effects. Implemented by vcs.Client.
type VCS interface {
	CreateBranch(ctx context.Context, name, base string) error
	CreateOrUpdateFile(ctx context.Context, path, content, message, branch string) error
	CreatePullRequest(ctx context.Context, title, body, head, base string) (vcs.PullRequest, error)
}

// Store is the persistence capability: the append-only chat log, the agent
// table, and the task table. Implemented by store.DB.
type Store interface {
	AppendMessage(m *models.Message) error
	RecentMessages(limit int) ([]models.Message, error)
	ListAgents() ([]models.Agent, error)
	SetAgentActive(id string, active bool) error
	SetAgentRole(id, role string) error
	SetAgentSystemPrompt(id, prompt string) error
	InsertTask(t *models.Task) error
	UpdateTaskStatus(id string, status models.TaskStatus) error
	TasksByStatus(status models.TaskStatus) ([]models.Task, error)
}

// newAgentMessage builds an AI message authored by the agent's display role.
func newAgentMessage(agent models.Agent, content string, tagged bool) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    agent.Role,
		Timestamp: time.Now(),
		Type:      models.MessageAI,
		Tagged:    tagged,
	}
}

// newSystemMessage builds a system notice.
func newSystemMessage(content string) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    "System",
		Timestamp: time.Now(),
		Type:      models.MessageSystem,
	}
}

// emit persists a message best-effort and delivers it. A persistence
// failure is logged but never blocks delivery.
func emit(store Store, m models.Message, deliver func(models.Message)) {
	if err := store.AppendMessage(&m); err != nil {
		debugLog("[team] persist message %s: %v", m.ID, err)
	}
	deliver(m)
}
