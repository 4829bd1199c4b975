package team

import (
	"strings"

	"github.com/standuplabs/standup/pkg/models"
)

// ActionType identifies a workflow an agent response can trigger.
type ActionType string

const (
	ActionCreatePR ActionType = "create_pr"
	ActionReviewPR ActionType = "review_pr"
)

// PendingAction is a workflow intent attached to a generated response.
// It lives only for the duration of the turn that produced it.
type PendingAction struct {
	Type ActionType

	// Task is the human message that described the work (create_pr).
	Task string

	// Context is the history entry that announced the PR (review_pr).
	Context string
}

// Classifier decides whether an agent's turn should trigger a workflow.
// It runs before generation so a failed generation can suppress the
// action without re-evaluating anything.
type Classifier interface {
	Classify(agentID, humanMessage string, history []models.Message) *PendingAction
}

// taskKeywords mark a human message as a work assignment for the junior
// developer. Matching is substring within whitespace-split lowercased
// tokens, so "building" and "subtask" count.
var taskKeywords = []string{"implement", "create", "build", "add", "feature", "task"}

// keywordClassifier is the default trigger logic: junior-dev creates a PR
// on task-like messages, senior-dev reviews when the junior recently
// announced a PR, the scrum master never triggers anything.
type keywordClassifier struct {
	// juniorRole yields the junior developer's current display role,
	// which is what history entries carry as Author.
	juniorRole func() string
}

func (c *keywordClassifier) Classify(agentID, humanMessage string, history []models.Message) *PendingAction {
	switch agentID {
	case models.AgentJuniorDev:
		return c.classifyCreate(humanMessage)
	case models.AgentSeniorDev:
		return c.classifyReview(history)
	}
	return nil
}

func (c *keywordClassifier) classifyCreate(humanMessage string) *PendingAction {
	words := strings.Fields(strings.ToLower(humanMessage))

	for _, word := range words {
		for _, keyword := range taskKeywords {
			if strings.Contains(word, keyword) {
				return &PendingAction{Type: ActionCreatePR, Task: humanMessage}
			}
		}
	}
	return nil
}

func (c *keywordClassifier) classifyReview(history []models.Message) *PendingAction {
	juniorRole := c.juniorRole()

	start := len(history) - 5
	if start < 0 {
		start = 0
	}

	for _, msg := range history[start:] {
		if msg.Type != models.MessageAI || msg.Author != juniorRole {
			continue
		}
		if strings.Contains(msg.Content, "pull request") || strings.Contains(msg.Content, "PR") {
			return &PendingAction{Type: ActionReviewPR, Context: msg.Content}
		}
	}
	return nil
}
