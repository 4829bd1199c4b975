package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/standuplabs/standup/pkg/models"
)

// memoryCharLimit bounds how much recent conversation is replayed into
// each generation call.
const memoryCharLimit = 2000

// Generate produces an in-character chat reply for an agent.
// systemPrompt is the agent's behavior template plus role guidance;
// history is the rolling conversation window.
func (c *Client) Generate(ctx context.Context, systemPrompt, userMessage string, history []models.Message, projectContext string) (string, error) {
	if projectContext == "" {
		projectContext = "Multi-Agent Development Team working on various software features and improvements."
	}

	user := fmt.Sprintf(`PROJECT CONTEXT: %s

CONVERSATION MEMORY (Recent Discussion):
%s

IMPORTANT INSTRUCTIONS:
- Stay in character for your role
- Reference previous conversation when relevant
- Keep responses concise but helpful (max 150 words)
- If tagged directly (@YourRole), prioritize responding
- Build upon previous team discussions
- Be natural and conversational

Current message from human: %q

Respond as your character would, considering the full context above:`,
		projectContext, buildConversationMemory(history, memoryCharLimit), userMessage)

	text, err := c.complete(ctx, systemPrompt, user, 1024)
	if err != nil {
		return "", fmt.Errorf("generate response: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// GenerateCode produces a small self-contained implementation for a task.
// The result is committed verbatim to the feature branch.
func (c *Client) GenerateCode(ctx context.Context, task string) (string, error) {
	system := "You are a Junior Developer on a software team. You write clean, working JavaScript."
	user := fmt.Sprintf(`Write a single, self-contained JavaScript file implementing the following task:

%s

Respond with only the code, no surrounding explanation.`, task)

	text, err := c.complete(ctx, system, user, 2048)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// GenerateReview produces a code review for a pull request. The approved
// result is derived from the review text: any case-insensitive occurrence
// of "approved" counts as approval.
func (c *Client) GenerateReview(ctx context.Context, code, description string) (string, bool, error) {
	system := "You are a Senior Developer reviewing a pull request."
	user := fmt.Sprintf(`Pull Request Description: %s

Code to review:
`+"```"+`
%s
`+"```"+`

Please provide a constructive code review. Focus on:
- Code quality and best practices
- Potential bugs or issues
- Suggestions for improvement
- Whether you approve or request changes

Keep your review professional and helpful. End with either "APPROVED" or "REQUEST_CHANGES".`,
		description, code)

	text, err := c.complete(ctx, system, user, 1024)
	if err != nil {
		return "", false, fmt.Errorf("generate review: %w", err)
	}

	review := strings.TrimSpace(text)
	approved := strings.Contains(strings.ToLower(review), "approved")
	return review, approved, nil
}

// buildConversationMemory renders recent history as "Author: content" lines,
// newest-backwards, until the character budget is exhausted. The returned
// transcript is in chronological order.
func buildConversationMemory(history []models.Message, maxChars int) string {
	if len(history) == 0 {
		return "No previous conversation."
	}

	var memory string
	length := 0
	for i := len(history) - 1; i >= 0; i-- {
		line := fmt.Sprintf("%s: %s\n", history[i].Author, history[i].Content)
		if length+len(line) > maxChars {
			break
		}
		memory = line + memory
		length += len(line)
	}

	if memory == "" {
		return "No recent conversation."
	}
	return memory
}
