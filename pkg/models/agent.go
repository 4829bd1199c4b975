package models

import "time"

// Canonical agent identifiers. These are fixed: routing, turn order, and
// behavior templates are keyed by identifier, while the display role name
// is freely editable by the operator.
const (
	// AgentScrumMaster runs the team: assigns tasks and tracks progress.
	AgentScrumMaster = "scrum-master"
	// AgentJuniorDev implements features and opens pull requests.
	AgentJuniorDev = "junior-dev"
	// AgentSeniorDev reviews pull requests and merges approved work.
	AgentSeniorDev = "senior-dev"
)

// TurnOrder is the canonical response order when no agent is tagged.
var TurnOrder = []string{AgentScrumMaster, AgentJuniorDev, AgentSeniorDev}

// ValidAgentID returns true if id is one of the canonical identifiers.
func ValidAgentID(id string) bool {
	switch id {
	case AgentScrumMaster, AgentJuniorDev, AgentSeniorDev:
		return true
	default:
		return false
	}
}

// Agent represents one member of the simulated team.
type Agent struct {
	// ID is the canonical identifier (scrum-master, junior-dev, senior-dev).
	ID string `json:"id"`
	// Role is the display role name shown as the message author.
	Role string `json:"role"`
	// SystemPrompt is the static behavior template for this identifier.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Active controls whether the agent takes part in response sequences.
	Active bool `json:"active"`
	// LastResponse caches the agent's most recent reply. Informational only.
	LastResponse string `json:"last_response,omitempty"`
	// CreatedAt is when the agent record was first seeded.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the agent record was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
