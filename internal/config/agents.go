package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AgentSeed describes one agent in an agents yaml file. Only the fields
// present are applied; a missing role or prompt keeps the stored value.
type AgentSeed struct {
	// ID is the canonical agent identifier (scrum-master, junior-dev,
	// senior-dev).
	ID string `yaml:"id"`
	// Role is the display name override.
	Role string `yaml:"role"`
	// SystemPrompt is the behavior template override.
	SystemPrompt string `yaml:"system_prompt"`
	// Active optionally sets the initial active flag.
	Active *bool `yaml:"active"`
}

// AgentsFile is the parsed shape of an agents yaml file.
type AgentsFile struct {
	Agents []AgentSeed `yaml:"agents"`
}

// LoadAgentsFile parses an agents yaml file.
func LoadAgentsFile(path string) (*AgentsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agents file: %w", err)
	}

	var f AgentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse agents file %s: %w", path, err)
	}

	for _, a := range f.Agents {
		if a.ID == "" {
			return nil, fmt.Errorf("agents file %s: entry missing id", path)
		}
	}

	return &f, nil
}
