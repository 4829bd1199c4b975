package store

import (
	"fmt"
	"time"

	"github.com/standuplabs/standup/pkg/models"
)

// seedAgents inserts the three canonical agents if the table is empty.
// The behavior templates are static per identifier; the operator can
// later change display roles and active flags but never add or remove
// team members.
func (db *DB) seedAgents() error {
	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM agents")
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("count agents: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []models.Agent{
		{
			ID:           models.AgentScrumMaster,
			Role:         "Scrum Master/PO",
			SystemPrompt: "You are a Scrum Master and Product Owner. You assign tasks, manage the development process, run tests, and ensure quality. You are organized, detail-oriented, and focus on project delivery.",
			Active:       true,
		},
		{
			ID:           models.AgentSeniorDev,
			Role:         "Senior Developer",
			SystemPrompt: "You are a Senior Developer. You review code, provide technical guidance, merge pull requests when approved, and mentor junior developers. You focus on code quality, best practices, and architecture.",
			Active:       true,
		},
		{
			ID:           models.AgentJuniorDev,
			Role:         "Junior Developer",
			SystemPrompt: "You are a Junior Developer. You write code, create pull requests, ask questions, and learn from feedback. You are eager to learn and implement features assigned by the team.",
			Active:       true,
		},
	}

	now := time.Now()
	for _, a := range seeds {
		_, err := db.Exec(`
			INSERT INTO agents (id, role, system_prompt, active, created_at, updated_at)
			VALUES (?, ?, ?, 1, ?, ?)
		`, a.ID, a.Role, a.SystemPrompt, formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("seed agent %s: %w", a.ID, err)
		}
	}

	return nil
}

// ListAgents returns all agents ordered by creation time.
func (db *DB) ListAgents() ([]models.Agent, error) {
	rows, err := db.Query(`
		SELECT id, role, system_prompt, active, created_at, updated_at
		FROM agents ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		var a models.Agent
		var active int
		var createdAt, updatedAt string
		if err := rows.Scan(&a.ID, &a.Role, &a.SystemPrompt, &active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		a.Active = active != 0
		a.CreatedAt, _ = parseTime(createdAt)
		a.UpdatedAt, _ = parseTime(updatedAt)
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agents: %w", err)
	}

	return agents, nil
}

// SetAgentActive updates an agent's active flag.
func (db *DB) SetAgentActive(id string, active bool) error {
	flag := 0
	if active {
		flag = 1
	}
	return db.updateAgent(id, "active", flag)
}

// SetAgentRole updates an agent's display role name.
func (db *DB) SetAgentRole(id, role string) error {
	return db.updateAgent(id, "role", role)
}

// SetAgentSystemPrompt replaces an agent's behavior template.
func (db *DB) SetAgentSystemPrompt(id, prompt string) error {
	return db.updateAgent(id, "system_prompt", prompt)
}

func (db *DB) updateAgent(id, column string, value any) error {
	res, err := db.Exec(
		"UPDATE agents SET "+column+" = ?, updated_at = ? WHERE id = ?",
		value, formatTime(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("update agent %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update agent %s: rows affected: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("agent %s not found", id)
	}
	return nil
}
