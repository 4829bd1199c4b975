package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/standuplabs/standup/pkg/models"
)

var (
	humanStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// agentStyles gives each canonical agent a stable color.
var agentStyles = map[string]lipgloss.Style{
	models.AgentScrumMaster: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	models.AgentJuniorDev:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
	models.AgentSeniorDev:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
}

var defaultAgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Bold(true)

// authorStyle picks the style for a message author. Agent messages are
// matched by display role via the roster.
func authorStyle(m models.Message, roster []models.Agent) lipgloss.Style {
	switch m.Type {
	case models.MessageHuman:
		return humanStyle
	case models.MessageSystem:
		return systemStyle
	}

	for _, a := range roster {
		if a.Role == m.Author {
			if s, ok := agentStyles[a.ID]; ok {
				return s
			}
		}
	}
	return defaultAgentStyle
}
