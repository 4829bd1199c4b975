package models

import "testing"

func TestValidAgentID(t *testing.T) {
	valid := []string{AgentScrumMaster, AgentJuniorDev, AgentSeniorDev}
	for _, id := range valid {
		if !ValidAgentID(id) {
			t.Errorf("expected %q to be a valid agent ID", id)
		}
	}

	invalid := []string{"", "intern", "Scrum-Master", "junior_dev"}
	for _, id := range invalid {
		if ValidAgentID(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestTurnOrder(t *testing.T) {
	want := []string{AgentScrumMaster, AgentJuniorDev, AgentSeniorDev}
	if len(TurnOrder) != len(want) {
		t.Fatalf("expected %d entries in turn order, got %d", len(want), len(TurnOrder))
	}
	for i, id := range want {
		if TurnOrder[i] != id {
			t.Errorf("turn order position %d: expected %s, got %s", i, id, TurnOrder[i])
		}
	}
}
