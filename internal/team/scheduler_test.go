package team

import (
	"reflect"
	"testing"

	"github.com/standuplabs/standup/pkg/models"
)

func TestBuildSequenceDefaultOrder(t *testing.T) {
	reg := newTestRegistry(newFakeStore())

	got := BuildSequence(nil, reg)
	want := []string{models.AgentScrumMaster, models.AgentJuniorDev, models.AgentSeniorDev}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSequence(nil) = %v, want %v", got, want)
	}
}

func TestBuildSequenceTaggedFirst(t *testing.T) {
	reg := newTestRegistry(newFakeStore())

	got := BuildSequence([]string{models.AgentSeniorDev}, reg)
	want := []string{models.AgentSeniorDev, models.AgentScrumMaster, models.AgentJuniorDev}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSequence = %v, want %v", got, want)
	}
}

func TestBuildSequenceSkipsInactive(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	if err := reg.SetActive(models.AgentJuniorDev, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	got := BuildSequence(nil, reg)
	want := []string{models.AgentScrumMaster, models.AgentSeniorDev}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSequence with inactive junior = %v, want %v", got, want)
	}

	// A tagged inactive agent is still excluded.
	got = BuildSequence([]string{models.AgentJuniorDev}, reg)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildSequence tagging inactive junior = %v, want %v", got, want)
	}
}

func TestBuildSequenceAllInactive(t *testing.T) {
	store := newFakeStore()
	reg := newTestRegistry(store)
	for _, id := range models.TurnOrder {
		if err := reg.SetActive(id, false); err != nil {
			t.Fatalf("SetActive(%s): %v", id, err)
		}
	}

	if got := BuildSequence(nil, reg); len(got) != 0 {
		t.Errorf("BuildSequence with everyone inactive = %v, want empty", got)
	}
}
