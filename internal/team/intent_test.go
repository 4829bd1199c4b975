package team

import (
	"testing"

	"github.com/standuplabs/standup/pkg/models"
)

func testClassifier() *keywordClassifier {
	return &keywordClassifier{juniorRole: func() string { return "Junior Developer" }}
}

func TestClassifyCreatePR(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		message string
		want    bool
	}{
		{"Please build the login page", true},
		{"implement user auth", true},
		{"Can you add a dark mode feature?", true},
		{"We are rebuilding the pipeline", true}, // "rebuilding" contains "build"
		{"Hello team, how are you?", false},
		{"What did you think of the demo?", false},
	}

	for _, tt := range tests {
		action := c.Classify(models.AgentJuniorDev, tt.message, nil)
		if got := action != nil; got != tt.want {
			t.Errorf("Classify(junior, %q) triggered=%v, want %v", tt.message, got, tt.want)
		}
		if action != nil {
			if action.Type != ActionCreatePR {
				t.Errorf("action type = %s, want %s", action.Type, ActionCreatePR)
			}
			if action.Task != tt.message {
				t.Errorf("action task = %q, want the full message", action.Task)
			}
		}
	}
}

func TestClassifyReviewPR(t *testing.T) {
	c := testClassifier()

	prMsg := models.Message{Type: models.MessageAI, Author: "Junior Developer", Content: "I've created a pull request for this task"}

	tests := []struct {
		name    string
		history []models.Message
		want    bool
	}{
		{
			name:    "recent junior PR message",
			history: []models.Message{prMsg},
			want:    true,
		},
		{
			name: "PR mention outside the last five entries",
			history: append([]models.Message{prMsg},
				make([]models.Message, 5)...),
			want: false,
		},
		{
			name:    "human mentions PR",
			history: []models.Message{{Type: models.MessageHuman, Author: "Human", Content: "any PR updates?"}},
			want:    false,
		},
		{
			name:    "different author",
			history: []models.Message{{Type: models.MessageAI, Author: "Senior Developer", Content: "the PR looks fine"}},
			want:    false,
		},
		{
			name:    "case sensitive acronym",
			history: []models.Message{{Type: models.MessageAI, Author: "Junior Developer", Content: "opened a pr for review"}},
			want:    false,
		},
		{
			name:    "empty history",
			history: nil,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := c.Classify(models.AgentSeniorDev, "status?", tt.history)
			if got := action != nil; got != tt.want {
				t.Errorf("triggered=%v, want %v", got, tt.want)
			}
			if action != nil && action.Type != ActionReviewPR {
				t.Errorf("action type = %s, want %s", action.Type, ActionReviewPR)
			}
		})
	}
}

func TestClassifyReviewUsesLiveRole(t *testing.T) {
	role := "Junior Developer"
	c := &keywordClassifier{juniorRole: func() string { return role }}
	history := []models.Message{{Type: models.MessageAI, Author: "Intern", Content: "created a pull request"}}

	if c.Classify(models.AgentSeniorDev, "", history) != nil {
		t.Error("triggered before the role change")
	}

	role = "Intern"
	if c.Classify(models.AgentSeniorDev, "", history) == nil {
		t.Error("did not trigger after the role change")
	}
}

func TestClassifyScrumMasterNeverTriggers(t *testing.T) {
	c := testClassifier()
	history := []models.Message{{Type: models.MessageAI, Author: "Junior Developer", Content: "created a pull request"}}

	if c.Classify(models.AgentScrumMaster, "please build the thing", history) != nil {
		t.Error("scrum master produced an action")
	}
}
