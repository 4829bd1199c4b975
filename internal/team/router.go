package team

import (
	"strings"

	"github.com/standuplabs/standup/pkg/models"
)

// tagRule maps a tag token to the agents it addresses. Rules are scanned
// in order and the first rule that names an agent fixes that agent's
// position in the response sequence.
type tagRule struct {
	tag     string
	targets []string
}

// tagRules is the routing table. Order matters: targeted agents respond
// in rule-match order, so @PO before @SENIOR puts the scrum master first
// even if the message mentions @SENIOR earlier in its text.
var tagRules = []tagRule{
	{"@PO", []string{models.AgentScrumMaster}},
	{"@SCRUM", []string{models.AgentScrumMaster}},
	{"@SM", []string{models.AgentScrumMaster}},
	{"@SENIOR", []string{models.AgentSeniorDev}},
	{"@SR", []string{models.AgentSeniorDev}},
	{"@JUNIOR", []string{models.AgentJuniorDev}},
	{"@JR", []string{models.AgentJuniorDev}},
	{"@DEV", []string{models.AgentSeniorDev, models.AgentJuniorDev}},
	{"@ALL", []string{models.AgentScrumMaster, models.AgentSeniorDev, models.AgentJuniorDev}},
}

// ExtractTargets scans a message for agent tags and returns the tagged
// agent IDs, deduplicated, in rule-match order. Matching is a
// case-insensitive substring scan, so "@po" and "email@policy.com" both
// match @PO. An empty result means nobody was tagged and the default
// turn order applies.
func ExtractTargets(content string) []string {
	upper := strings.ToUpper(content)

	var targets []string
	seen := make(map[string]bool)

	for _, rule := range tagRules {
		if !strings.Contains(upper, rule.tag) {
			continue
		}
		for _, id := range rule.targets {
			if !seen[id] {
				seen[id] = true
				targets = append(targets, id)
			}
		}
	}

	return targets
}
