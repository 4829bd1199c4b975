package team

import "github.com/standuplabs/standup/pkg/models"

// BuildSequence decides which agents respond to a message and in what
// order. With no targets, it is the canonical turn order filtered to
// active agents. With targets, the targeted active agents come first in
// match order, then the remaining active agents in turn order. Inactive
// agents never appear.
func BuildSequence(targets []string, reg *Registry) []string {
	if len(targets) == 0 {
		var seq []string
		for _, id := range models.TurnOrder {
			if reg.IsActive(id) {
				seq = append(seq, id)
			}
		}
		return seq
	}

	var seq []string
	scheduled := make(map[string]bool)

	for _, id := range targets {
		if reg.IsActive(id) && !scheduled[id] {
			scheduled[id] = true
			seq = append(seq, id)
		}
	}
	for _, id := range models.TurnOrder {
		if reg.IsActive(id) && !scheduled[id] {
			scheduled[id] = true
			seq = append(seq, id)
		}
	}

	return seq
}
