package team

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/standuplabs/standup/pkg/models"
)

// Orchestrator runs the response pipeline for one human message at a
// time. A second message arriving while a pipeline is in flight is
// dropped with a busy notice, never queued.
type Orchestrator struct {
	registry   *Registry
	store      Store
	gen        Generator
	classifier Classifier
	dispatcher *Dispatcher

	// contextLimit is how many history entries feed each generation.
	contextLimit int

	// responseDelay paces consecutive agent turns. The first agent in a
	// sequence responds immediately.
	responseDelay time.Duration

	// busy is the single-flight gate.
	busy atomic.Bool
}

// OrchestratorConfig carries the orchestrator's tunables.
type OrchestratorConfig struct {
	// ContextLimit is the history window size. Zero means 50.
	ContextLimit int
	// ResponseDelay is the pause between consecutive agent turns.
	ResponseDelay time.Duration
}

// NewOrchestrator wires the pipeline. The dispatcher may be nil, in which
// case triggered actions are dropped (useful for a chat-only deployment
// with no GitHub configuration).
func NewOrchestrator(reg *Registry, store Store, gen Generator, dispatcher *Dispatcher, cfg OrchestratorConfig) *Orchestrator {
	limit := cfg.ContextLimit
	if limit <= 0 {
		limit = 50
	}

	return &Orchestrator{
		registry:      reg,
		store:         store,
		gen:           gen,
		classifier:    &keywordClassifier{juniorRole: func() string { return reg.Role(models.AgentJuniorDev) }},
		dispatcher:    dispatcher,
		contextLimit:  limit,
		responseDelay: cfg.ResponseDelay,
	}
}

// Busy reports whether a pipeline is currently in flight.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// Respond runs the full response pipeline for one human message. Every
// outcome, including failure, surfaces as delivered messages; Respond
// never returns an error.
//
// Agent active flags are re-read from the registry at each turn, so an
// operator toggle takes effect mid-sequence.
func (o *Orchestrator) Respond(ctx context.Context, content string, deliver func(models.Message)) {
	if !o.busy.CompareAndSwap(false, true) {
		debugLog("[team] pipeline busy, dropping message")
		deliver(newSystemMessage(busyNotice))
		return
	}
	defer o.busy.Store(false)

	debugLog("[team] pipeline start: %q", truncate(content, 80))

	history, err := o.store.RecentMessages(o.contextLimit)
	if err != nil {
		debugLog("[team] load history: %v", err)
		deliver(newSystemMessage(fmt.Sprintf(errorNoticeFmt, err)))
		return
	}

	targets := ExtractTargets(content)
	sequence := BuildSequence(targets, o.registry)
	debugLog("[team] targets=%v sequence=%v", targets, sequence)

	tagged := make(map[string]bool, len(targets))
	for _, id := range targets {
		tagged[id] = true
	}

	responded := 0
	for _, agentID := range sequence {
		// Live re-check: the operator may have deactivated this agent
		// since scheduling.
		agent, ok := o.registry.Get(agentID)
		if !ok || !agent.Active {
			continue
		}

		if responded > 0 && o.responseDelay > 0 {
			time.Sleep(o.responseDelay)
		}
		responded++

		reply, action := o.turn(ctx, agent, content, history, tagged[agentID])

		msg := newAgentMessage(agent, reply, tagged[agentID])
		emit(o.store, msg, deliver)
		o.registry.SetLastResponse(agentID, reply)

		// The new reply is visible to later agents in this same sequence.
		history = append(history, msg)

		if action != nil && o.dispatcher != nil {
			o.dispatcher.Dispatch(ctx, agent, action, deliver)
		}
	}

	debugLog("[team] pipeline done: %d responses", responded)
}

// turn produces one agent's reply and its triggered action, if any. The
// classifier runs first so that a generation failure suppresses the
// action along with the real reply.
func (o *Orchestrator) turn(ctx context.Context, agent models.Agent, content string, history []models.Message, tagged bool) (string, *PendingAction) {
	action := o.classifier.Classify(agent.ID, content, history)

	prompt := agent.SystemPrompt + roleGuidance(agent.ID, tagged)

	reply, err := o.gen.Generate(ctx, prompt, content, history, projectContext)
	if err != nil {
		debugLog("[team] generate for %s: %v", agent.ID, err)
		return fmt.Sprintf(apologyFmt, err), nil
	}

	return reply, action
}

// truncate shortens s for log lines.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
