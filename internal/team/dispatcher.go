package team

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/standuplabs/standup/pkg/models"
)

// Dispatcher executes the workflows a turn can trigger: opening a pull
// request for the junior developer and reviewing one for the senior
// developer. It runs synchronously inside the response pipeline.
type Dispatcher struct {
	gen   Generator
	vcs   VCS
	store Store

	// baseBranch is the branch PRs target, typically "main".
	baseBranch string

	// mergeDelay is the pause between an approved review and the
	// simulated merge.
	mergeDelay time.Duration
}

// NewDispatcher wires the workflow executor.
func NewDispatcher(gen Generator, vcs VCS, store Store, baseBranch string, mergeDelay time.Duration) *Dispatcher {
	if baseBranch == "" {
		baseBranch = "main"
	}
	return &Dispatcher{
		gen:        gen,
		vcs:        vcs,
		store:      store,
		baseBranch: baseBranch,
		mergeDelay: mergeDelay,
	}
}

// Dispatch runs one pending action. Failures never propagate: the
// create-PR path reports them as a chat message, the review path drops
// them silently.
func (d *Dispatcher) Dispatch(ctx context.Context, agent models.Agent, action *PendingAction, deliver func(models.Message)) {
	switch action.Type {
	case ActionCreatePR:
		d.createPullRequest(ctx, agent, action.Task, deliver)
	case ActionReviewPR:
		d.reviewPullRequest(ctx, agent, deliver)
	}
}

// createPullRequest generates code for the task, pushes it to a feature
// branch, opens a PR, and records the task as in review. Any step
// failing yields one canned failure message and no task row.
func (d *Dispatcher) createPullRequest(ctx context.Context, agent models.Agent, task string, deliver func(models.Message)) {
	code, err := d.gen.GenerateCode(ctx, task)
	if err != nil {
		debugLog("[team] generate code: %v", err)
		emit(d.store, newAgentMessage(agent, prFailureNotice, false), deliver)
		return
	}

	branch := "feature/" + slug(task, 30)

	if err := d.vcs.CreateBranch(ctx, branch, d.baseBranch); err != nil {
		debugLog("[team] create branch %s: %v", branch, err)
		emit(d.store, newAgentMessage(agent, prFailureNotice, false), deliver)
		return
	}

	path := fmt.Sprintf("src/feature-%d.js", time.Now().UnixMilli())
	commitMsg := fmt.Sprintf("Add feature: %s", task)

	if err := d.vcs.CreateOrUpdateFile(ctx, path, code, commitMsg, branch); err != nil {
		debugLog("[team] create file %s: %v", path, err)
		emit(d.store, newAgentMessage(agent, prFailureNotice, false), deliver)
		return
	}

	title := fmt.Sprintf("Feature: %s", task)
	body := fmt.Sprintf("This PR implements: %s\n\n%s", task, code)

	pr, err := d.vcs.CreatePullRequest(ctx, title, body, branch, d.baseBranch)
	if err != nil {
		debugLog("[team] create PR: %v", err)
		emit(d.store, newAgentMessage(agent, prFailureNotice, false), deliver)
		return
	}

	t := models.Task{
		ID:          uuid.NewString(),
		Title:       task,
		Description: "Generated by Junior Developer AI",
		Status:      models.TaskInReview,
		AssignedTo:  models.AgentJuniorDev,
		PRURL:       pr.URL,
	}
	if err := d.store.InsertTask(&t); err != nil {
		debugLog("[team] insert task: %v", err)
		emit(d.store, newAgentMessage(agent, prFailureNotice, false), deliver)
		return
	}

	excerpt := code
	if len(excerpt) > 200 {
		excerpt = excerpt[:200]
	}
	summary := fmt.Sprintf(prSummaryFmt, pr.URL, excerpt)
	emit(d.store, newAgentMessage(agent, summary, false), deliver)
}

// reviewPullRequest reviews the newest in-review task. The PR context
// from the triggering message is not correlated to a specific task; the
// newest one is assumed to be the announced PR. No in-review tasks is a
// silent no-op.
func (d *Dispatcher) reviewPullRequest(ctx context.Context, agent models.Agent, deliver func(models.Message)) {
	tasks, err := d.store.TasksByStatus(models.TaskInReview)
	if err != nil {
		debugLog("[team] list in-review tasks: %v", err)
		return
	}
	if len(tasks) == 0 {
		return
	}

	latest := tasks[0]

	review, approved, err := d.gen.GenerateReview(ctx, "// Simulated code content for demo", latest.Title)
	if err != nil {
		debugLog("[team] generate review: %v", err)
		return
	}

	banner := changesBanner
	if approved {
		banner = approvedBanner
	}
	emit(d.store, newAgentMessage(agent, fmt.Sprintf(reviewFmt, latest.Title, review, banner), false), deliver)

	if !approved {
		return
	}

	if d.mergeDelay > 0 {
		time.Sleep(d.mergeDelay)
	}

	if err := d.store.UpdateTaskStatus(latest.ID, models.TaskCompleted); err != nil {
		debugLog("[team] complete task %s: %v", latest.ID, err)
		return
	}

	emit(d.store, newAgentMessage(agent, fmt.Sprintf(mergeFmt, latest.Title), false), deliver)
}

// slug turns a task description into a branch-name fragment: lowercased,
// runs of non-alphanumerics collapsed to hyphens, capped at max bytes.
func slug(s string, max int) string {
	var b strings.Builder
	lastHyphen := false

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	out := b.String()
	if len(out) > max {
		out = out[:max]
	}
	return out
}
