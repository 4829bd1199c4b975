package models

import "time"

// TaskStatus represents the review state of a simulated code change.
// Tasks are created in review and only ever move forward to completed.
type TaskStatus string

const (
	// TaskInReview indicates a pull request is open and awaiting review.
	TaskInReview TaskStatus = "in_review"
	// TaskCompleted indicates the pull request was approved and merged.
	TaskCompleted TaskStatus = "completed"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskInReview, TaskCompleted:
		return true
	default:
		return false
	}
}

// Task tracks one simulated code change from pull request to merge.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`
	// Title is the task text that triggered the change.
	Title string `json:"title"`
	// Description provides additional context about the task.
	Description string `json:"description,omitempty"`
	// Status is the current review state.
	Status TaskStatus `json:"status"`
	// AssignedTo is the canonical identifier of the responsible agent.
	AssignedTo string `json:"assigned_to,omitempty"`
	// PRURL is the URL of the pull request opened for this task.
	PRURL string `json:"pr_url,omitempty"`
	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
