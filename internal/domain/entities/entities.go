package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrDueDateInPast      = errors.New("due date must be in the future")
	ErrCompletedImmutable = errors.New("cannot change status of completed task")
	ErrTaskInProgress     = errors.New("cannot delete task in progress")
	ErrTasksInProgress    = errors.New("in-progress tasks block deletion")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidLimit       = errors.New("limit must be between 1 and 1000")
)

// Enums and types
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// UrgentDueDateWindow is the due date assigned to urgent tasks created without one.
const UrgentDueDateWindow = 24 * time.Hour

// DefaultActualHours is used when a task completes with no actual or estimated hours.
const DefaultActualHours = 1.0

// Task represents a unit of trackable work
type Task struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	Priority       TaskPriority `json:"priority"`
	Status         TaskStatus   `json:"status"`
	EstimatedHours *float64     `json:"estimated_hours"`
	ActualHours    *float64     `json:"actual_hours"`
	DueDate        *time.Time   `json:"due_date"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	IsOverdue      bool         `json:"is_overdue"`
}

// ComputeOverdue reports whether the task is past its due date and not completed.
// The stored flag is never trusted; callers recompute before returning a task.
func (t *Task) ComputeOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.Status != TaskStatusCompleted && now.After(*t.DueDate)
}

// ApplyDerivationRules runs the fixed post-mutation adjustments, in order:
// completed tasks get actual hours filled in, urgent tasks get a due date,
// the overdue flag is recomputed, and the update timestamp is bumped.
func (t *Task) ApplyDerivationRules(now time.Time) {
	if t.Status == TaskStatusCompleted && t.ActualHours == nil {
		hours := DefaultActualHours
		if t.EstimatedHours != nil {
			hours = *t.EstimatedHours
		}
		t.ActualHours = &hours
	}

	if t.Priority == TaskPriorityUrgent && t.DueDate == nil {
		due := now.Add(UrgentDueDateWindow)
		t.DueDate = &due
	}

	t.IsOverdue = t.ComputeOverdue(now)
	t.UpdatedAt = now
}

// Clone returns a deep copy of the task. The store hands out clones so callers
// never alias its records.
func (t *Task) Clone() *Task {
	clone := *t
	if t.Description != nil {
		v := *t.Description
		clone.Description = &v
	}
	if t.EstimatedHours != nil {
		v := *t.EstimatedHours
		clone.EstimatedHours = &v
	}
	if t.ActualHours != nil {
		v := *t.ActualHours
		clone.ActualHours = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		clone.DueDate = &v
	}
	return &clone
}

// Utility methods
func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

func (tp TaskPriority) IsValid() bool {
	switch tp {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}
