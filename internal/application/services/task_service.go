package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/infrastructure/metrics"
	"github.com/taskflow/core/internal/ports"
)

// DefaultListLimit is applied when a listing does not specify a limit.
const DefaultListLimit = 100

// MaxListLimit bounds the number of records a single listing returns.
const MaxListLimit = 1000

// TaskService handles task-related operations and applies the business rules
// on every mutation
type TaskService struct {
	taskRepo ports.TaskRepository
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, m *metrics.Metrics, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		metrics:  m,
		logger:   logger.WithComponent("task_service"),
	}
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	now := time.Now()

	priority := entities.TaskPriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidPriority, priority)
	}

	if req.DueDate != nil && !req.DueDate.After(now) {
		return nil, entities.ErrDueDateInPast
	}

	task := &entities.Task{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		Status:         entities.TaskStatusPending,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    nil,
		DueDate:        req.DueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	task.ApplyDerivationRules(now)

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.TasksCreated.Inc()
	s.logger.Info("Task created successfully", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// GetTask retrieves a task by ID with a freshly recomputed overdue flag. The
// stored record is not touched on this path.
func (s *TaskService) GetTask(ctx context.Context, id string) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}

	task.IsOverdue = task.ComputeOverdue(time.Now())
	return task, nil
}

// UpdateTask applies a patch to a task. Only supplied fields overwrite the
// stored ones; absent fields are left unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	now := time.Now()

	// The patch is validated before the id is resolved, so a malformed request
	// against an unknown id reports the validation failure, not the lookup.
	if req.Status != nil && !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidStatus, *req.Status)
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidPriority, *req.Priority)
	}
	if req.DueDate != nil && !req.DueDate.After(now) {
		return nil, entities.ErrDueDateInPast
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", id, err)
	}

	// A completed task's status never changes. A patch that omits status still
	// trips this guard: the absent status compares not-equal-to-completed, so
	// callers must resend status=completed to touch any other field.
	if task.Status == entities.TaskStatusCompleted &&
		(req.Status == nil || *req.Status != entities.TaskStatusCompleted) {
		return nil, entities.ErrCompletedImmutable
	}

	wasCompleted := task.Status == entities.TaskStatusCompleted

	// Completing a task with no actual hours on either side defaults them from
	// the stored estimate, falling back to one hour.
	if req.Status != nil && *req.Status == entities.TaskStatusCompleted && !wasCompleted &&
		req.ActualHours == nil && task.ActualHours == nil {
		hours := entities.DefaultActualHours
		if task.EstimatedHours != nil {
			hours = *task.EstimatedHours
		}
		req.ActualHours = &hours
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		task.ActualHours = req.ActualHours
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	task.ApplyDerivationRules(now)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if !wasCompleted && task.Status == entities.TaskStatusCompleted {
		s.metrics.TasksCompleted.Inc()
	}
	s.logger.Info("Task updated successfully", "task_id", task.ID, "status", task.Status)

	return task, nil
}

// DeleteTask deletes a task unless it is in progress
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("task %s: %w", id, err)
	}

	if task.Status == entities.TaskStatusInProgress {
		return entities.ErrTaskInProgress
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.metrics.TasksDeleted.Inc()
	s.logger.Info("Task deleted successfully", "task_id", id)

	return nil
}

// DeleteAllTasks clears the store and returns the number of tasks deleted.
// Without force, any in-progress record blocks the whole operation and
// nothing is deleted.
func (s *TaskService) DeleteAllTasks(ctx context.Context, force bool) (int, error) {
	if !force {
		inProgress, err := s.taskRepo.CountByStatus(ctx, entities.TaskStatusInProgress)
		if err != nil {
			return 0, fmt.Errorf("failed to count in-progress tasks: %w", err)
		}
		if inProgress > 0 {
			return 0, fmt.Errorf("cannot delete %d in-progress tasks, use force=true to override: %w",
				inProgress, entities.ErrTasksInProgress)
		}
	}

	deleted, err := s.taskRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}

	s.metrics.TasksDeleted.Add(float64(deleted))
	s.logger.Info("All tasks deleted", "count", deleted, "forced", force)

	return deleted, nil
}

// ListTasks retrieves tasks with filtering, ordering and truncation. Overdue
// flags of the whole store are refreshed first, so the overdue-only filter
// sees current values.
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidStatus, *filter.Status)
	}
	if filter.Priority != nil && !filter.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidPriority, *filter.Priority)
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		return nil, fmt.Errorf("%w: got %d", entities.ErrInvalidLimit, filter.Limit)
	}

	if err := s.taskRepo.RefreshOverdue(ctx, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to refresh overdue flags: %w", err)
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}
