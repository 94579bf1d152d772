package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/ports"
)

// TaskRepository is the in-memory implementation of ports.TaskRepository.
// Records live for the lifetime of the process; a restart resets the store.
// The mutex makes every operation a critical section so readers and writers
// never interleave within a single logical operation.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*entities.Task
}

// NewTaskRepository creates an empty in-memory task repository
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]*entities.Task),
	}
}

// Create stores a new task record
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = task.Clone()
	return nil
}

// GetByID returns a copy of the stored record
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update replaces the stored record
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = task.Clone()
	return nil
}

// Delete removes the record permanently
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// DeleteAll clears the store and returns the number of records removed
func (r *TaskRepository) DeleteAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.tasks)
	r.tasks = make(map[string]*entities.Task)
	return count, nil
}

// CountByStatus returns the number of stored records with the given status
func (r *TaskRepository) CountByStatus(ctx context.Context, status entities.TaskStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, task := range r.tasks {
		if task.Status == status {
			count++
		}
	}
	return count, nil
}

// RefreshOverdue recomputes the overdue flag of every stored record in place.
func (r *TaskRepository) RefreshOverdue(ctx context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, task := range r.tasks {
		task.IsOverdue = task.ComputeOverdue(now)
	}
	return nil
}

// List returns copies of the records matching the filter, ordered urgent-first
// and newest-created-first within each urgency bucket, truncated to the limit.
// The overdue-only filter reads the stored flag; callers refresh it first.
func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := make([]*entities.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.OverdueOnly && !task.IsOverdue {
			continue
		}
		filtered = append(filtered, task.Clone())
	}

	sort.Slice(filtered, func(i, j int) bool {
		iUrgent := filtered[i].Priority == entities.TaskPriorityUrgent
		jUrgent := filtered[j].Priority == entities.TaskPriorityUrgent
		if iUrgent != jUrgent {
			return iUrgent
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if filter.Limit > 0 && len(filtered) > filter.Limit {
		filtered = filtered[:filter.Limit]
	}
	return filtered, nil
}
