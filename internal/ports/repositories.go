package ports

import (
	"context"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations. The backing
// store is an in-memory keyed container; every method is a critical section.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id string) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	CountByStatus(ctx context.Context, status entities.TaskStatus) (int, error)
	// RefreshOverdue recomputes and stores the overdue flag of every record.
	// It is the explicit write step a listing performs before reading.
	RefreshOverdue(ctx context.Context, now time.Time) error
}

// TaskFilter holds the filters a listing applies, in order: status match,
// priority match, overdue-only. Limit truncates the sorted result.
type TaskFilter struct {
	Status      *entities.TaskStatus
	Priority    *entities.TaskPriority
	OverdueOnly bool
	Limit       int
}
