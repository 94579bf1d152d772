package ports

import (
	"context"
	"time"

	"github.com/taskflow/core/internal/domain/entities"
)

// TaskService interface for task management operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id string) (*entities.Task, error)
	UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteAllTasks(ctx context.Context, force bool) (int, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
}

// Task related types

type CreateTaskRequest struct {
	Title          string                 `json:"title" validate:"required,min=1,max=100"`
	Description    *string                `json:"description" validate:"omitempty,max=500"`
	Priority       *entities.TaskPriority `json:"priority"`
	EstimatedHours *float64               `json:"estimated_hours" validate:"omitempty,gte=0.1,lte=100"`
	DueDate        *time.Time             `json:"due_date"`
}

// UpdateTaskRequest carries patch semantics: nil fields are left untouched,
// they are never treated as an explicit clear.
type UpdateTaskRequest struct {
	Title          *string                `json:"title" validate:"omitempty,min=1,max=100"`
	Description    *string                `json:"description" validate:"omitempty,max=500"`
	Priority       *entities.TaskPriority `json:"priority"`
	Status         *entities.TaskStatus   `json:"status"`
	EstimatedHours *float64               `json:"estimated_hours" validate:"omitempty,gte=0.1,lte=100"`
	ActualHours    *float64               `json:"actual_hours" validate:"omitempty,gte=0,lte=200"`
	DueDate        *time.Time             `json:"due_date"`
}
