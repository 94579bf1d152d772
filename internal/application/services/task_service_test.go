package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/adapters/repository"
	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/infrastructure/metrics"
	"github.com/taskflow/core/internal/ports"
)

func setupTaskService(t *testing.T) (*TaskService, *repository.TaskRepository) {
	t.Helper()
	repo := repository.NewTaskRepository()
	service := NewTaskService(repo, metrics.New(prometheus.NewRegistry()), logger.NewNop())
	return service, repo
}

func strPtr(v string) *string                              { return &v }
func floatPtr(v float64) *float64                          { return &v }
func timePtr(v time.Time) *time.Time                       { return &v }
func statusPtr(v entities.TaskStatus) *entities.TaskStatus { return &v }
func priorityPtr(v entities.TaskPriority) *entities.TaskPriority {
	return &v
}

func mustCreate(t *testing.T, service *TaskService, req ports.CreateTaskRequest) *entities.Task {
	t.Helper()
	task, err := service.CreateTask(context.Background(), req)
	require.NoError(t, err)
	return task
}

func mustSetStatus(t *testing.T, service *TaskService, id string, status entities.TaskStatus) *entities.Task {
	t.Helper()
	task, err := service.UpdateTask(context.Background(), id, ports.UpdateTaskRequest{Status: statusPtr(status)})
	require.NoError(t, err)
	return task
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("should create a task with defaults", func(t *testing.T) {
		service, _ := setupTaskService(t)

		task := mustCreate(t, service, ports.CreateTaskRequest{Title: "Write report"})

		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, entities.TaskStatusPending, task.Status)
		assert.Equal(t, entities.TaskPriorityMedium, task.Priority)
		assert.Nil(t, task.ActualHours)
		assert.Nil(t, task.DueDate)
		assert.False(t, task.IsOverdue)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("should reject a due date in the past", func(t *testing.T) {
		service, _ := setupTaskService(t)

		_, err := service.CreateTask(ctx, ports.CreateTaskRequest{
			Title:   "Late already",
			DueDate: timePtr(time.Now().Add(-time.Hour)),
		})

		assert.ErrorIs(t, err, entities.ErrDueDateInPast)
	})

	t.Run("should accept a due date in the future", func(t *testing.T) {
		service, _ := setupTaskService(t)
		due := time.Now().Add(time.Hour)

		task := mustCreate(t, service, ports.CreateTaskRequest{Title: "On time", DueDate: &due})

		require.NotNil(t, task.DueDate)
		assert.Equal(t, due, *task.DueDate)
		assert.False(t, task.IsOverdue)
	})

	t.Run("should assign urgent tasks a due date one day out", func(t *testing.T) {
		service, _ := setupTaskService(t)

		task := mustCreate(t, service, ports.CreateTaskRequest{
			Title:    "Fire to put out",
			Priority: priorityPtr(entities.TaskPriorityUrgent),
		})

		require.NotNil(t, task.DueDate)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), *task.DueDate, time.Minute)
		assert.False(t, task.IsOverdue)
	})

	t.Run("should reject an unknown priority", func(t *testing.T) {
		service, _ := setupTaskService(t)
		bogus := entities.TaskPriority("critical")

		_, err := service.CreateTask(ctx, ports.CreateTaskRequest{Title: "Bad", Priority: &bogus})

		assert.ErrorIs(t, err, entities.ErrInvalidPriority)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	ctx := context.Background()

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		service, _ := setupTaskService(t)

		_, err := service.GetTask(ctx, "missing")

		assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	})

	t.Run("should round-trip a created task", func(t *testing.T) {
		service, _ := setupTaskService(t)
		due := time.Now().Add(2 * time.Hour)
		created := mustCreate(t, service, ports.CreateTaskRequest{
			Title:          "Round trip",
			Description:    strPtr("all fields"),
			Priority:       priorityPtr(entities.TaskPriorityHigh),
			EstimatedHours: floatPtr(3),
			DueDate:        &due,
		})

		got, err := service.GetTask(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("should recompute overdue without touching the stored record", func(t *testing.T) {
		service, repo := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{
			Title:   "Soon late",
			DueDate: timePtr(time.Now().Add(30 * time.Millisecond)),
		})
		time.Sleep(50 * time.Millisecond)

		got, err := service.GetTask(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.IsOverdue)

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsOverdue)
	})

	t.Run("should not report a completed task as overdue", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{
			Title:   "Finished late",
			DueDate: timePtr(time.Now().Add(30 * time.Millisecond)),
		})
		time.Sleep(50 * time.Millisecond)
		mustSetStatus(t, service, created.ID, entities.TaskStatusCompleted)

		got, err := service.GetTask(ctx, created.ID)

		require.NoError(t, err)
		assert.False(t, got.IsOverdue)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		service, _ := setupTaskService(t)

		_, err := service.UpdateTask(ctx, "missing", ports.UpdateTaskRequest{Title: strPtr("x")})

		assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	})

	t.Run("should only overwrite supplied fields", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{
			Title:          "Original",
			Description:    strPtr("keep me"),
			EstimatedHours: floatPtr(4),
		})

		updated, err := service.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{
			Title: strPtr("Renamed"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "keep me", *updated.Description)
		require.NotNil(t, updated.EstimatedHours)
		assert.Equal(t, 4.0, *updated.EstimatedHours)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("should default actual hours from the estimate on completion", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{
			Title:          "Estimated",
			EstimatedHours: floatPtr(5),
		})

		updated := mustSetStatus(t, service, created.ID, entities.TaskStatusCompleted)

		require.NotNil(t, updated.ActualHours)
		assert.Equal(t, 5.0, *updated.ActualHours)
	})

	t.Run("should default actual hours to one on completion without estimate", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Unestimated"})

		updated := mustSetStatus(t, service, created.ID, entities.TaskStatusCompleted)

		require.NotNil(t, updated.ActualHours)
		assert.Equal(t, 1.0, *updated.ActualHours)
	})

	t.Run("should keep actual hours supplied in the completing patch", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{
			Title:          "Measured",
			EstimatedHours: floatPtr(5),
		})

		updated, err := service.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{
			Status:      statusPtr(entities.TaskStatusCompleted),
			ActualHours: floatPtr(8),
		})

		require.NoError(t, err)
		require.NotNil(t, updated.ActualHours)
		assert.Equal(t, 8.0, *updated.ActualHours)
	})

	t.Run("should reject changing a completed task's status", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Done"})
		mustSetStatus(t, service, created.ID, entities.TaskStatusCompleted)

		_, err := service.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{
			Status: statusPtr(entities.TaskStatusPending),
		})

		assert.ErrorIs(t, err, entities.ErrCompletedImmutable)
	})

	t.Run("should reject any update to a completed task without status=completed resent", func(t *testing.T) {
		// The guard compares the patch's absent status against completed and
		// trips. Longstanding behavior; a title-only patch is rejected too.
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Done"})
		mustSetStatus(t, service, created.ID, entities.TaskStatusCompleted)

		_, err := service.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{
			Title: strPtr("Rename attempt"),
		})

		assert.ErrorIs(t, err, entities.ErrCompletedImmutable)
	})

	t.Run("should allow updating a completed task when status=completed is resent", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Done"})
		mustSetStatus(t, service, created.ID, entities.TaskStatusCompleted)

		updated, err := service.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{
			Status: statusPtr(entities.TaskStatusCompleted),
			Title:  strPtr("Renamed anyway"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed anyway", updated.Title)
		assert.Equal(t, entities.TaskStatusCompleted, updated.Status)
	})

	t.Run("should reject a due date in the past", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Rescheduled"})

		_, err := service.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{
			DueDate: timePtr(time.Now().Add(-time.Minute)),
		})

		assert.ErrorIs(t, err, entities.ErrDueDateInPast)
	})

	t.Run("should report a bad patch before an unknown id", func(t *testing.T) {
		service, _ := setupTaskService(t)

		_, err := service.UpdateTask(ctx, "missing", ports.UpdateTaskRequest{
			DueDate: timePtr(time.Now().Add(-time.Minute)),
		})

		assert.ErrorIs(t, err, entities.ErrDueDateInPast)
		assert.NotErrorIs(t, err, entities.ErrTaskNotFound)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Typo"})
		bogus := entities.TaskStatus("finished")

		_, err := service.UpdateTask(ctx, created.ID, ports.UpdateTaskRequest{Status: &bogus})

		assert.ErrorIs(t, err, entities.ErrInvalidStatus)
	})

	t.Run("should persist the merged record", func(t *testing.T) {
		service, repo := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Persist"})

		mustSetStatus(t, service, created.ID, entities.TaskStatusInProgress)

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.TaskStatusInProgress, stored.Status)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		service, _ := setupTaskService(t)

		err := service.DeleteTask(ctx, "missing")

		assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	})

	t.Run("should refuse to delete an in-progress task", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Busy"})
		mustSetStatus(t, service, created.ID, entities.TaskStatusInProgress)

		err := service.DeleteTask(ctx, created.ID)

		assert.ErrorIs(t, err, entities.ErrTaskInProgress)

		_, err = service.GetTask(ctx, created.ID)
		assert.NoError(t, err)
	})

	t.Run("should delete after the task leaves in-progress", func(t *testing.T) {
		service, _ := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{Title: "Busy"})
		mustSetStatus(t, service, created.ID, entities.TaskStatusInProgress)
		mustSetStatus(t, service, created.ID, entities.TaskStatusCancelled)

		require.NoError(t, service.DeleteTask(ctx, created.ID))

		_, err := service.GetTask(ctx, created.ID)
		assert.ErrorIs(t, err, entities.ErrTaskNotFound)
	})
}

func TestTaskService_DeleteAllTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("should be blocked by in-progress tasks and delete nothing", func(t *testing.T) {
		service, _ := setupTaskService(t)
		mustCreate(t, service, ports.CreateTaskRequest{Title: "One"})
		busy := mustCreate(t, service, ports.CreateTaskRequest{Title: "Two"})
		mustSetStatus(t, service, busy.ID, entities.TaskStatusInProgress)

		_, err := service.DeleteAllTasks(ctx, false)

		assert.ErrorIs(t, err, entities.ErrTasksInProgress)
		assert.Contains(t, err.Error(), "1 in-progress")

		tasks, err := service.ListTasks(ctx, ports.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("should clear everything when forced", func(t *testing.T) {
		service, _ := setupTaskService(t)
		mustCreate(t, service, ports.CreateTaskRequest{Title: "One"})
		busy := mustCreate(t, service, ports.CreateTaskRequest{Title: "Two"})
		mustSetStatus(t, service, busy.ID, entities.TaskStatusInProgress)

		deleted, err := service.DeleteAllTasks(ctx, true)

		require.NoError(t, err)
		assert.Equal(t, 2, deleted)

		tasks, err := service.ListTasks(ctx, ports.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("should clear without force when nothing is in progress", func(t *testing.T) {
		service, _ := setupTaskService(t)
		mustCreate(t, service, ports.CreateTaskRequest{Title: "One"})

		deleted, err := service.DeleteAllTasks(ctx, false)

		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject an out-of-range limit", func(t *testing.T) {
		service, _ := setupTaskService(t)

		_, err := service.ListTasks(ctx, ports.TaskFilter{Limit: 1001})
		assert.ErrorIs(t, err, entities.ErrInvalidLimit)

		_, err = service.ListTasks(ctx, ports.TaskFilter{Limit: -1})
		assert.ErrorIs(t, err, entities.ErrInvalidLimit)
	})

	t.Run("should reject unknown filter values", func(t *testing.T) {
		service, _ := setupTaskService(t)
		bogusStatus := entities.TaskStatus("done")
		bogusPriority := entities.TaskPriority("critical")

		_, err := service.ListTasks(ctx, ports.TaskFilter{Status: &bogusStatus})
		assert.ErrorIs(t, err, entities.ErrInvalidStatus)

		_, err = service.ListTasks(ctx, ports.TaskFilter{Priority: &bogusPriority})
		assert.ErrorIs(t, err, entities.ErrInvalidPriority)
	})

	t.Run("should sort urgent tasks before others, newest first within groups", func(t *testing.T) {
		service, _ := setupTaskService(t)
		oldMedium := mustCreate(t, service, ports.CreateTaskRequest{Title: "old medium"})
		oldUrgent := mustCreate(t, service, ports.CreateTaskRequest{
			Title: "old urgent", Priority: priorityPtr(entities.TaskPriorityUrgent),
		})
		newMedium := mustCreate(t, service, ports.CreateTaskRequest{Title: "new medium"})
		newUrgent := mustCreate(t, service, ports.CreateTaskRequest{
			Title: "new urgent", Priority: priorityPtr(entities.TaskPriorityUrgent),
		})

		tasks, err := service.ListTasks(ctx, ports.TaskFilter{})

		require.NoError(t, err)
		require.Len(t, tasks, 4)
		assert.Equal(t, newUrgent.ID, tasks[0].ID)
		assert.Equal(t, oldUrgent.ID, tasks[1].ID)
		assert.Equal(t, newMedium.ID, tasks[2].ID)
		assert.Equal(t, oldMedium.ID, tasks[3].ID)
	})

	t.Run("should return only urgent tasks when filtered by priority", func(t *testing.T) {
		service, _ := setupTaskService(t)
		mustCreate(t, service, ports.CreateTaskRequest{Title: "medium"})
		urgent := mustCreate(t, service, ports.CreateTaskRequest{
			Title: "urgent", Priority: priorityPtr(entities.TaskPriorityUrgent),
		})

		priority := entities.TaskPriorityUrgent
		tasks, err := service.ListTasks(ctx, ports.TaskFilter{Priority: &priority})

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, urgent.ID, tasks[0].ID)
	})

	t.Run("should refresh stored overdue flags before filtering", func(t *testing.T) {
		service, repo := setupTaskService(t)
		created := mustCreate(t, service, ports.CreateTaskRequest{
			Title:   "about to be late",
			DueDate: timePtr(time.Now().Add(30 * time.Millisecond)),
		})
		time.Sleep(50 * time.Millisecond)

		tasks, err := service.ListTasks(ctx, ports.TaskFilter{OverdueOnly: true})

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, created.ID, tasks[0].ID)
		assert.True(t, tasks[0].IsOverdue)

		// The refresh step writes the flag back to the store.
		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsOverdue)
	})

	t.Run("should truncate to the limit", func(t *testing.T) {
		service, _ := setupTaskService(t)
		for i := 0; i < 5; i++ {
			mustCreate(t, service, ports.CreateTaskRequest{Title: "bulk"})
		}

		tasks, err := service.ListTasks(ctx, ports.TaskFilter{Limit: 3})

		require.NoError(t, err)
		assert.Len(t, tasks, 3)
	})
}
