package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/core/internal/domain/entities"
	"github.com/taskflow/core/internal/infrastructure/logger"
	"github.com/taskflow/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask godoc
// @Summary Create a new task
// @Description Create a task with the provided details; status starts as pending
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Failure 422 {object} ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create task failed", "error", err)
		return taskError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// ListTasks godoc
// @Summary List tasks
// @Description List tasks with optional filters, urgent tasks first, newest first
// @Tags tasks
// @Produce json
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param overdue_only query bool false "Only overdue tasks"
// @Param limit query int false "Maximum number of tasks (1-1000, default 100)"
// @Success 200 {array} entities.Task
// @Failure 422 {object} ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter := ports.TaskFilter{}

	if status := c.QueryParam("status"); status != "" {
		taskStatus := entities.TaskStatus(status)
		filter.Status = &taskStatus
	}

	if priority := c.QueryParam("priority"); priority != "" {
		taskPriority := entities.TaskPriority(priority)
		filter.Priority = &taskPriority
	}

	if overdueStr := c.QueryParam("overdue_only"); overdueStr != "" {
		overdue, err := strconv.ParseBool(overdueStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid overdue_only parameter")
		}
		filter.OverdueOnly = overdue
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		// An explicit limit below 1 is rejected here rather than passed on,
		// where 0 would read as "not supplied" and fall back to the default.
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid limit parameter")
		}
		filter.Limit = limit
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("List tasks failed", "error", err)
		return taskError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get task by ID
// @Description Get a task with a freshly computed overdue flag
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return taskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Apply a partial update; absent fields are left unchanged
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Task patch"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Error("Update task failed", "error", err, "task_id", c.Param("id"))
		return taskError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Delete a task unless it is in progress
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Error("Delete task failed", "error", err, "task_id", c.Param("id"))
		return taskError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// DeleteAllTasks godoc
// @Summary Delete all tasks
// @Description Clear the whole store; in-progress tasks block it unless forced
// @Tags tasks
// @Produce json
// @Param force query bool false "Force delete including in-progress tasks"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /tasks [delete]
func (h *TaskHandler) DeleteAllTasks(c echo.Context) error {
	force := false
	if forceStr := c.QueryParam("force"); forceStr != "" {
		parsed, err := strconv.ParseBool(forceStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid force parameter")
		}
		force = parsed
	}

	deleted, err := h.taskService.DeleteAllTasks(c.Request().Context(), force)
	if err != nil {
		h.logger.Error("Delete all tasks failed", "error", err)
		return taskError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Deleted " + strconv.Itoa(deleted) + " tasks successfully",
	})
}

// taskError maps domain errors to HTTP status codes
func taskError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	case errors.Is(err, entities.ErrDueDateInPast),
		errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrInvalidPriority),
		errors.Is(err, entities.ErrInvalidLimit):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, entities.ErrCompletedImmutable),
		errors.Is(err, entities.ErrTaskInProgress),
		errors.Is(err, entities.ErrTasksInProgress):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
