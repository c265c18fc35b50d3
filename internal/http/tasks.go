package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/biblioteca/internal/tasks"
)

// TaskQueue is the subset of the task client the controller uses.
type TaskQueue interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	client      TaskQueue
	maintenance MaintenanceRunner
}

// NewTasksController creates a new TasksController. maintenance may be nil.
func NewTasksController(client TaskQueue, maintenance MaintenanceRunner) *TasksController {
	return &TasksController{client: client, maintenance: maintenance}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        tasks.QueueScanOverdueLoans,
			Description: "Log open loans past their expected return",
			Queue:       tasks.QueueScanOverdueLoans,
		},
		{
			Type:        tasks.QueueExpireReservations,
			Description: "Expire pending reservations older than older_than",
			Queue:       tasks.QueueExpireReservations,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTaskRequest is the request body for running a task.
type RunTaskRequest struct {
	// OlderThan applies to expire_reservations, e.g. "168h".
	OlderThan string `json:"older_than,omitempty"`
}

// RunTask handles POST /api/tasks/:type/run
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var req RunTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	var task backlite.Task
	switch taskType {
	case tasks.QueueScanOverdueLoans:
		task = tasks.ScanOverdueLoansTask{}

	case tasks.QueueExpireReservations:
		if req.OlderThan == "" {
			respondBadRequest(c, "older_than is required for expire_reservations")
			return
		}
		olderThan, err := time.ParseDuration(req.OlderThan)
		if err != nil || olderThan <= 0 {
			respondBadRequest(c, "older_than must be a positive duration")
			return
		}
		task = tasks.ExpireReservationsTask{OlderThan: olderThan}

	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	ids, err := tc.client.Add(task).Save()
	if err != nil {
		respondInternalError(c, err, "enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": ids[0],
		"type":    taskType,
		"message": "task enqueued",
	})
}

// RunMaintenance enqueues every maintenance task with the configured settings.
// POST /api/maintenance/run
func (tc *TasksController) RunMaintenance(c *gin.Context) {
	if tc.maintenance == nil {
		respondError(c, http.StatusServiceUnavailable, "maintenance is not configured")
		return
	}
	if err := tc.maintenance.RunNow(); err != nil {
		respondInternalError(c, err, "run maintenance")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": "maintenance enqueued"})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
