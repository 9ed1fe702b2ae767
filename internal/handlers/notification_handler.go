package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hacktrack/internal/authz"
	"hacktrack/internal/services"
)

type NotificationHandler struct {
	service services.NotificationService
	tasks   services.TaskService
	checker *authz.Checker
	logger  *zap.Logger
}

func NewNotificationHandler(service services.NotificationService, tasks services.TaskService, checker *authz.Checker, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, tasks: tasks, checker: checker, logger: logger}
}

// POST /api/notifications/task-assigned {"taskId": "..."}
func (h *NotificationHandler) TaskAssigned(c *gin.Context) {
	var req struct {
		TaskID string `json:"taskId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId is required"})
		return
	}
	if _, err := uuid.Parse(req.TaskID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid taskId"})
		return
	}

	// only members of the task's team may trigger the email
	if _, _, ok := teamTask(c, h.tasks, h.checker, req.TaskID); !ok {
		return
	}

	res, err := h.service.NotifyTaskAssigned(c.Request.Context(), req.TaskID, currentUserID(c))
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	case errors.Is(err, services.ErrNoAssignee):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task has no assignee"})
		return
	case errors.Is(err, services.ErrAssigneeNotEligible):
		c.JSON(http.StatusOK, gin.H{"success": false, "skipped": true, "error": err.Error()})
		return
	case err != nil:
		h.logger.Error("[notify][assigned][err]", zap.String("task_id", req.TaskID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !res.Success {
		h.logger.Warn("[notify][assigned] send failed", zap.String("task_id", req.TaskID), zap.String("error", res.Error))
	}
	// the dispatch result is the body either way; success is in res.Success
	c.JSON(http.StatusOK, res)
}
