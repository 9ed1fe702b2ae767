package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hacktrack/internal/authz"
	"hacktrack/internal/services"
)

// CommentHandler serves the discussion thread under a task. Every route
// resolves the task first, so only members of its team can read or post.
type CommentHandler struct {
	service services.CommentService
	tasks   services.TaskService
	checker *authz.Checker
	logger  *zap.Logger
}

func NewCommentHandler(service services.CommentService, tasks services.TaskService, checker *authz.Checker, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{service: service, tasks: tasks, checker: checker, logger: logger}
}

// GET /api/tasks/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, _, ok := teamTask(c, h.tasks, h.checker, id)
	if !ok {
		return
	}
	comments, err := h.service.List(c.Request.Context(), task.ID)
	if err != nil {
		h.logger.Error("[comment][list][err]", zap.String("task_id", task.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// POST /api/tasks/:id/comments {"content": "..."}
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, _, ok := teamTask(c, h.tasks, h.checker, id)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := currentUserID(c)
	comment, err := h.service.Add(c.Request.Context(), task.ID, uid, req.Content)
	if errors.Is(err, services.ErrEmptyComment) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("[comment][create][err]", zap.String("task_id", task.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	}
	h.logger.Info("[comment][create][ok]", zap.String("id", comment.ID), zap.String("task_id", task.ID))
	c.JSON(http.StatusCreated, comment)
}
