package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hacktrack/internal/authz"
	"hacktrack/internal/middleware"
	"hacktrack/internal/models"
	"hacktrack/internal/services"
)

type TaskHandler struct {
	service  services.TaskService
	checker  *authz.Checker
	notifier services.NotificationService
	logger   *zap.Logger
}

func NewTaskHandler(service services.TaskService, checker *authz.Checker, notifier services.NotificationService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, checker: checker, notifier: notifier, logger: logger}
}

// POST /api/teams/:team_id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title       string              `json:"title" binding:"required"`
		Description *string             `json:"description"`
		AssignedTo  *string             `json:"assigned_to"`
		Deadline    *string             `json:"deadline"` // RFC3339
		Priority    models.TaskPriority `json:"priority"`
		Status      models.TaskStatus   `json:"status"`
	}

	uid := currentUserID(c)
	teamID := c.Param("team_id")
	if !authz.CanEdit(middleware.TeamRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("[task][create][bind][err]", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Priority != "" && !models.IsValidTaskPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority (low|medium|high)"})
		return
	}
	if req.Status != "" && !models.IsValidTaskStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status (todo|doing|done)"})
		return
	}
	deadline, err := parseOptionalTime(req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline (RFC3339)"})
		return
	}
	assignee := nonEmpty(req.AssignedTo)
	if assignee != nil && !h.assigneeInTeam(c, teamID, *assignee) {
		return
	}

	task := &models.Task{
		Title:       req.Title,
		Description: nonEmpty(req.Description),
		AssignedTo:  assignee,
		Deadline:    deadline,
		Priority:    req.Priority,
		Status:      req.Status,
		TeamID:      teamID,
		CreatedBy:   &uid,
	}

	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		h.logger.Error("[task][create][err]", zap.String("team_id", teamID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	h.logger.Info("[task][create][ok]", zap.String("id", created.ID), zap.String("team_id", teamID))
	c.JSON(http.StatusCreated, created)

	if created.AssignedTo != nil && *created.AssignedTo != uid {
		h.notifyAssignee(c, created.ID)
	}
}

// GET /api/teams/:team_id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	filter := models.TaskFilter{TeamID: c.Param("team_id")}
	if v, ok := c.GetQuery("assigned_to"); ok {
		if _, err := uuid.Parse(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assigned_to"})
			return
		}
		filter.AssignedTo = &v
	}
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		if !models.IsValidTaskStatus(st) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &st
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("[task][list][err]", zap.String("team_id", filter.TeamID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, _, ok := h.loadTask(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	current, role, ok := h.loadTask(c)
	if !ok {
		return
	}
	if !authz.CanEdit(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		AssignedTo  *string              `json:"assigned_to"`
		Deadline    *string              `json:"deadline"`
		Priority    *models.TaskPriority `json:"priority"`
		Status      *models.TaskStatus   `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := *current
	if req.Title != nil {
		if *req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		update.Title = *req.Title
	}
	if req.Description != nil {
		update.Description = nonEmpty(req.Description)
	}
	if req.AssignedTo != nil {
		update.AssignedTo = nonEmpty(req.AssignedTo)
		if update.AssignedTo != nil && !h.assigneeInTeam(c, current.TeamID, *update.AssignedTo) {
			return
		}
	}
	if req.Deadline != nil {
		deadline, err := parseOptionalTime(req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline (RFC3339)"})
			return
		}
		update.Deadline = deadline
	}
	if req.Priority != nil {
		if !models.IsValidTaskPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		update.Priority = *req.Priority
	}
	if req.Status != nil {
		if !models.IsValidTaskStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		update.Status = *req.Status
	}

	updated, err := h.service.Update(c.Request.Context(), current.ID, &update)
	if err != nil {
		h.logger.Error("[task][update][err]", zap.String("id", current.ID), zap.Error(err))
		respondStoreErr(c, err, "task not found")
		return
	}
	h.logger.Info("[task][update][ok]", zap.String("id", current.ID))
	c.JSON(http.StatusOK, updated)

	if reassigned(current.AssignedTo, updated.AssignedTo) && *updated.AssignedTo != currentUserID(c) {
		h.notifyAssignee(c, updated.ID)
	}
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	current, role, ok := h.loadTask(c)
	if !ok {
		return
	}
	uid := currentUserID(c)
	isCreator := current.CreatedBy != nil && *current.CreatedBy == uid
	if !authz.CanManage(role) && !isCreator {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator or a team owner can delete a task"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), current.ID); err != nil {
		h.logger.Error("[task][delete][err]", zap.String("id", current.ID), zap.Error(err))
		respondStoreErr(c, err, "task not found")
		return
	}
	h.logger.Info("[task][delete][ok]", zap.String("id", current.ID))
	c.Status(http.StatusNoContent)
}

// POST /api/tasks/:id/status {"to": "doing"}
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	current, role, ok := h.loadTask(c)
	if !ok {
		return
	}
	if !authz.CanEdit(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var body struct {
		To models.TaskStatus `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidTaskStatus(body.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), current.ID, body.To)
	if errors.Is(err, services.ErrInvalidTransition) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("[task][status][err]", zap.String("id", current.ID), zap.Error(err))
		respondStoreErr(c, err, "task not found")
		return
	}
	h.logger.Info("[task][status][ok]", zap.String("id", current.ID), zap.String("status", string(body.To)))
	c.JSON(http.StatusOK, updated)
}

// POST /api/tasks/:id/assign {"assigned_to": "<uuid>"}; null or "" unassigns.
func (h *TaskHandler) Assign(c *gin.Context) {
	current, role, ok := h.loadTask(c)
	if !ok {
		return
	}
	if !authz.CanEdit(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var body struct {
		AssignedTo *string `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assignee := nonEmpty(body.AssignedTo)
	if assignee != nil && !h.assigneeInTeam(c, current.TeamID, *assignee) {
		return
	}

	updated, err := h.service.UpdateAssignee(c.Request.Context(), current.ID, assignee)
	if err != nil {
		h.logger.Error("[task][assign][err]", zap.String("id", current.ID), zap.Error(err))
		respondStoreErr(c, err, "task not found")
		return
	}
	h.logger.Info("[task][assign][ok]", zap.String("id", current.ID))
	c.JSON(http.StatusOK, updated)

	if reassigned(current.AssignedTo, updated.AssignedTo) && *updated.AssignedTo != currentUserID(c) {
		h.notifyAssignee(c, updated.ID)
	}
}

// ---- helpers ----

// loadTask fetches :id and checks the caller belongs to its team. It writes
// the error response itself.
func (h *TaskHandler) loadTask(c *gin.Context) (*models.Task, models.TeamRole, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, "", false
	}
	return teamTask(c, h.service, h.checker, id)
}

func (h *TaskHandler) assigneeInTeam(c *gin.Context, teamID, userID string) bool {
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assigned_to"})
		return false
	}
	if _, err := h.checker.Role(c.Request.Context(), teamID, userID); err != nil {
		if errors.Is(err, authz.ErrNotMember) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "assignee is not a member of this team"})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check team membership"})
		return false
	}
	return true
}

func reassigned(before, after *string) bool {
	if after == nil {
		return false
	}
	return before == nil || *before != *after
}

// notifyAssignee runs after the response is written; failures are only logged.
func (h *TaskHandler) notifyAssignee(c *gin.Context, taskID string) {
	if h.notifier == nil {
		return
	}
	res, err := h.notifier.NotifyTaskAssigned(c.Request.Context(), taskID, currentUserID(c))
	if err != nil {
		h.logger.Info("[task][notify] skipped", zap.String("task_id", taskID), zap.Error(err))
		return
	}
	if !res.Success {
		h.logger.Warn("[task][notify] send failed", zap.String("task_id", taskID), zap.String("error", res.Error))
	}
}
