package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hacktrack/internal/authz"
	"hacktrack/internal/middleware"
	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
	"hacktrack/internal/services"
)

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// pathID reads a uuid path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return "", false
	}
	return id, true
}

// parseOptionalTime parses an RFC3339 string; "" yields nil.
func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// respondStoreErr maps repository/authz errors to a status code.
func respondStoreErr(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, authz.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// teamTask loads a task and resolves the caller's role in its team. Callers
// outside the team get the same 404 as for a missing task.
func teamTask(c *gin.Context, tasks services.TaskService, checker *authz.Checker, id string) (*models.Task, models.TeamRole, bool) {
	task, err := tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreErr(c, err, "task not found")
		return nil, "", false
	}
	role, err := checker.Role(c.Request.Context(), task.TeamID, currentUserID(c))
	if err != nil {
		if errors.Is(err, authz.ErrNotMember) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return nil, "", false
		}
		respondStoreErr(c, err, "task not found")
		return nil, "", false
	}
	return task, role, true
}
