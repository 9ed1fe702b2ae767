package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hacktrack/internal/repositories"
	"hacktrack/internal/services"
)

type TeamHandler struct {
	service services.TeamService
	logger  *zap.Logger
}

func NewTeamHandler(service services.TeamService, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{service: service, logger: logger}
}

// POST /api/teams {"name": "..."}
func (h *TeamHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
		return
	}

	uid := currentUserID(c)
	team, err := h.service.Create(c.Request.Context(), req.Name, uid)
	if err != nil {
		h.logger.Error("[team][create][err]", zap.String("user_id", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create team"})
		return
	}
	h.logger.Info("[team][create][ok]", zap.String("id", team.ID), zap.String("user_id", uid))
	c.JSON(http.StatusCreated, team)
}

// POST /api/teams/join {"inviteCode": "..."}
func (h *TeamHandler) Join(c *gin.Context) {
	var req struct {
		InviteCode string `json:"inviteCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := currentUserID(c)
	team, err := h.service.Join(c.Request.Context(), req.InviteCode, uid)
	switch {
	case errors.Is(err, services.ErrInvalidInviteCode):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid invite code"})
		return
	case errors.Is(err, repositories.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": "you're already a member of this team"})
		return
	case err != nil:
		h.logger.Error("[team][join][err]", zap.String("user_id", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join team"})
		return
	}
	h.logger.Info("[team][join][ok]", zap.String("id", team.ID), zap.String("user_id", uid))
	c.JSON(http.StatusOK, team)
}

// GET /api/teams
func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.service.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("[team][list][err]", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve teams"})
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GET /api/teams/:team_id/members
func (h *TeamHandler) Members(c *gin.Context) {
	members, err := h.service.Members(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		h.logger.Error("[team][members][err]", zap.String("team_id", c.Param("team_id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve members"})
		return
	}
	c.JSON(http.StatusOK, members)
}
