package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hacktrack/internal/authz"
	"hacktrack/internal/models"
	"hacktrack/internal/services"
)

type HackathonHandler struct {
	service services.HackathonService
	checker *authz.Checker
	logger  *zap.Logger
}

func NewHackathonHandler(service services.HackathonService, checker *authz.Checker, logger *zap.Logger) *HackathonHandler {
	return &HackathonHandler{service: service, checker: checker, logger: logger}
}

type hackathonRequest struct {
	Title                *string `json:"title"`
	Organizer            *string `json:"organizer"`
	Link                 *string `json:"link"`
	StartDate            *string `json:"start_date"`
	EndDate              *string `json:"end_date"`
	RegistrationDeadline *string `json:"registration_deadline"`
	SubmissionDeadline   *string `json:"submission_deadline"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

// apply copies the non-nil request fields onto h. It returns the name of the
// first malformed timestamp, if any.
func (r hackathonRequest) apply(h *models.Hackathon) (string, bool) {
	if r.Title != nil {
		h.Title = *r.Title
	}
	if r.Organizer != nil {
		h.Organizer = nonEmpty(r.Organizer)
	}
	if r.Link != nil {
		h.Link = nonEmpty(r.Link)
	}
	times := []struct {
		name string
		in   *string
		out  **time.Time
	}{
		{"start_date", r.StartDate, &h.StartDate},
		{"end_date", r.EndDate, &h.EndDate},
		{"registration_deadline", r.RegistrationDeadline, &h.RegistrationDeadline},
		{"submission_deadline", r.SubmissionDeadline, &h.SubmissionDeadline},
	}
	for _, f := range times {
		if f.in == nil {
			continue
		}
		t, err := parseOptionalTime(f.in)
		if err != nil {
			return f.name, false
		}
		*f.out = t
	}
	if r.NotificationsEnabled != nil {
		h.NotificationsEnabled = *r.NotificationsEnabled
	}
	return "", true
}

// POST /api/teams/:team_id/hackathons
func (h *HackathonHandler) Create(c *gin.Context) {
	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == nil || *req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	hack := &models.Hackathon{TeamID: c.Param("team_id"), NotificationsEnabled: true}
	if field, ok := req.apply(hack); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + " (RFC3339)"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), hack)
	if err != nil {
		h.logger.Error("[hackathon][create][err]", zap.String("team_id", hack.TeamID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create hackathon"})
		return
	}
	h.logger.Info("[hackathon][create][ok]", zap.String("id", created.ID))
	c.JSON(http.StatusCreated, created)
}

// GET /api/teams/:team_id/hackathons
func (h *HackathonHandler) List(c *gin.Context) {
	list, err := h.service.ListByTeam(c.Request.Context(), c.Param("team_id"))
	if err != nil {
		h.logger.Error("[hackathon][list][err]", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve hackathons"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/hackathons/:id
func (h *HackathonHandler) GetByID(c *gin.Context) {
	hack, _, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, hack)
}

// PUT /api/hackathons/:id
func (h *HackathonHandler) Update(c *gin.Context) {
	hack, role, ok := h.load(c)
	if !ok {
		return
	}
	if !authz.CanEdit(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != nil && *req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
		return
	}
	if field, ok := req.apply(hack); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field + " (RFC3339)"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), hack)
	if err != nil {
		h.logger.Error("[hackathon][update][err]", zap.String("id", hack.ID), zap.Error(err))
		respondStoreErr(c, err, "hackathon not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/hackathons/:id (team owner only)
func (h *HackathonHandler) Delete(c *gin.Context) {
	hack, role, ok := h.load(c)
	if !ok {
		return
	}
	if !authz.CanManage(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only a team owner can delete a hackathon"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), hack.ID); err != nil {
		h.logger.Error("[hackathon][delete][err]", zap.String("id", hack.ID), zap.Error(err))
		respondStoreErr(c, err, "hackathon not found")
		return
	}
	h.logger.Info("[hackathon][delete][ok]", zap.String("id", hack.ID))
	c.Status(http.StatusNoContent)
}

func (h *HackathonHandler) load(c *gin.Context) (*models.Hackathon, models.TeamRole, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, "", false
	}
	hack, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreErr(c, err, "hackathon not found")
		return nil, "", false
	}
	role, err := h.checker.Role(c.Request.Context(), hack.TeamID, currentUserID(c))
	if err != nil {
		respondStoreErr(c, err, "hackathon not found")
		return nil, "", false
	}
	return hack, role, true
}
