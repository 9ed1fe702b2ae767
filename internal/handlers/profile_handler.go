package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hacktrack/internal/models"
	"hacktrack/internal/services"
)

type ProfileHandler struct {
	service services.ProfileService
	logger  *zap.Logger
}

func NewProfileHandler(service services.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, logger: logger}
}

// GET /api/me
func (h *ProfileHandler) Me(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Warn("[profile][me][err]", zap.String("user_id", currentUserID(c)), zap.Error(err))
		respondStoreErr(c, err, "profile not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /api/me/notifications
func (h *ProfileHandler) UpdateNotifications(c *gin.Context) {
	var req models.NotificationSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.service.UpdateNotificationSettings(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		h.logger.Error("[profile][notifications][err]", zap.String("user_id", currentUserID(c)), zap.Error(err))
		respondStoreErr(c, err, "profile not found")
		return
	}
	h.logger.Info("[profile][notifications][ok]",
		zap.String("user_id", p.ID),
		zap.Bool("email", p.NotificationsEmail),
		zap.Bool("whatsapp", p.NotificationsWhatsApp),
	)
	c.JSON(http.StatusOK, p)
}
