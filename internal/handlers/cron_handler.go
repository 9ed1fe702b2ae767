package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hacktrack/internal/metrics"
	"hacktrack/internal/services"
)

// CronHandler serves the scheduled-job endpoints. Authentication is done by
// middleware.CronSecret before these handlers run.
type CronHandler struct {
	reminders services.ReminderService
	summaries services.SummaryService
	logger    *zap.Logger
	now       func() time.Time
}

func NewCronHandler(reminders services.ReminderService, summaries services.SummaryService, logger *zap.Logger) *CronHandler {
	return &CronHandler{reminders: reminders, summaries: summaries, logger: logger, now: time.Now}
}

type jobFunc func(ctx context.Context, now time.Time) (*services.RunSummary, error)

// GET /api/cron/reminders
func (h *CronHandler) Reminders(c *gin.Context) {
	h.run(c, "reminders", h.reminders.Run)
}

// GET /api/cron/daily-summary
func (h *CronHandler) DailySummary(c *gin.Context) {
	h.run(c, "daily_summary", h.summaries.RunDaily)
}

// GET /api/cron/weekly-summary
func (h *CronHandler) WeeklySummary(c *gin.Context) {
	h.run(c, "weekly_summary", h.summaries.RunWeekly)
}

func (h *CronHandler) run(c *gin.Context, job string, fn jobFunc) {
	start := h.now()
	h.logger.Info("[cron][" + job + "] start")

	summary, err := fn(c.Request.Context(), start)
	metrics.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.JobRuns.WithLabelValues(job, "error").Inc()
		h.logger.Error("[cron]["+job+"][err]", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	metrics.JobRuns.WithLabelValues(job, "ok").Inc()
	c.JSON(http.StatusOK, summary)
}
