package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hacktrack/internal/authz"
	"hacktrack/internal/handlers"
	"hacktrack/internal/middleware"
)

type Secrets struct {
	Cron string
	JWT  []byte
}

func SetupRoutes(
	r *gin.Engine,
	secrets Secrets,
	checker *authz.Checker,
	cronHandler *handlers.CronHandler,
	notificationHandler *handlers.NotificationHandler,
	profileHandler *handlers.ProfileHandler,
	taskHandler *handlers.TaskHandler,
	hackathonHandler *handlers.HackathonHandler,
	teamHandler *handlers.TeamHandler,
	commentHandler *handlers.CommentHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ---- scheduler (shared secret, no user session)
	cron := r.Group("/api/cron", middleware.CronSecret(secrets.Cron))
	{
		cron.GET("/reminders", cronHandler.Reminders)
		cron.GET("/daily-summary", cronHandler.DailySummary)
		cron.GET("/weekly-summary", cronHandler.WeeklySummary)
	}

	// ---- protected
	api := r.Group("/api", middleware.AuthMiddleware(secrets.JWT))

	api.GET("/me", profileHandler.Me)
	api.PUT("/me/notifications", profileHandler.UpdateNotifications)

	api.POST("/notifications/task-assigned", notificationHandler.TaskAssigned)

	api.POST("/teams", teamHandler.Create)
	api.GET("/teams", teamHandler.List)
	api.POST("/teams/join", teamHandler.Join)

	// TEAMS (membership resolved from :team_id)
	team := api.Group("/teams/:team_id", middleware.RequireTeamMember(checker))
	{
		team.GET("/members", teamHandler.Members)
		team.POST("/tasks", taskHandler.Create)
		team.GET("/tasks", taskHandler.List)
		team.POST("/hackathons", hackathonHandler.Create)
		team.GET("/hackathons", hackathonHandler.List)
	}

	// TASKS (membership checked against the task's team)
	tasks := api.Group("/tasks")
	{
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
		tasks.POST("/:id/status", taskHandler.ChangeStatus)
		tasks.POST("/:id/assign", taskHandler.Assign)
		tasks.GET("/:id/comments", commentHandler.List)
		tasks.POST("/:id/comments", commentHandler.Create)
	}

	// HACKATHONS
	hackathons := api.Group("/hackathons")
	{
		hackathons.GET("/:id", hackathonHandler.GetByID)
		hackathons.PUT("/:id", hackathonHandler.Update)
		hackathons.DELETE("/:id", hackathonHandler.Delete)
	}

	return r
}
