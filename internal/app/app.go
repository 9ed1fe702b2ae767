package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"hacktrack/internal/authz"
	"hacktrack/internal/config"
	"hacktrack/internal/dedup"
	"hacktrack/internal/handlers"
	"hacktrack/internal/metrics"
	"hacktrack/internal/repositories"
	"hacktrack/internal/routes"
	"hacktrack/internal/services"
	"hacktrack/internal/utils"
	"hacktrack/internal/worker"
)

func Run() {
	cfg := config.LoadConfig()

	logger := utils.NewLogger(gin.Mode() == gin.DebugMode)
	defer func() { _ = logger.Sync() }()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logger.Fatal("[app][db] open failed", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("[app][db] close failed", zap.Error(err))
		}
	}()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("[app][db] ping failed, continuing", zap.Error(err))
	}
	cancelPing()

	metrics.Register()

	// === Dedup guard ===
	guard := dedup.NewNoopGuard()
	if cfg.Redis.Addr != "" {
		rdb := dedup.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		guard = dedup.NewRedisGuard(rdb, 26*time.Hour, logger)
		logger.Info("[app][redis] dedup guard enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// === Repos ===
	taskRepo := repositories.NewTaskRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	hackathonRepo := repositories.NewHackathonRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	logRepo := repositories.NewNotificationLogRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// === Services ===
	sender := services.NewSMTPSender(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUser, cfg.Email.SMTPPassword)
	emailService := services.NewEmailService(sender, cfg.Email.FromEmail, logRepo, logger)

	remCfg := services.ReminderConfig{AppURL: cfg.AppURL, Location: cfg.Location()}
	reminderService := services.NewReminderService(taskRepo, hackathonRepo, teamRepo, logRepo, emailService, guard, remCfg, logger)
	summaryService := services.NewSummaryService(profileRepo, taskRepo, hackathonRepo, logRepo, emailService, guard, remCfg, logger)
	notificationService := services.NewNotificationService(taskRepo, profileRepo, emailService, remCfg, logger)

	taskService := services.NewTaskService(taskRepo)
	hackathonService := services.NewHackathonService(hackathonRepo)
	profileService := services.NewProfileService(profileRepo)
	teamService := services.NewTeamService(teamRepo)
	commentService := services.NewCommentService(commentRepo)

	checker := authz.NewChecker(teamRepo)

	// === Handlers ===
	cronHandler := handlers.NewCronHandler(reminderService, summaryService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, taskService, checker, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, checker, notificationService, logger)
	hackathonHandler := handlers.NewHackathonHandler(hackathonService, checker, logger)
	teamHandler := handlers.NewTeamHandler(teamService, logger)
	commentHandler := handlers.NewCommentHandler(commentService, taskService, checker, logger)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.SetupRoutes(
		router,
		routes.Secrets{Cron: cfg.Cron.Secret, JWT: []byte(cfg.Auth.JWTSecret)},
		checker,
		cronHandler,
		notificationHandler,
		profileHandler,
		taskHandler,
		hackathonHandler,
		teamHandler,
		commentHandler,
	)

	// === In-process schedule ===
	var scheduler *worker.Scheduler
	if cfg.Cron.Schedule != "" {
		scheduler = worker.NewScheduler(cfg.Location(), logger)
		if err := scheduler.Add(cfg.Cron.Schedule, "reminders", reminderService.Run); err != nil {
			logger.Fatal("[app][worker] bad schedule", zap.Error(err))
		}
		scheduler.Start()
	}

	// === Run ===
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           corsHandler(cfg.Server.CORSOrigins).Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("[app] server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("[app] server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("[app] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("[app] forced shutdown", zap.Error(err))
	}
	logger.Info("[app] stopped")
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}
