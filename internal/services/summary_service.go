package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hacktrack/internal/dedup"
	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
	"hacktrack/internal/templates"
)

type SummaryService interface {
	RunDaily(ctx context.Context, now time.Time) (*RunSummary, error)
	RunWeekly(ctx context.Context, now time.Time) (*RunSummary, error)
}

type summaryService struct {
	profiles   repositories.ProfileRepository
	tasks      repositories.TaskRepository
	hackathons repositories.HackathonRepository
	dispatch   *dispatcher
	cfg        ReminderConfig
	logger     *zap.Logger
}

func NewSummaryService(
	profiles repositories.ProfileRepository,
	tasks repositories.TaskRepository,
	hackathons repositories.HackathonRepository,
	logs repositories.NotificationLogRepository,
	email EmailService,
	guard dedup.Guard,
	cfg ReminderConfig,
	logger *zap.Logger,
) SummaryService {
	if guard == nil {
		guard = dedup.NewNoopGuard()
	}
	return &summaryService{
		profiles:   profiles,
		tasks:      tasks,
		hackathons: hackathons,
		dispatch:   &dispatcher{email: email, logs: logs, guard: guard, logger: logger},
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *summaryService) RunDaily(ctx context.Context, now time.Time) (*RunSummary, error) {
	dayStart := StartOfDay(now, s.cfg.Location)
	return s.run(ctx, now, dayStart, dayStart.Add(-24*time.Hour), models.TypeDailySummary, templates.DailySummary)
}

func (s *summaryService) RunWeekly(ctx context.Context, now time.Time) (*RunSummary, error) {
	dayStart := StartOfDay(now, s.cfg.Location)
	return s.run(ctx, now, dayStart, dayStart.AddDate(0, 0, -7), models.TypeWeeklySummary, templates.WeeklySummary)
}

func (s *summaryService) run(
	ctx context.Context,
	now, dayStart, periodStart time.Time,
	notificationType string,
	render func(templates.SummaryData) templates.Email,
) (*RunSummary, error) {
	summary := &RunSummary{Success: true, Timestamp: now}

	profiles, err := s.profiles.ListEmailSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	for _, p := range profiles {
		stats, err := s.tasks.SummaryForAssignee(ctx, p.ID, now, dayStart, periodStart)
		if err != nil {
			return nil, fmt.Errorf("task summary for %s: %w", p.ID, err)
		}
		stats.UpcomingHackathons, err = s.hackathons.CountUpcomingForUser(ctx, p.ID, now, now.Add(hackathonLookAhead))
		if err != nil {
			return nil, fmt.Errorf("upcoming hackathons for %s: %w", p.ID, err)
		}
		if stats.IsEmpty() {
			continue
		}

		profile := p
		o, err := s.dispatch.deliver(ctx, profile, notificationType, dayStart, func() templates.Email {
			return render(templates.SummaryData{
				RecipientName: profile.DisplayName(),
				Stats:         stats,
				Date:          now.In(dayStart.Location()),
				AppURL:        s.cfg.AppURL,
			})
		}, nil)
		if err != nil {
			return nil, err
		}
		summary.record(o, emailOf(profile))
	}

	s.logger.Info("[cron][summary] done",
		zap.String("type", notificationType),
		zap.Int("subscribers", len(profiles)),
		zap.Int("emails_sent", summary.EmailsSent),
		zap.Int("errors", len(summary.Errors)),
	)
	return summary, nil
}
