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

const (
	candidateLookBack  = 24 * time.Hour
	candidateLookAhead = 48 * time.Hour
	hackathonLookAhead = 7 * 24 * time.Hour
)

// ClassifyTask picks the reminder bucket for a task deadline hoursUntil away.
//
//	[-24, 0) overdue, [0, 2] 2h, (2, 26] 24h, otherwise none.
func ClassifyTask(hoursUntil float64) (string, bool) {
	switch {
	case hoursUntil < 0 && hoursUntil >= -24:
		return models.TypeTaskOverdue, true
	case hoursUntil >= 0 && hoursUntil <= 2:
		return models.TypeTask2h, true
	case hoursUntil > 2 && hoursUntil <= 26:
		return models.TypeTask24h, true
	}
	return "", false
}

// ClassifyHackathon picks the bucket for a submission deadline daysUntil away.
func ClassifyHackathon(daysUntil float64) (string, bool) {
	switch {
	case daysUntil < 0:
		return "", false
	case daysUntil <= 1:
		return models.TypeHackathon1d, true
	case daysUntil <= 3:
		return models.TypeHackathon3d, true
	case daysUntil <= 7:
		return models.TypeHackathon7d, true
	}
	return "", false
}

type ReminderService interface {
	// Run evaluates task and hackathon reminders at now. A returned error
	// means a store failure; per-recipient send failures are in the summary.
	Run(ctx context.Context, now time.Time) (*RunSummary, error)
}

type ReminderConfig struct {
	AppURL   string
	Location *time.Location
}

type reminderService struct {
	tasks      repositories.TaskRepository
	hackathons repositories.HackathonRepository
	teams      repositories.TeamRepository
	dispatch   *dispatcher
	cfg        ReminderConfig
	logger     *zap.Logger
}

func NewReminderService(
	tasks repositories.TaskRepository,
	hackathons repositories.HackathonRepository,
	teams repositories.TeamRepository,
	logs repositories.NotificationLogRepository,
	email EmailService,
	guard dedup.Guard,
	cfg ReminderConfig,
	logger *zap.Logger,
) ReminderService {
	if guard == nil {
		guard = dedup.NewNoopGuard()
	}
	return &reminderService{
		tasks:      tasks,
		hackathons: hackathons,
		teams:      teams,
		dispatch:   &dispatcher{email: email, logs: logs, guard: guard, logger: logger},
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *reminderService) Run(ctx context.Context, now time.Time) (*RunSummary, error) {
	summary := &RunSummary{Success: true, Timestamp: now}
	dayStart := StartOfDay(now, s.cfg.Location)

	if err := s.runTasks(ctx, now, dayStart, summary); err != nil {
		return nil, err
	}
	if err := s.runHackathons(ctx, now, dayStart, summary); err != nil {
		return nil, err
	}

	s.logger.Info("[cron][reminders] done",
		zap.Int("emails_sent", summary.EmailsSent),
		zap.Int("errors", len(summary.Errors)),
	)
	return summary, nil
}

func (s *reminderService) runTasks(ctx context.Context, now, dayStart time.Time, summary *RunSummary) error {
	candidates, err := s.tasks.ListReminderCandidates(ctx, now.Add(-candidateLookBack), now.Add(candidateLookAhead))
	if err != nil {
		return fmt.Errorf("list reminder candidates: %w", err)
	}
	s.logger.Info("[cron][reminders] task candidates", zap.Int("count", len(candidates)))

	for _, c := range candidates {
		if c.Task.Status == models.StatusDone || c.Task.Deadline == nil {
			continue
		}
		hoursUntil := c.Task.Deadline.Sub(now).Hours()
		bucket, ok := ClassifyTask(hoursUntil)
		if !ok {
			continue
		}

		task, assignee := c.Task, c.Assignee
		o, err := s.dispatch.deliver(ctx, assignee, bucket, dayStart, func() templates.Email {
			return templates.TaskDeadline(templates.TaskDeadlineData{
				Task:          task,
				RecipientName: assignee.DisplayName(),
				HoursUntil:    hoursUntil,
				AppURL:        s.cfg.AppURL,
				Location:      s.cfg.Location,
			})
		}, map[string]any{"task_id": task.ID})
		if err != nil {
			return err
		}
		if o == outcomeFailed {
			s.logger.Warn("[cron][reminders][task] send failed",
				zap.String("task_id", task.ID), zap.String("type", bucket))
		}
		summary.record(o, emailOf(assignee))
	}
	return nil
}

func (s *reminderService) runHackathons(ctx context.Context, now, dayStart time.Time, summary *RunSummary) error {
	hackathons, err := s.hackathons.ListDueForReminder(ctx, now, now.Add(hackathonLookAhead))
	if err != nil {
		return fmt.Errorf("list hackathons: %w", err)
	}
	s.logger.Info("[cron][reminders] hackathon candidates", zap.Int("count", len(hackathons)))

	for _, h := range hackathons {
		if !h.NotificationsEnabled || h.SubmissionDeadline == nil {
			continue
		}
		daysUntil := h.SubmissionDeadline.Sub(now).Hours() / 24
		bucket, ok := ClassifyHackathon(daysUntil)
		if !ok {
			continue
		}

		members, err := s.teams.ListMembers(ctx, h.TeamID)
		if err != nil {
			return fmt.Errorf("list members of team %s: %w", h.TeamID, err)
		}

		hack := h
		for _, m := range members {
			member := m.Profile
			o, err := s.dispatch.deliver(ctx, member, bucket, dayStart, func() templates.Email {
				return templates.HackathonDeadline(templates.HackathonDeadlineData{
					Hackathon:     hack,
					RecipientName: member.DisplayName(),
					DeadlineLabel: "Submission",
					Deadline:      *hack.SubmissionDeadline,
					DaysUntil:     daysUntil,
					AppURL:        s.cfg.AppURL,
					Location:      s.cfg.Location,
				})
			}, map[string]any{"hackathon_id": hack.ID})
			if err != nil {
				return err
			}
			summary.record(o, emailOf(member))
		}
	}
	return nil
}

func emailOf(p models.Profile) string {
	if p.Email == nil {
		return ""
	}
	return *p.Email
}
