package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
	"hacktrack/internal/templates"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrNoAssignee          = errors.New("task has no assignee")
	ErrAssigneeNotEligible = errors.New("assignee has email notifications disabled or no email address")
)

type NotificationService interface {
	// NotifyTaskAssigned emails the assignee of taskID. assignerID, when
	// set, overrides the task creator as the named assigner.
	NotifyTaskAssigned(ctx context.Context, taskID, assignerID string) (*EmailResult, error)
}

type notificationService struct {
	tasks    repositories.TaskRepository
	profiles repositories.ProfileRepository
	email    EmailService
	appURL   string
	loc      *time.Location
	logger   *zap.Logger
}

func NewNotificationService(
	tasks repositories.TaskRepository,
	profiles repositories.ProfileRepository,
	email EmailService,
	cfg ReminderConfig,
	logger *zap.Logger,
) NotificationService {
	return &notificationService{
		tasks:    tasks,
		profiles: profiles,
		email:    email,
		appURL:   cfg.AppURL,
		loc:      cfg.Location,
		logger:   logger,
	}
}

func (s *notificationService) NotifyTaskAssigned(ctx context.Context, taskID, assignerID string) (*EmailResult, error) {
	t, err := s.tasks.FindWithPeople(ctx, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if t.Assignee == nil {
		return nil, ErrNoAssignee
	}
	if !t.Assignee.CanReceiveEmail() {
		s.logger.Info("[notify][assigned][skip] assignee not eligible",
			zap.String("task_id", taskID), zap.String("assignee_id", t.Assignee.ID))
		return nil, ErrAssigneeNotEligible
	}

	assigner := "A teammate"
	switch {
	case assignerID != "":
		if p, err := s.profiles.GetByID(ctx, assignerID); err == nil {
			assigner = p.DisplayName()
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	case t.Creator != nil:
		assigner = t.Creator.DisplayName()
	}

	e := templates.TaskAssigned(templates.TaskAssignedData{
		Task:         t.Task,
		AssigneeName: t.Assignee.DisplayName(),
		AssignerName: assigner,
		AppURL:       s.appURL,
		Location:     s.loc,
	})
	res := s.email.Send(ctx, EmailRequest{
		To:               *t.Assignee.Email,
		Subject:          e.Subject,
		HTML:             e.HTML,
		UserID:           t.Assignee.ID,
		NotificationType: models.TypeTaskAssigned,
		Metadata:         map[string]any{"task_id": t.ID},
	})
	return &res, nil
}
