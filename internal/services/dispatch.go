package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hacktrack/internal/dedup"
	"hacktrack/internal/metrics"
	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
	"hacktrack/internal/templates"
)

// RunSummary is the response body of a scheduled job run.
type RunSummary struct {
	Success    bool      `json:"success"`
	EmailsSent int       `json:"emailsSent"`
	Errors     []string  `json:"errors,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (s *RunSummary) record(o outcome, recipient string) {
	switch o {
	case outcomeSent:
		s.EmailsSent++
	case outcomeFailed:
		s.Errors = append(s.Errors, fmt.Sprintf("failed to send to %s", recipient))
	}
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeFailed
)

// dispatcher runs the eligibility, dedup and send steps shared by every
// scheduled notification kind.
type dispatcher struct {
	email  EmailService
	logs   repositories.NotificationLogRepository
	guard  dedup.Guard
	logger *zap.Logger
}

// deliver returns a non-nil error only for store failures; send failures are
// reported as outcomeFailed.
func (d *dispatcher) deliver(
	ctx context.Context,
	to models.Profile,
	notificationType string,
	dayStart time.Time,
	render func() templates.Email,
	meta map[string]any,
) (outcome, error) {
	if !to.CanReceiveEmail() {
		metrics.RemindersSkipped.WithLabelValues("not_eligible").Inc()
		return outcomeSkipped, nil
	}

	// only sent rows count, so a failed attempt is retried by a later run
	exists, err := d.logs.ExistsSince(ctx, to.ID, notificationType, models.NotificationSent, dayStart)
	if err != nil {
		return outcomeSkipped, fmt.Errorf("check notification log: %w", err)
	}
	if exists {
		metrics.RemindersSkipped.WithLabelValues("already_sent").Inc()
		d.logger.Debug("[dispatch][skip] already sent today",
			zap.String("user_id", to.ID), zap.String("type", notificationType))
		return outcomeSkipped, nil
	}
	if !d.guard.Claim(ctx, to.ID, notificationType, dayStart) {
		metrics.RemindersSkipped.WithLabelValues("claimed").Inc()
		return outcomeSkipped, nil
	}

	e := render()
	res := d.email.Send(ctx, EmailRequest{
		To:               *to.Email,
		Subject:          e.Subject,
		HTML:             e.HTML,
		UserID:           to.ID,
		NotificationType: notificationType,
		Metadata:         meta,
	})
	if !res.Success {
		d.guard.Release(ctx, to.ID, notificationType, dayStart)
		return outcomeFailed, nil
	}
	return outcomeSent, nil
}

// StartOfDay returns local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
