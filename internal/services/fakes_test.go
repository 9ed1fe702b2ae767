package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gopkg.in/gomail.v2"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func profile(id, email string, optIn bool) models.Profile {
	p := models.Profile{ID: id, FullName: strPtr("User " + id), NotificationsEmail: optIn}
	if email != "" {
		p.Email = strPtr(email)
	}
	return p
}

type fakeLogRepo struct {
	mu        sync.Mutex
	now       time.Time
	entries   []models.NotificationLog
	existsErr error
}

func (r *fakeLogRepo) Insert(_ context.Context, e *models.NotificationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = int64(len(r.entries) + 1)
	e.CreatedAt = r.now
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeLogRepo) ExistsSince(_ context.Context, userID, typ string, status models.NotificationStatus, since time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, e := range r.entries {
		if e.UserID == userID && e.NotificationType == typ && e.Status == status && !e.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLogRepo) count(typ string, status models.NotificationStatus) int {
	n := 0
	for _, e := range r.entries {
		if e.NotificationType == typ && e.Status == status {
			n++
		}
	}
	return n
}

var _ repositories.NotificationLogRepository = (*fakeLogRepo)(nil)

// fakeSender records every message and fails for addresses in failFor.
type fakeSender struct {
	sent    []*gomail.Message
	failFor map[string]bool
}

func (s *fakeSender) DialAndSend(msgs ...*gomail.Message) error {
	for _, m := range msgs {
		if to := m.GetHeader("To"); len(to) > 0 && s.failFor[to[0]] {
			return errors.New("smtp: 550 mailbox unavailable")
		}
		s.sent = append(s.sent, m)
	}
	return nil
}

func (s *fakeSender) recipients() []string {
	var out []string
	for _, m := range s.sent {
		out = append(out, m.GetHeader("To")...)
	}
	return out
}

type fakeTaskRepo struct {
	repositories.TaskRepository

	candidates []models.ReminderCandidate
	listErr    error
	listCalls  int
	withPeople map[string]*models.TaskWithPeople
	summaries  map[string]models.TaskSummary
}

func (r *fakeTaskRepo) ListReminderCandidates(_ context.Context, from, to time.Time) ([]models.ReminderCandidate, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	// status is deliberately not filtered here
	var out []models.ReminderCandidate
	for _, c := range r.candidates {
		if c.Task.Deadline != nil && !c.Task.Deadline.Before(from) && c.Task.Deadline.Before(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindWithPeople(_ context.Context, id string) (*models.TaskWithPeople, error) {
	t, ok := r.withPeople[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return t, nil
}

func (r *fakeTaskRepo) SummaryForAssignee(_ context.Context, userID string, _, _, _ time.Time) (models.TaskSummary, error) {
	return r.summaries[userID], nil
}

type fakeHackathonRepo struct {
	repositories.HackathonRepository

	due      []models.Hackathon
	upcoming map[string]int
}

func (r *fakeHackathonRepo) ListDueForReminder(_ context.Context, from, to time.Time) ([]models.Hackathon, error) {
	var out []models.Hackathon
	for _, h := range r.due {
		if h.SubmissionDeadline != nil && !h.SubmissionDeadline.Before(from) && h.SubmissionDeadline.Before(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHackathonRepo) CountUpcomingForUser(_ context.Context, userID string, _, _ time.Time) (int, error) {
	return r.upcoming[userID], nil
}

type fakeTeamRepo struct {
	repositories.TeamRepository
	members map[string][]models.TeamMember
}

func (r *fakeTeamRepo) ListMembers(_ context.Context, teamID string) ([]models.TeamMember, error) {
	return r.members[teamID], nil
}

type fakeProfileRepo struct {
	repositories.ProfileRepository
	byID        map[string]models.Profile
	subscribers []models.Profile
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*models.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) ListEmailSubscribers(context.Context) ([]models.Profile, error) {
	return r.subscribers, nil
}

type denyGuard struct{}

func (denyGuard) Claim(context.Context, string, string, time.Time) bool { return false }
func (denyGuard) Release(context.Context, string, string, time.Time)    {}
