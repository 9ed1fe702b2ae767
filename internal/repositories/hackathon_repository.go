package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hacktrack/internal/models"
)

type HackathonRepository interface {
	Store(ctx context.Context, h *models.Hackathon) error
	FindByID(ctx context.Context, id string) (*models.Hackathon, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Hackathon, error)
	Update(ctx context.Context, h *models.Hackathon) error
	Delete(ctx context.Context, id string) error

	// ListDueForReminder returns notification-enabled hackathons whose
	// submission deadline is in [from, to).
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]models.Hackathon, error)
	CountUpcomingForUser(ctx context.Context, userID string, from, to time.Time) (int, error)
}

type hackathonRepository struct {
	db *sql.DB
}

func NewHackathonRepository(db *sql.DB) HackathonRepository {
	return &hackathonRepository{db: db}
}

const hackathonColumns = `id, title, organizer, link, start_date, end_date, registration_deadline,
       submission_deadline, notifications_enabled, team_id, created_at`

func scanHackathon(s rowScanner, h *models.Hackathon) error {
	return s.Scan(
		&h.ID, &h.Title, &h.Organizer, &h.Link, &h.StartDate, &h.EndDate, &h.RegistrationDeadline,
		&h.SubmissionDeadline, &h.NotificationsEnabled, &h.TeamID, &h.CreatedAt,
	)
}

func (r *hackathonRepository) Store(ctx context.Context, h *models.Hackathon) error {
	q := `
		INSERT INTO hackathons (
			id, title, organizer, link, start_date, end_date, registration_deadline,
			submission_deadline, notifications_enabled, team_id, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.db.ExecContext(ctx, q,
		h.ID, h.Title, h.Organizer, h.Link, h.StartDate, h.EndDate, h.RegistrationDeadline,
		h.SubmissionDeadline, h.NotificationsEnabled, h.TeamID, h.CreatedAt,
	)
	return err
}

func (r *hackathonRepository) FindByID(ctx context.Context, id string) (*models.Hackathon, error) {
	q := `SELECT ` + hackathonColumns + ` FROM hackathons WHERE id = $1`
	h := &models.Hackathon{}
	if err := scanHackathon(r.db.QueryRowContext(ctx, q, id), h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (r *hackathonRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Hackathon, error) {
	q := `SELECT ` + hackathonColumns + ` FROM hackathons WHERE team_id = $1
ORDER BY submission_deadline ASC NULLS LAST, created_at DESC`
	return r.list(ctx, q, teamID)
}

func (r *hackathonRepository) Update(ctx context.Context, h *models.Hackathon) error {
	q := `
		UPDATE hackathons SET
			title=$1, organizer=$2, link=$3, start_date=$4, end_date=$5,
			registration_deadline=$6, submission_deadline=$7, notifications_enabled=$8
		WHERE id=$9`
	res, err := r.db.ExecContext(ctx, q,
		h.Title, h.Organizer, h.Link, h.StartDate, h.EndDate,
		h.RegistrationDeadline, h.SubmissionDeadline, h.NotificationsEnabled, h.ID,
	)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *hackathonRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hackathons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *hackathonRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]models.Hackathon, error) {
	q := `SELECT ` + hackathonColumns + ` FROM hackathons
WHERE notifications_enabled = TRUE
  AND submission_deadline IS NOT NULL
  AND submission_deadline >= $1
  AND submission_deadline < $2
ORDER BY submission_deadline ASC`
	return r.list(ctx, q, from, to)
}

func (r *hackathonRepository) CountUpcomingForUser(ctx context.Context, userID string, from, to time.Time) (int, error) {
	q := `
SELECT COUNT(*)
FROM hackathons h
JOIN team_members m ON m.team_id = h.team_id
WHERE m.user_id = $1
  AND h.submission_deadline >= $2
  AND h.submission_deadline < $3`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID, from, to).Scan(&n)
	return n, err
}

func (r *hackathonRepository) list(ctx context.Context, q string, args ...any) ([]models.Hackathon, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Hackathon{}
	for rows.Next() {
		var h models.Hackathon
		if err := scanHackathon(rows, &h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
