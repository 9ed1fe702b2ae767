package repositories

import (
	"context"
	"database/sql"
	"errors"

	"hacktrack/internal/models"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	UpdateNotificationSettings(ctx context.Context, id string, s models.NotificationSettings) error
	// ListEmailSubscribers returns profiles that opted in to email and have an address.
	ListEmailSubscribers(ctx context.Context) ([]models.Profile, error)
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, full_name, email, phone, notifications_email, notifications_whatsapp`

func profileDest(p *models.Profile) []any {
	return []any{&p.ID, &p.FullName, &p.Email, &p.Phone, &p.NotificationsEmail, &p.NotificationsWhatsApp}
}

// nullableProfile scans the columns of a LEFT JOINed profile.
type nullableProfile struct {
	id       sql.NullString
	fullName sql.NullString
	email    sql.NullString
	phone    sql.NullString
	notifyEm sql.NullBool
	notifyWa sql.NullBool
}

func (n *nullableProfile) dest() []any {
	return []any{&n.id, &n.fullName, &n.email, &n.phone, &n.notifyEm, &n.notifyWa}
}

func (n *nullableProfile) profile() *models.Profile {
	if !n.id.Valid {
		return nil
	}
	p := &models.Profile{
		ID:                    n.id.String,
		NotificationsEmail:    n.notifyEm.Bool,
		NotificationsWhatsApp: n.notifyWa.Bool,
	}
	if n.fullName.Valid {
		s := n.fullName.String
		p.FullName = &s
	}
	if n.email.Valid {
		s := n.email.String
		p.Email = &s
	}
	if n.phone.Valid {
		s := n.phone.String
		p.Phone = &s
	}
	return p
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p := &models.Profile{}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(profileDest(p)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) UpdateNotificationSettings(ctx context.Context, id string, s models.NotificationSettings) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET notifications_email=$1, notifications_whatsapp=$2 WHERE id=$3`,
		s.NotificationsEmail, s.NotificationsWhatsApp, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *profileRepository) ListEmailSubscribers(ctx context.Context) ([]models.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles
WHERE notifications_email = TRUE AND email IS NOT NULL AND email <> ''
ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(profileDest(&p)...); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
