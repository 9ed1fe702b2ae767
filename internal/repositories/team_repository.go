package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hacktrack/internal/models"
)

type TeamRepository interface {
	// GetMemberRole returns ErrNotFound when the user is not in the team.
	GetMemberRole(ctx context.Context, teamID, userID string) (models.TeamRole, error)
	ListMembers(ctx context.Context, teamID string) ([]models.TeamMember, error)

	// Create stores the team and its owner membership in one transaction.
	Create(ctx context.Context, team *models.Team, ownerID string) error
	// AddMember returns ErrAlreadyMember when the user is already in the team.
	AddMember(ctx context.Context, teamID, userID string, role models.TeamRole) error
	FindByInviteCode(ctx context.Context, code string) (*models.Team, error)
	ListForUser(ctx context.Context, userID string) ([]models.TeamMembership, error)
}

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) GetMemberRole(ctx context.Context, teamID, userID string) (models.TeamRole, error) {
	var role models.TeamRole
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID,
	).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	q := `
SELECT m.team_id, m.user_id, m.role,
       p.id, p.full_name, p.email, p.phone, p.notifications_email, p.notifications_whatsapp
FROM team_members m
JOIN profiles p ON p.id = m.user_id
WHERE m.team_id = $1
ORDER BY m.user_id`
	rows, err := r.db.QueryContext(ctx, q, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		dest := append([]any{&m.TeamID, &m.UserID, &m.Role}, profileDest(&m.Profile)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team, ownerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO teams (id, name, invite_code, created_by, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at`,
		team.ID, team.Name, team.InviteCode, team.CreatedBy,
	).Scan(&team.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id, role) VALUES ($1, $2, $3)`,
		team.ID, ownerID, models.TeamRoleOwner,
	); err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}
	return tx.Commit()
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, userID string, role models.TeamRole) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id, role) VALUES ($1, $2, $3)`,
		teamID, userID, role,
	)
	if isUniqueViolation(err) {
		return ErrAlreadyMember
	}
	return err
}

func (r *teamRepository) FindByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	t := &models.Team{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, invite_code, created_by, created_at FROM teams WHERE invite_code = $1`, code,
	).Scan(&t.ID, &t.Name, &t.InviteCode, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) ListForUser(ctx context.Context, userID string) ([]models.TeamMembership, error) {
	q := `
SELECT t.id, t.name, t.invite_code, t.created_by, t.created_at, m.role
FROM teams t
JOIN team_members m ON m.team_id = t.id
WHERE m.user_id = $1
ORDER BY t.created_at`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TeamMembership{}
	for rows.Next() {
		var m models.TeamMembership
		if err := rows.Scan(&m.ID, &m.Name, &m.InviteCode, &m.CreatedBy, &m.CreatedAt, &m.Role); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
