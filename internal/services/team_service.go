package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

var ErrInvalidInviteCode = errors.New("invalid invite code")

const inviteCodeLen = 10

type TeamService interface {
	// Create makes userID the owner of a new team with a fresh invite code.
	Create(ctx context.Context, name, userID string) (*models.Team, error)
	// Join adds userID as a member of the team holding inviteCode.
	Join(ctx context.Context, inviteCode, userID string) (*models.Team, error)
	ListForUser(ctx context.Context, userID string) ([]models.TeamMembership, error)
	Members(ctx context.Context, teamID string) ([]models.TeamMember, error)
}

type teamService struct {
	repo repositories.TeamRepository
}

func NewTeamService(repo repositories.TeamRepository) TeamService {
	return &teamService{repo: repo}
}

// NewInviteCode derives a short shareable code from a random uuid.
func NewInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:inviteCodeLen])
}

// NormalizeInviteCode accepts codes pasted with stray whitespace or in lower case.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *teamService) Create(ctx context.Context, name, userID string) (*models.Team, error) {
	owner := userID
	team := &models.Team{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		InviteCode: NewInviteCode(),
		CreatedBy:  &owner,
	}
	if err := s.repo.Create(ctx, team, userID); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) Join(ctx context.Context, inviteCode, userID string) (*models.Team, error) {
	team, err := s.repo.FindByInviteCode(ctx, NormalizeInviteCode(inviteCode))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}
	if err := s.repo.AddMember(ctx, team.ID, userID, models.TeamRoleMember); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) ListForUser(ctx context.Context, userID string) ([]models.TeamMembership, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *teamService) Members(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	return s.repo.ListMembers(ctx, teamID)
}
