package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

type memTeamRepo struct {
	repositories.TeamRepository
	teams   map[string]*models.Team
	members map[string]models.TeamRole // teamID + "/" + userID
}

func newMemTeamRepo() *memTeamRepo {
	return &memTeamRepo{teams: map[string]*models.Team{}, members: map[string]models.TeamRole{}}
}

func (r *memTeamRepo) Create(_ context.Context, t *models.Team, ownerID string) error {
	r.teams[t.ID] = t
	r.members[t.ID+"/"+ownerID] = models.TeamRoleOwner
	return nil
}

func (r *memTeamRepo) AddMember(_ context.Context, teamID, userID string, role models.TeamRole) error {
	key := teamID + "/" + userID
	if _, ok := r.members[key]; ok {
		return repositories.ErrAlreadyMember
	}
	r.members[key] = role
	return nil
}

func (r *memTeamRepo) FindByInviteCode(_ context.Context, code string) (*models.Team, error) {
	for _, t := range r.teams {
		if t.InviteCode == code {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func TestTeamCreateMakesCallerOwner(t *testing.T) {
	repo := newMemTeamRepo()
	team, err := NewTeamService(repo).Create(context.Background(), "  Night Owls ", "u1")
	require.NoError(t, err)

	assert.Equal(t, "Night Owls", team.Name)
	assert.Len(t, team.InviteCode, inviteCodeLen)
	assert.Equal(t, "u1", *team.CreatedBy)
	assert.Equal(t, models.TeamRoleOwner, repo.members[team.ID+"/u1"])
}

func TestTeamJoinByInviteCode(t *testing.T) {
	repo := newMemTeamRepo()
	svc := NewTeamService(repo)
	ctx := context.Background()

	team, err := svc.Create(ctx, "Night Owls", "owner")
	require.NoError(t, err)

	joined, err := svc.Join(ctx, " "+team.InviteCode+"\n", "u2")
	require.NoError(t, err)
	assert.Equal(t, team.ID, joined.ID)
	assert.Equal(t, models.TeamRoleMember, repo.members[team.ID+"/u2"])

	_, err = svc.Join(ctx, team.InviteCode, "u2")
	assert.ErrorIs(t, err, repositories.ErrAlreadyMember)

	_, err = svc.Join(ctx, "NOPE", "u3")
	assert.ErrorIs(t, err, ErrInvalidInviteCode)
}

func TestInviteCodesDiffer(t *testing.T) {
	a, b := NewInviteCode(), NewInviteCode()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, NormalizeInviteCode(" "+a+" "))
}
