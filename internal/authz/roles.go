package authz

import (
	"context"
	"errors"

	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
)

// ErrNotMember is returned when the caller does not belong to the team.
var ErrNotMember = errors.New("not a member of this team")

func CanEdit(role models.TeamRole) bool {
	return role == models.TeamRoleOwner || role == models.TeamRoleMember
}

func CanManage(role models.TeamRole) bool {
	return role == models.TeamRoleOwner
}

// Checker resolves team roles for the authenticated user.
type Checker struct {
	teams repositories.TeamRepository
}

func NewChecker(teams repositories.TeamRepository) *Checker {
	return &Checker{teams: teams}
}

func (c *Checker) Role(ctx context.Context, teamID, userID string) (models.TeamRole, error) {
	role, err := c.teams.GetMemberRole(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrNotMember
		}
		return "", err
	}
	return role, nil
}
