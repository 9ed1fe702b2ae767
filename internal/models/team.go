package models

import "time"

type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleMember TeamRole = "member"
)

type Team struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedBy  *string   `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TeamMembership is a team as seen by one of its members.
type TeamMembership struct {
	Team
	Role TeamRole `json:"role"`
}

type TeamMember struct {
	TeamID  string   `json:"team_id"`
	UserID  string   `json:"user_id"`
	Role    TeamRole `json:"role"`
	Profile Profile  `json:"profile"`
}
