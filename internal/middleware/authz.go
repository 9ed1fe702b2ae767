package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hacktrack/internal/authz"
	"hacktrack/internal/models"
)

// ContextTeamRole holds the caller's role in the team named by the route.
const ContextTeamRole = "team_role"

// RequireTeamMember resolves the caller's role in the team named by the
// :team_id path parameter and rejects non-members.
func RequireTeamMember(checker *authz.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		teamID := c.Param("team_id")
		if _, err := uuid.Parse(teamID); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
			return
		}
		role, err := checker.Role(c.Request.Context(), teamID, c.GetString(ContextUserID))
		if err != nil {
			if errors.Is(err, authz.ErrNotMember) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check team membership"})
			return
		}
		c.Set(ContextTeamRole, role)
		c.Next()
	}
}

// TeamRole returns the role stored by RequireTeamMember.
func TeamRole(c *gin.Context) models.TeamRole {
	v, _ := c.Get(ContextTeamRole)
	role, _ := v.(models.TeamRole)
	return role
}
