package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hacktrack/internal/middleware"
	"hacktrack/internal/models"
	"hacktrack/internal/repositories"
	"hacktrack/internal/services"
)

// ---- teams ----

type fakeTeamService struct {
	services.TeamService
	created  []string
	joinedBy []string
}

func (f *fakeTeamService) Create(ctx context.Context, name, userID string) (*models.Team, error) {
	f.created = append(f.created, userID)
	owner := userID
	return &models.Team{ID: teamID, Name: name, InviteCode: "ABCDEF1234", CreatedBy: &owner}, nil
}

func (f *fakeTeamService) Join(ctx context.Context, code, userID string) (*models.Team, error) {
	if services.NormalizeInviteCode(code) != "ABCDEF1234" {
		return nil, services.ErrInvalidInviteCode
	}
	if userID == memberID {
		return nil, repositories.ErrAlreadyMember
	}
	f.joinedBy = append(f.joinedBy, userID)
	return &models.Team{ID: teamID, Name: "Night Owls", InviteCode: "ABCDEF1234"}, nil
}

func (f *fakeTeamService) Members(ctx context.Context, team string) ([]models.TeamMember, error) {
	return []models.TeamMember{{TeamID: team, UserID: ownerID, Role: models.TeamRoleOwner}}, nil
}

func teamEngine(uid string, svc services.TeamService) *gin.Engine {
	checker := testChecker()
	h := NewTeamHandler(svc, zap.NewNop())

	r := gin.New()
	api := r.Group("/api", asUser(uid))
	api.POST("/teams", h.Create)
	api.POST("/teams/join", h.Join)
	team := api.Group("/teams/:team_id", middleware.RequireTeamMember(checker))
	team.GET("/members", h.Members)
	return r
}

func TestCreateTeamMakesCallerOwner(t *testing.T) {
	svc := &fakeTeamService{}
	w := request(teamEngine(outsider, svc), http.MethodPost, "/api/teams", map[string]string{"name": "Night Owls"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var team models.Team
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &team))
	assert.Equal(t, "ABCDEF1234", team.InviteCode)
	assert.Equal(t, []string{outsider}, svc.created)

	w = request(teamEngine(outsider, svc), http.MethodPost, "/api/teams", map[string]string{"name": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, svc.created, 1)
}

func TestJoinTeam(t *testing.T) {
	cases := []struct {
		name string
		uid  string
		body any
		code int
	}{
		{"missing code", outsider, map[string]string{}, http.StatusBadRequest},
		{"unknown code", outsider, map[string]string{"inviteCode": "WRONG"}, http.StatusNotFound},
		{"already member", memberID, map[string]string{"inviteCode": "ABCDEF1234"}, http.StatusConflict},
		{"joins", outsider, map[string]string{"inviteCode": " abcdef1234 "}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := request(teamEngine(tc.uid, &fakeTeamService{}), http.MethodPost, "/api/teams/join", tc.body, nil)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}
}

func TestTeamMembersRequireMembership(t *testing.T) {
	svc := &fakeTeamService{}
	assert.Equal(t, http.StatusOK, request(teamEngine(memberID, svc), http.MethodGet, "/api/teams/"+teamID+"/members", nil, nil).Code)
	assert.Equal(t, http.StatusForbidden, request(teamEngine(outsider, svc), http.MethodGet, "/api/teams/"+teamID+"/members", nil, nil).Code)
}

// ---- comments ----

type fakeComments struct {
	services.CommentService
	added []models.TaskComment
}

func (f *fakeComments) Add(ctx context.Context, task, user, content string) (*models.TaskComment, error) {
	if content == "" || content == "   " {
		return nil, services.ErrEmptyComment
	}
	c := models.TaskComment{ID: "c1", TaskID: task, UserID: user, Content: content}
	f.added = append(f.added, c)
	return &c, nil
}

func (f *fakeComments) List(ctx context.Context, task string) ([]models.TaskComment, error) {
	return f.added, nil
}

func commentEngine(uid string, svc services.CommentService) *gin.Engine {
	tasks := &fakeTasks{tasks: map[string]*models.Task{taskID: {ID: taskID, TeamID: teamID, Title: "x"}}}
	h := NewCommentHandler(svc, tasks, testChecker(), zap.NewNop())

	r := gin.New()
	api := r.Group("/api", asUser(uid))
	api.GET("/tasks/:id/comments", h.List)
	api.POST("/tasks/:id/comments", h.Create)
	return r
}

func TestTaskComments(t *testing.T) {
	svc := &fakeComments{}
	r := commentEngine(memberID, svc)
	path := "/api/tasks/" + taskID + "/comments"

	w := request(r, http.MethodPost, path, map[string]string{"content": "pushed the demo"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, svc.added, 1)
	assert.Equal(t, memberID, svc.added[0].UserID)

	w = request(r, http.MethodPost, path, map[string]string{"content": "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(r, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.TaskComment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = request(r, http.MethodGet, "/api/tasks/77777777-7777-4777-8777-777777777777/comments", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = request(r, http.MethodGet, "/api/tasks/nope/comments", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskCommentsHiddenFromOutsiders(t *testing.T) {
	svc := &fakeComments{}
	r := commentEngine(outsider, svc)
	path := "/api/tasks/" + taskID + "/comments"

	w := request(r, http.MethodPost, path, map[string]string{"content": "hi"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"task not found"}`, w.Body.String())
	assert.Equal(t, http.StatusNotFound, request(r, http.MethodGet, path, nil, nil).Code)
	assert.Empty(t, svc.added)
}
