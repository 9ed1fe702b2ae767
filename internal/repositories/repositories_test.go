package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hacktrack/internal/models"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var taskCols = []string{"id", "title", "description", "assigned_to", "deadline", "priority", "status",
	"team_id", "created_by", "created_at", "updated_at"}

func TestListReminderCandidates(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTaskRepository(db)

	from := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	to := from.Add(72 * time.Hour)
	deadline := from.Add(30 * time.Hour)

	cols := append(append([]string{}, taskCols...), "p_id", "full_name", "email", "phone", "notifications_email", "notifications_whatsapp")
	rows := sqlmock.NewRows(cols).AddRow(
		"t1", "Pitch", nil, "u1", deadline, "high", "doing",
		"team1", nil, from, from,
		"u1", "Ada", "ada@x.io", nil, true, false,
	)
	mock.ExpectQuery(`FROM tasks t\s+JOIN profiles p ON p.id = t.assigned_to\s+WHERE t.status <> 'done'`).
		WithArgs(from, to).
		WillReturnRows(rows)

	got, err := repo.ListReminderCandidates(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "t1", c.Task.ID)
	assert.Equal(t, models.PriorityHigh, c.Task.Priority)
	assert.Nil(t, c.Task.Description)
	require.NotNil(t, c.Task.Deadline)
	assert.True(t, deadline.Equal(*c.Task.Deadline))
	assert.Equal(t, "u1", c.Assignee.ID)
	assert.Equal(t, "ada@x.io", *c.Assignee.Email)
	assert.True(t, c.Assignee.NotificationsEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskFindByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM tasks t WHERE t.id = \$1`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := NewTaskRepository(db).FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTaskDeleteZeroRowsIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1`).WithArgs("t2").WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTaskRepository(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), "t1"), ErrNotFound)
	assert.NoError(t, repo.Delete(context.Background(), "t2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationLogExistsSince(t *testing.T) {
	db, mock := newMock(t)
	since := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("u1", models.TypeTask24h, models.NotificationSent, since).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewNotificationLogRepository(db).ExistsSince(context.Background(), "u1", models.TypeTask24h, models.NotificationSent, since)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationLogInsert(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO notification_logs`).
		WithArgs("u1", models.TypeTask2h, models.ChannelEmail, models.NotificationSent, `{"task_id":"t1"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created))

	entry := &models.NotificationLog{
		UserID:           "u1",
		NotificationType: models.TypeTask2h,
		Channel:          models.ChannelEmail,
		Status:           models.NotificationSent,
		Metadata:         map[string]any{"task_id": "t1"},
	}
	require.NoError(t, NewNotificationLogRepository(db).Insert(context.Background(), entry))
	assert.Equal(t, int64(1), entry.ID)
	assert.True(t, created.Equal(entry.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationLogInsertWithoutMetadata(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO notification_logs`).
		WithArgs("u1", models.TypeDailySummary, models.ChannelEmail, models.NotificationFailed, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))

	entry := &models.NotificationLog{UserID: "u1", NotificationType: models.TypeDailySummary, Channel: models.ChannelEmail, Status: models.NotificationFailed}
	require.NoError(t, NewNotificationLogRepository(db).Insert(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMemberRole(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT role FROM team_members`).WithArgs("team1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("owner"))
	mock.ExpectQuery(`SELECT role FROM team_members`).WithArgs("team1", "u2").
		WillReturnError(sql.ErrNoRows)

	repo := NewTeamRepository(db)
	role, err := repo.GetMemberRole(context.Background(), "team1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TeamRoleOwner, role)

	_, err = repo.GetMemberRole(context.Background(), "team1", "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeamCreateInsertsOwnerInTransaction(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	owner := "u1"

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("team1", "Night Owls", "ABCDEF1234", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs("team1", "u1", "owner").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	team := &models.Team{ID: "team1", Name: "Night Owls", InviteCode: "ABCDEF1234", CreatedBy: &owner}
	require.NoError(t, NewTeamRepository(db).Create(context.Background(), team, "u1"))
	assert.True(t, created.Equal(team.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamCreateRollsBackWhenOwnerInsertFails(t *testing.T) {
	db, mock := newMock(t)
	owner := "u1"

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO teams`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`INSERT INTO team_members`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	team := &models.Team{ID: "team1", Name: "x", InviteCode: "C", CreatedBy: &owner}
	err := NewTeamRepository(db).Create(context.Background(), team, "u1")
	assert.ErrorContains(t, err, "insert owner")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMemberDuplicateIsAlreadyMember(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO team_members`).WithArgs("team1", "u2", "member").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectExec(`INSERT INTO team_members`).WithArgs("team1", "u3", "member").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTeamRepository(db)
	assert.ErrorIs(t, repo.AddMember(context.Background(), "team1", "u2", models.TeamRoleMember), ErrAlreadyMember)
	assert.NoError(t, repo.AddMember(context.Background(), "team1", "u3", models.TeamRoleMember))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByInviteCode(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM teams WHERE invite_code = \$1`).WithArgs("ABCDEF1234").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "invite_code", "created_by", "created_at"}).
			AddRow("team1", "Night Owls", "ABCDEF1234", "u1", created))
	mock.ExpectQuery(`FROM teams WHERE invite_code = \$1`).WithArgs("NOPE").WillReturnError(sql.ErrNoRows)

	repo := NewTeamRepository(db)
	team, err := repo.FindByInviteCode(context.Background(), "ABCDEF1234")
	require.NoError(t, err)
	assert.Equal(t, "team1", team.ID)
	require.NotNil(t, team.CreatedBy)
	assert.Equal(t, "u1", *team.CreatedBy)

	_, err = repo.FindByInviteCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentListByTaskKeepsAuthorlessRows(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "task_id", "user_id", "content", "created_at",
		"p_id", "full_name", "email", "phone", "notifications_email", "notifications_whatsapp"}
	mock.ExpectQuery(`FROM task_comments c\s+LEFT JOIN profiles p`).WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("c1", "t1", "u1", "first", at, "u1", "Ada", "ada@x.io", nil, true, false).
			AddRow("c2", "t1", "u9", "second", at.Add(time.Minute), nil, nil, nil, nil, nil, nil))

	got, err := NewCommentRepository(db).ListByTask(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "Ada", *got[0].User.FullName)
	assert.Nil(t, got[1].User)
	assert.Equal(t, "second", got[1].Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentStore(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO task_comments`).WithArgs("c1", "t1", "u1", "hello").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(at))

	c := &models.TaskComment{ID: "c1", TaskID: "t1", UserID: "u1", Content: "hello"}
	require.NoError(t, NewCommentRepository(db).Store(context.Background(), c))
	assert.True(t, at.Equal(c.CreatedAt))
}

var hackathonCols = []string{"id", "title", "organizer", "link", "start_date", "end_date", "registration_deadline",
	"submission_deadline", "notifications_enabled", "team_id", "created_at"}

func TestListDueForReminder(t *testing.T) {
	db, mock := newMock(t)
	from := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	to := from.Add(72 * time.Hour)
	due := from.Add(48 * time.Hour)

	mock.ExpectQuery(`FROM hackathons\s+WHERE notifications_enabled = TRUE\s+AND submission_deadline IS NOT NULL\s+AND submission_deadline >= \$1\s+AND submission_deadline < \$2\s+ORDER BY submission_deadline ASC`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows(hackathonCols).
			AddRow("h1", "Spring Hack", "ACM", nil, nil, nil, nil, due, true, "team1", from))

	got, err := NewHackathonRepository(db).ListDueForReminder(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Spring Hack", got[0].Title)
	assert.Equal(t, "ACM", *got[0].Organizer)
	assert.Nil(t, got[0].Link)
	require.NotNil(t, got[0].SubmissionDeadline)
	assert.True(t, due.Equal(*got[0].SubmissionDeadline))
	assert.True(t, got[0].NotificationsEnabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUpcomingForUser(t *testing.T) {
	db, mock := newMock(t)
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.Add(7 * 24 * time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM hackathons h\s+JOIN team_members m ON m.team_id = h.team_id\s+WHERE m.user_id = \$1`).
		WithArgs("u1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := NewHackathonRepository(db).CountUpcomingForUser(context.Background(), "u1", from, to)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryForAssignee(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	dayStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	periodStart := dayStart.Add(-7 * 24 * time.Hour)

	mock.ExpectQuery(`COUNT\(\*\) FILTER \(WHERE status <> 'done'\),\s+COUNT\(\*\) FILTER \(WHERE status = 'doing'\)`).
		WithArgs("u1", dayStart, dayStart.Add(24*time.Hour), now, periodStart).
		WillReturnRows(sqlmock.NewRows([]string{"open", "doing", "due_today", "overdue", "completed"}).
			AddRow(int64(5), int64(2), int64(1), int64(3), int64(4)))

	s, err := NewTaskRepository(db).SummaryForAssignee(context.Background(), "u1", now, dayStart, periodStart)
	require.NoError(t, err)
	assert.Equal(t, models.TaskSummary{Open: 5, InProgress: 2, DueToday: 1, Overdue: 3, Completed: 4}, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmailSubscribers(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM profiles\s+WHERE notifications_email = TRUE AND email IS NOT NULL AND email <> ''\s+ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "phone", "notifications_email", "notifications_whatsapp"}).
			AddRow("u1", "Ada", "ada@x.io", nil, true, false).
			AddRow("u2", nil, "bo@x.io", "+100", true, true))

	got, err := NewProfileRepository(db).ListEmailSubscribers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ada@x.io", *got[0].Email)
	assert.Nil(t, got[1].FullName)
	assert.True(t, got[1].NotificationsWhatsApp)
	assert.NoError(t, mock.ExpectationsWereMet())
}
