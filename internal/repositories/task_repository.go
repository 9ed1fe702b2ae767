package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"hacktrack/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id string) (*models.Task, error)
	FindWithPeople(ctx context.Context, id string) (*models.TaskWithPeople, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error

	UpdateStatus(ctx context.Context, id string, to models.TaskStatus) error
	UpdateAssignee(ctx context.Context, id string, assigneeID *string) error

	// ListReminderCandidates returns open, assigned tasks whose deadline is in [from, to).
	ListReminderCandidates(ctx context.Context, from, to time.Time) ([]models.ReminderCandidate, error)
	SummaryForAssignee(ctx context.Context, userID string, now, dayStart, periodStart time.Time) (models.TaskSummary, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `t.id, t.title, t.description, t.assigned_to, t.deadline, t.priority, t.status,
       t.team_id, t.created_by, t.created_at, t.updated_at`

func scanTask(s rowScanner, t *models.Task, extra ...any) error {
	dest := []any{
		&t.ID, &t.Title, &t.Description, &t.AssignedTo, &t.Deadline, &t.Priority, &t.Status,
		&t.TeamID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	}
	return s.Scan(append(dest, extra...)...)
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			id, title, description, assigned_to, deadline, priority, status,
			team_id, created_by, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.AssignedTo, task.Deadline,
		task.Priority, task.Status, task.TeamID, task.CreatedBy,
		task.CreatedAt, task.UpdatedAt,
	)
	return err
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1`
	task := &models.Task{}
	if err := scanTask(r.db.QueryRowContext(ctx, query, id), task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindWithPeople(ctx context.Context, id string) (*models.TaskWithPeople, error) {
	query := `SELECT ` + taskColumns + `,
       a.id, a.full_name, a.email, a.phone, a.notifications_email, a.notifications_whatsapp,
       c.id, c.full_name, c.email, c.phone, c.notifications_email, c.notifications_whatsapp
FROM tasks t
LEFT JOIN profiles a ON a.id = t.assigned_to
LEFT JOIN profiles c ON c.id = t.created_by
WHERE t.id = $1`

	var (
		out      models.TaskWithPeople
		assignee nullableProfile
		creator  nullableProfile
	)
	err := scanTask(r.db.QueryRowContext(ctx, query, id), &out.Task,
		append(assignee.dest(), creator.dest()...)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out.Assignee = assignee.profile()
	out.Creator = creator.profile()
	return &out, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks t`

	conditions := []string{}
	args := []any{}
	argID := 1

	if filter.TeamID != "" {
		conditions = append(conditions, fmt.Sprintf("t.team_id = $%d", argID))
		args = append(args, filter.TeamID)
		argID++
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("t.assigned_to = $%d", argID))
		args = append(args, *filter.AssignedTo)
		argID++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY t.deadline ASC NULLS LAST, t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, assigned_to=$3, deadline=$4,
			priority=$5, status=$6, updated_at=$7
		WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.AssignedTo, task.Deadline,
		task.Priority, task.Status, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, to models.TaskStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2`, to, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *taskRepository) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET assigned_to=$1, updated_at=NOW() WHERE id=$2`, assigneeID, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *taskRepository) ListReminderCandidates(ctx context.Context, from, to time.Time) ([]models.ReminderCandidate, error) {
	q := `
SELECT ` + taskColumns + `,
       p.id, p.full_name, p.email, p.phone, p.notifications_email, p.notifications_whatsapp
FROM tasks t
JOIN profiles p ON p.id = t.assigned_to
WHERE t.status <> 'done'
  AND t.assigned_to IS NOT NULL
  AND t.deadline IS NOT NULL
  AND t.deadline >= $1
  AND t.deadline < $2
ORDER BY t.deadline ASC`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ReminderCandidate
	for rows.Next() {
		var c models.ReminderCandidate
		if err := scanTask(rows, &c.Task, profileDest(&c.Assignee)...); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *taskRepository) SummaryForAssignee(ctx context.Context, userID string, now, dayStart, periodStart time.Time) (models.TaskSummary, error) {
	q := `
SELECT
  COUNT(*) FILTER (WHERE status <> 'done'),
  COUNT(*) FILTER (WHERE status = 'doing'),
  COUNT(*) FILTER (WHERE status <> 'done' AND deadline >= $2 AND deadline < $3),
  COUNT(*) FILTER (WHERE status <> 'done' AND deadline < $4),
  COUNT(*) FILTER (WHERE status = 'done' AND updated_at >= $5)
FROM tasks
WHERE assigned_to = $1`
	var s models.TaskSummary
	err := r.db.QueryRowContext(ctx, q, userID, dayStart, dayStart.Add(24*time.Hour), now, periodStart).
		Scan(&s.Open, &s.InProgress, &s.DueToday, &s.Overdue, &s.Completed)
	return s, err
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
