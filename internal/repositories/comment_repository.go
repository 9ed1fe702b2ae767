package repositories

import (
	"context"
	"database/sql"

	"hacktrack/internal/models"
)

type CommentRepository interface {
	Store(ctx context.Context, c *models.TaskComment) error
	// ListByTask returns comments oldest first, each with its author.
	ListByTask(ctx context.Context, taskID string) ([]models.TaskComment, error)
}

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Store(ctx context.Context, c *models.TaskComment) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO task_comments (id, task_id, user_id, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at`,
		c.ID, c.TaskID, c.UserID, c.Content,
	).Scan(&c.CreatedAt)
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID string) ([]models.TaskComment, error) {
	q := `
SELECT c.id, c.task_id, c.user_id, c.content, c.created_at,
       p.id, p.full_name, p.email, p.phone, p.notifications_email, p.notifications_whatsapp
FROM task_comments c
LEFT JOIN profiles p ON p.id = c.user_id
WHERE c.task_id = $1
ORDER BY c.created_at ASC`
	rows, err := r.db.QueryContext(ctx, q, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TaskComment{}
	for rows.Next() {
		var (
			c      models.TaskComment
			author nullableProfile
		)
		dest := append([]any{&c.ID, &c.TaskID, &c.UserID, &c.Content, &c.CreatedAt}, author.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		c.User = author.profile()
		out = append(out, c)
	}
	return out, rows.Err()
}
