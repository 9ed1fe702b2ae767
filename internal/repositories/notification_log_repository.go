package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"hacktrack/internal/models"
)

// NotificationLogRepository is append-only: there is no update or delete.
type NotificationLogRepository interface {
	Insert(ctx context.Context, entry *models.NotificationLog) error
	// ExistsSince reports whether a row with the given status exists for
	// (user, type) created at or after since.
	ExistsSince(ctx context.Context, userID, notificationType string, status models.NotificationStatus, since time.Time) (bool, error)
}

type notificationLogRepository struct {
	db *sql.DB
}

func NewNotificationLogRepository(db *sql.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

func (r *notificationLogRepository) Insert(ctx context.Context, entry *models.NotificationLog) error {
	var meta any
	if len(entry.Metadata) > 0 {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		meta = string(b)
	}
	q := `
		INSERT INTO notification_logs (user_id, notification_type, channel, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		entry.UserID, entry.NotificationType, entry.Channel, entry.Status, meta,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *notificationLogRepository) ExistsSince(ctx context.Context, userID, notificationType string, status models.NotificationStatus, since time.Time) (bool, error) {
	q := `
SELECT EXISTS (
  SELECT 1 FROM notification_logs
  WHERE user_id = $1 AND notification_type = $2 AND status = $3 AND created_at >= $4
)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, userID, notificationType, status, since).Scan(&exists)
	return exists, err
}
