package models

import "time"

type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)

const ChannelEmail = "email"

// Notification types used as dedup keys in the log.
const (
	TypeTaskAssigned  = "task_assigned"
	TypeTask24h       = "task_24h"
	TypeTask2h        = "task_2h"
	TypeTaskOverdue   = "task_overdue"
	TypeHackathon7d   = "hackathon_7d"
	TypeHackathon3d   = "hackathon_3d"
	TypeHackathon1d   = "hackathon_1d"
	TypeDailySummary  = "daily_summary"
	TypeWeeklySummary = "weekly_summary"
)

// NotificationLog is an append-only delivery record.
type NotificationLog struct {
	ID               int64              `json:"id"`
	UserID           string             `json:"user_id"`
	NotificationType string             `json:"notification_type"`
	Channel          string             `json:"channel"`
	Status           NotificationStatus `json:"status"`
	Metadata         map[string]any     `json:"metadata,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}
