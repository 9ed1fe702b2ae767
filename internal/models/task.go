// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusTodo  TaskStatus = "todo"
	StatusDoing TaskStatus = "doing"
	StatusDone  TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task represents a team task row.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	AssignedTo  *string      `json:"assigned_to,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	TeamID      string       `json:"team_id"`
	CreatedBy   *string      `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskWithPeople is a task joined with its assignee and creator profiles.
type TaskWithPeople struct {
	Task
	Assignee *Profile `json:"assignee,omitempty"`
	Creator  *Profile `json:"creator,omitempty"`
}

// ReminderCandidate is an open task with a deadline joined to its assignee.
type ReminderCandidate struct {
	Task     Task
	Assignee Profile
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	TeamID     string
	AssignedTo *string
	Status     *TaskStatus
}

// TaskSummary holds per-assignee counters used by summary emails.
type TaskSummary struct {
	Open               int `json:"open"`
	InProgress         int `json:"in_progress"`
	DueToday           int `json:"due_today"`
	Overdue            int `json:"overdue"`
	Completed          int `json:"completed"`
	UpcomingHackathons int `json:"upcoming_hackathons"`
}

func (s TaskSummary) IsEmpty() bool {
	return s.Open == 0 && s.InProgress == 0 && s.DueToday == 0 &&
		s.Overdue == 0 && s.Completed == 0 && s.UpcomingHackathons == 0
}

func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

func IsValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
