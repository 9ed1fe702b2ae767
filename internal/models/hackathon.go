package models

import "time"

type Hackathon struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Organizer            *string    `json:"organizer,omitempty"`
	Link                 *string    `json:"link,omitempty"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	SubmissionDeadline   *time.Time `json:"submission_deadline,omitempty"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	TeamID               string     `json:"team_id"`
	CreatedAt            time.Time  `json:"created_at"`
}
