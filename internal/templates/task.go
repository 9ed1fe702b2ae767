package templates

import (
	"fmt"
	"time"

	"hacktrack/internal/models"
)

type TaskAssignedData struct {
	Task         models.Task
	AssigneeName string
	AssignerName string
	AppURL       string
	Location     *time.Location
}

func TaskAssigned(d TaskAssignedData) Email {
	desc := ""
	if d.Task.Description != nil && *d.Task.Description != "" {
		desc = fmt.Sprintf(`<p style="color:#374151;">%s</p>`, esc(*d.Task.Description))
	}
	body := page("New task assigned", ColorGreen,
		fmt.Sprintf(`<p>Hi %s,</p><p>%s assigned you a task:</p>`, esc(d.AssigneeName), esc(d.AssignerName)),
		fmt.Sprintf(`<h3 style="margin:8px 0;">%s</h3>`, esc(d.Task.Title)),
		desc,
		`<table style="margin:12px 0;">`,
		row("Priority", esc(string(d.Task.Priority))),
		row("Status", esc(string(d.Task.Status))),
		row("Deadline", esc(formatTime(d.Task.Deadline, d.Location))),
		`</table>`,
		button(link(d.AppURL, "/tasks"), "Open task board"),
	)
	return Email{
		Subject: fmt.Sprintf("📋 New task assigned: %s", d.Task.Title),
		HTML:    body,
	}
}

type TaskDeadlineData struct {
	Task          models.Task
	RecipientName string
	HoursUntil    float64
	AppURL        string
	Location      *time.Location
}

func TaskDeadline(d TaskDeadlineData) Email {
	u := TaskUrgency(d.HoursUntil)

	var subject, lead string
	if d.HoursUntil < 0 {
		subject = fmt.Sprintf("⚠️ Overdue: %s", d.Task.Title)
		lead = fmt.Sprintf("This task was due %s.", HumanizeHours(d.HoursUntil))
	} else {
		subject = fmt.Sprintf("⏰ Due %s: %s", HumanizeHours(d.HoursUntil), d.Task.Title)
		lead = fmt.Sprintf("This task is due %s.", HumanizeHours(d.HoursUntil))
	}

	body := page("Task deadline reminder", u.Color,
		badge(u),
		fmt.Sprintf(`<p>Hi %s,</p><p>%s</p>`, esc(d.RecipientName), esc(lead)),
		fmt.Sprintf(`<h3 style="margin:8px 0;">%s</h3>`, esc(d.Task.Title)),
		`<table style="margin:12px 0;">`,
		row("Deadline", esc(formatTime(d.Task.Deadline, d.Location))),
		row("Priority", esc(string(d.Task.Priority))),
		row("Status", esc(string(d.Task.Status))),
		`</table>`,
		button(link(d.AppURL, "/tasks"), "View task"),
	)
	return Email{Subject: subject, HTML: body}
}
