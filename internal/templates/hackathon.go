package templates

import (
	"fmt"
	"time"

	"hacktrack/internal/models"
)

type HackathonDeadlineData struct {
	Hackathon     models.Hackathon
	RecipientName string
	// DeadlineLabel names which deadline is approaching, e.g. "Submission".
	DeadlineLabel string
	Deadline      time.Time
	DaysUntil     float64
	AppURL        string
	Location      *time.Location
}

func HackathonDeadline(d HackathonDeadlineData) Email {
	u := HackathonUrgency(d.DaysUntil)

	var when string
	switch days := int(d.DaysUntil); {
	case d.DaysUntil <= 0:
		when = "today"
	case days <= 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", days)
	}

	rows := []string{`<table style="margin:12px 0;">`,
		row(d.DeadlineLabel+" deadline", esc(formatTime(&d.Deadline, d.Location)))}
	if d.Hackathon.Organizer != nil && *d.Hackathon.Organizer != "" {
		rows = append(rows, row("Organizer", esc(*d.Hackathon.Organizer)))
	}
	if d.Hackathon.Link != nil && *d.Hackathon.Link != "" {
		rows = append(rows, row("Link", fmt.Sprintf(`<a href="%s">%s</a>`, esc(*d.Hackathon.Link), esc(*d.Hackathon.Link))))
	}
	rows = append(rows, `</table>`)

	parts := []string{
		badge(u),
		fmt.Sprintf(`<p>Hi %s,</p><p>The %s deadline for <strong>%s</strong> is %s.</p>`,
			esc(d.RecipientName), esc(d.DeadlineLabel), esc(d.Hackathon.Title), esc(when)),
	}
	parts = append(parts, rows...)
	parts = append(parts, button(link(d.AppURL, "/hackathons"), "View hackathon"))

	return Email{
		Subject: fmt.Sprintf("🏁 %s deadline %s: %s", d.DeadlineLabel, when, d.Hackathon.Title),
		HTML:    page("Hackathon deadline", u.Color, parts...),
	}
}
