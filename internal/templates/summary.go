package templates

import (
	"fmt"
	"strconv"
	"time"

	"hacktrack/internal/models"
)

type SummaryData struct {
	RecipientName string
	Stats         models.TaskSummary
	Date          time.Time
	AppURL        string
}

func statRow(label string, n int, color string) string {
	return row(label, fmt.Sprintf(`<strong style="color:%s;">%s</strong>`, color, strconv.Itoa(n)))
}

func summaryAccent(s models.TaskSummary) string {
	switch {
	case s.Overdue > 0:
		return ColorRed
	case s.DueToday > 0:
		return ColorOrange
	}
	return ColorGreen
}

func DailySummary(d SummaryData) Email {
	s := d.Stats
	body := page("Your daily summary", summaryAccent(s),
		fmt.Sprintf(`<p>Hi %s, here is where things stand today.</p>`, esc(d.RecipientName)),
		`<table style="margin:12px 0;">`,
		statRow("Due today", s.DueToday, ColorOrange),
		statRow("Overdue", s.Overdue, ColorRed),
		statRow("In progress", s.InProgress, "#2563eb"),
		statRow("Open tasks", s.Open, "#111827"),
		statRow("Completed since yesterday", s.Completed, ColorGreen),
		statRow("Hackathon deadlines this week", s.UpcomingHackathons, "#7c3aed"),
		`</table>`,
		button(link(d.AppURL, "/dashboard"), "Open dashboard"),
	)
	return Email{
		Subject: fmt.Sprintf("☀️ Daily summary for %s: %d due today, %d overdue",
			d.Date.Format("Jan 2"), s.DueToday, s.Overdue),
		HTML: body,
	}
}

func WeeklySummary(d SummaryData) Email {
	s := d.Stats
	body := page("Your weekly summary", summaryAccent(s),
		fmt.Sprintf(`<p>Hi %s, here is your week in review.</p>`, esc(d.RecipientName)),
		`<table style="margin:12px 0;">`,
		statRow("Completed this week", s.Completed, ColorGreen),
		statRow("Still open", s.Open, "#111827"),
		statRow("In progress", s.InProgress, "#2563eb"),
		statRow("Overdue", s.Overdue, ColorRed),
		statRow("Hackathon deadlines next 7 days", s.UpcomingHackathons, "#7c3aed"),
		`</table>`,
		button(link(d.AppURL, "/dashboard"), "Plan the week"),
	)
	return Email{
		Subject: fmt.Sprintf("📊 Weekly summary: %d completed, %d still open", s.Completed, s.Open),
		HTML:    body,
	}
}
