// Package templates renders notification emails. Every function is pure:
// all data comes in through arguments and nothing touches the store.
package templates

import "fmt"

const (
	ColorRed    = "#dc2626"
	ColorOrange = "#ea580c"
	ColorGreen  = "#16a34a"
)

// Email is a rendered message.
type Email struct {
	Subject string
	HTML    string
}

type Urgency struct {
	Label string
	Color string
}

type hourTier struct {
	maxHours float64
	urgency  Urgency
}

// Evaluated top to bottom; the first tier whose bound is not exceeded wins.
var taskTiers = []hourTier{
	{0, Urgency{"OVERDUE", ColorRed}},
	{2, Urgency{"URGENT", ColorRed}},
	{24, Urgency{"DUE SOON", ColorOrange}},
}

var taskDefault = Urgency{"UPCOMING", ColorGreen}

// TaskUrgency maps hours until a task deadline to a label and color.
func TaskUrgency(hoursUntil float64) Urgency {
	for _, t := range taskTiers {
		if hoursUntil <= t.maxHours {
			return t.urgency
		}
	}
	return taskDefault
}

type dayTier struct {
	maxDays float64
	urgency Urgency
}

var hackathonTiers = []dayTier{
	{0, Urgency{"TODAY", ColorRed}},
	{1, Urgency{"TOMORROW", ColorRed}},
	{3, Urgency{"THIS WEEK", ColorOrange}},
}

var hackathonDefault = Urgency{"UPCOMING", ColorGreen}

// HackathonUrgency maps days until a hackathon deadline to a label and color.
func HackathonUrgency(daysUntil float64) Urgency {
	for _, t := range hackathonTiers {
		if daysUntil <= t.maxDays {
			return t.urgency
		}
	}
	return hackathonDefault
}

// HumanizeHours renders a signed hour offset as "in 3 hours" / "2 hours ago".
func HumanizeHours(hoursUntil float64) string {
	abs := hoursUntil
	if abs < 0 {
		abs = -abs
	}
	var span string
	switch {
	case abs < 1:
		mins := int(abs * 60)
		if mins <= 1 {
			span = "1 minute"
		} else {
			span = fmt.Sprintf("%d minutes", mins)
		}
	case abs < 2:
		span = "1 hour"
	default:
		span = fmt.Sprintf("%d hours", int(abs))
	}
	if hoursUntil < 0 {
		return span + " ago"
	}
	return "in " + span
}
