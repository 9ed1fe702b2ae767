package templates

import (
	"fmt"
	"html"
	"strings"
	"time"
)

const dateLayout = "Mon, Jan 2 2006 15:04 MST"

func esc(s string) string { return html.EscapeString(s) }

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "—"
	}
	if loc != nil {
		return t.In(loc).Format(dateLayout)
	}
	return t.Format(dateLayout)
}

func badge(u Urgency) string {
	return fmt.Sprintf(
		`<span style="display:inline-block;padding:4px 10px;border-radius:999px;background:%s;color:#fff;font-size:12px;font-weight:700;">%s</span>`,
		u.Color, esc(u.Label))
}

func button(href, label string) string {
	return fmt.Sprintf(
		`<a href="%s" style="display:inline-block;padding:10px 18px;background:#111827;color:#fff;border-radius:6px;text-decoration:none;">%s</a>`,
		esc(href), esc(label))
}

func row(label, value string) string {
	return fmt.Sprintf(`<tr><td style="padding:4px 12px 4px 0;color:#6b7280;">%s</td><td style="padding:4px 0;">%s</td></tr>`,
		esc(label), value)
}

// page wraps body content in the shared shell. body must already be escaped.
func page(heading, accent string, body ...string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body style="margin:0;background:#f3f4f6;font-family:Arial,Helvetica,sans-serif;">`)
	b.WriteString(`<div style="max-width:560px;margin:24px auto;background:#fff;border-radius:8px;overflow:hidden;">`)
	fmt.Fprintf(&b, `<div style="height:6px;background:%s;"></div>`, accent)
	fmt.Fprintf(&b, `<div style="padding:24px;"><h2 style="margin:0 0 16px;color:#111827;">%s</h2>`, esc(heading))
	for _, part := range body {
		b.WriteString(part)
	}
	b.WriteString(`</div><div style="padding:12px 24px;background:#f9fafb;color:#9ca3af;font-size:12px;">`)
	b.WriteString(`You are receiving this because email notifications are enabled in your HackTrack settings.`)
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

func link(appURL, path string) string {
	return strings.TrimRight(appURL, "/") + path
}
