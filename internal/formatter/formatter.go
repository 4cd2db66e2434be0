// package formatter renders numbers, timestamps, and list fragments for the
// dashboard views and the CLI's plain output.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
)

// Abbreviate shortens large counters the way the dashboard displays them:
// values under 1000 as-is, thousands with a K suffix, millions with an M
// suffix, one decimal place with trailing zeros dropped.
func Abbreviate(n int64) string {
	switch {
	case n < 0:
		return "-" + Abbreviate(-n)
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return trimDecimal(float64(n)/1_000) + "K"
	default:
		return trimDecimal(float64(n)/1_000_000) + "M"
	}
}

func trimDecimal(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

// FileSize renders a byte count in IEC units ("12 MiB").
func FileSize(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(bytes))
}

// Hashtags joins a tag list into a single display line, ensuring each tag
// carries its # prefix.
func Hashtags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	out := make([]string, len(tags))
	for i, tag := range tags {
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		out[i] = tag
	}
	return strings.Join(out, " ")
}

// ScheduleTime formats a scheduled post's timestamp for listing. Unparseable
// timestamps fall back to the raw string rather than hiding the post.
func ScheduleTime(p models.ScheduledPost) string {
	when, ok := p.When()
	if !ok {
		return p.ScheduleTime
	}
	return when.Format("Mon, Jan 2 2006 at 15:04")
}

// RelativeTime renders a timestamp relative to now ("2 hours ago").
func RelativeTime(t time.Time) string {
	return humanize.Time(t)
}

// Platforms joins platform names for display ("YouTube, TikTok").
func Platforms(names []string) string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if p, err := models.ParsePlatform(name); err == nil {
			out = append(out, p.Display())
			continue
		}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}

// Bar renders a horizontal bar of the given width, filled proportionally to
// value/max. Used for the terminal analytics chart.
func Bar(value, max float64, width int) string {
	if width <= 0 {
		return ""
	}
	if max <= 0 || value <= 0 {
		return strings.Repeat("░", width)
	}
	filled := int(value / max * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Score renders a viral score with its band label.
func Score(score int) string {
	var band string
	switch {
	case score >= 80:
		band = "high"
	case score >= 50:
		band = "medium"
	default:
		band = "low"
	}
	return fmt.Sprintf("%d/100 (%s)", score, band)
}
