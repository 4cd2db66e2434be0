package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
)

const chartWidth = 30

// analyticsState tracks the selected time range; the payload itself lives in
// the store and is replaced wholesale on every fetch.
type analyticsState struct {
	timeRange string
	loading   bool
}

func newAnalyticsState() analyticsState {
	return analyticsState{timeRange: "30d"}
}

func (m *Model) handleAnalyticsKeys(msg tea.KeyMsg) tea.Cmd {
	a := &m.analytics

	switch msg.String() {
	case "7":
		a.timeRange = "7d"
		return m.fetchAnalytics()
	case "3":
		a.timeRange = "30d"
		return m.fetchAnalytics()
	case "9":
		a.timeRange = "90d"
		return m.fetchAnalytics()
	case "r":
		return m.fetchAnalytics()
	}
	return nil
}

func (m *Model) fetchAnalytics() tea.Cmd {
	m.analytics.loading = true
	timeRange := m.analytics.timeRange
	return func() tea.Msg {
		summary, err := m.backend.Analytics(m.ctx, timeRange)
		return analyticsFetchedMsg{summary: summary, err: err}
	}
}

func (m *Model) onAnalyticsFetched(msg analyticsFetchedMsg) tea.Cmd {
	m.analytics.loading = false
	if msg.err != nil {
		return m.notify.Push(NotifyError, errorText(msg.err, "Failed to load analytics"))
	}
	m.store.ReplaceAnalytics(msg.summary)
	return nil
}

func (m *Model) renderAnalytics() string {
	a := &m.analytics
	summary := m.store.Analytics()

	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("Analytics (%s)", a.timeRange)))
	b.WriteString("\n\n")

	if summary == nil {
		if a.loading {
			b.WriteString(styles.help.Render("Loading..."))
		} else {
			b.WriteString(styles.help.Render("No analytics data"))
		}
		b.WriteString("\n\n")
		b.WriteString(styles.help.Render("7/3/9 range · r refresh"))
		return b.String()
	}

	fmt.Fprintf(&b, "Views: %s   Likes: %s   Shares: %s   Posts: %s\n\n",
		styles.ok.Render(formatter.Abbreviate(summary.Summary.Views)),
		styles.ok.Render(formatter.Abbreviate(summary.Summary.Likes)),
		styles.ok.Render(formatter.Abbreviate(summary.Summary.Shares)),
		styles.ok.Render(formatter.Abbreviate(summary.Summary.Posts)),
	)

	if len(summary.Chart.Labels) > 0 {
		b.WriteString(styles.title.Render("Views"))
		b.WriteString("\n")

		var max float64
		for _, v := range summary.Chart.Views {
			if v > max {
				max = v
			}
		}
		for i, label := range summary.Chart.Labels {
			var value float64
			if i < len(summary.Chart.Views) {
				value = summary.Chart.Views[i]
			}
			fmt.Fprintf(&b, "%-10s %s %s\n", label, formatter.Bar(value, max, chartWidth), formatter.Abbreviate(int64(value)))
		}
		b.WriteString("\n")
	}

	if len(summary.PlatformBreakdown) > 0 {
		b.WriteString(styles.title.Render("Platforms"))
		b.WriteString("\n")

		names := make([]string, 0, len(summary.PlatformBreakdown))
		var max float64
		for name, stats := range summary.PlatformBreakdown {
			names = append(names, name)
			if v := float64(stats.Views); v > max {
				max = v
			}
		}
		sort.Strings(names)

		for _, name := range names {
			stats := summary.PlatformBreakdown[name]
			fmt.Fprintf(&b, "%-10s %s %s views · %.1f%% engagement\n",
				formatter.Platforms([]string{name}),
				formatter.Bar(float64(stats.Views), max, chartWidth),
				formatter.Abbreviate(stats.Views),
				stats.Engagement,
			)
		}
		b.WriteString("\n")
	}

	if len(summary.Insights) > 0 {
		b.WriteString(styles.title.Render("Insights"))
		b.WriteString("\n")
		for _, insight := range summary.Insights {
			fmt.Fprintf(&b, "• %s: %s\n", styles.warn.Render(insight.Title), insight.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.help.Render("7/3/9 range · r refresh"))
	return b.String()
}
