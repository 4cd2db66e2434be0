package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
)

// scheduleState renders the pending post list with filters and a delete
// confirmation step.
type scheduleState struct {
	cursor     int
	filterIdx  int // 0 = all platforms
	confirming bool
	loading    bool
}

func newScheduleState() scheduleState {
	return scheduleState{}
}

// platformFilter returns the active filter value, "" for all.
func (s *scheduleState) platformFilter() string {
	if s.filterIdx == 0 {
		return ""
	}
	return string(models.AllPlatforms()[s.filterIdx-1])
}

func (m *Model) handleScheduleKeys(msg tea.KeyMsg) tea.Cmd {
	s := &m.schedule
	posts := m.store.ScheduledPosts()

	if s.confirming {
		switch msg.String() {
		case "y":
			s.confirming = false
			if s.cursor < len(posts) {
				return m.cancelScheduled(posts[s.cursor].ID)
			}
		case "n", "esc":
			s.confirming = false
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(posts)-1 {
			s.cursor++
		}
	case "d":
		if len(posts) > 0 {
			s.confirming = true
		}
	case "e":
		return m.notify.Push(NotifyInfo, "Editing scheduled posts is not available yet")
	case "f":
		s.filterIdx = (s.filterIdx + 1) % (len(models.AllPlatforms()) + 1)
		s.cursor = 0
		return m.fetchSchedule()
	case "r":
		return m.fetchSchedule()
	}
	return nil
}

// fetchSchedule reloads the list using the active filter. Every entry into
// the section and every filter change lands here.
func (m *Model) fetchSchedule() tea.Cmd {
	m.schedule.loading = true
	platform := m.schedule.platformFilter()
	return func() tea.Msg {
		posts, err := m.backend.ListScheduled(m.ctx, platform, "")
		return scheduleFetchedMsg{posts: posts, err: err}
	}
}

func (m *Model) onScheduleFetched(msg scheduleFetchedMsg) tea.Cmd {
	s := &m.schedule
	s.loading = false

	if msg.err != nil {
		return m.notify.Push(NotifyError, errorText(msg.err, "Failed to load schedule"))
	}

	m.store.ReplaceScheduledPosts(msg.posts)
	if s.cursor >= len(msg.posts) {
		s.cursor = 0
	}
	return nil
}

// cancelScheduled deletes a post server-side and reloads on success. On
// failure the cached list stays untouched.
func (m *Model) cancelScheduled(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.CancelScheduled(m.ctx, id)
		return cancelDoneMsg{id: id, err: err}
	}
}

func (m *Model) onCancelDone(msg cancelDoneMsg) tea.Cmd {
	if msg.err != nil {
		return m.notify.Push(NotifyError, errorText(msg.err, "Could not cancel post"))
	}
	return tea.Batch(
		m.notify.Push(NotifySuccess, "Scheduled post cancelled"),
		m.fetchSchedule(),
	)
}

func (m *Model) renderSchedule() string {
	s := &m.schedule
	posts := m.store.ScheduledPosts()

	var b strings.Builder
	b.WriteString(styles.title.Render("Scheduled Posts"))
	b.WriteString("\n\n")

	filter := "all platforms"
	if f := s.platformFilter(); f != "" {
		filter = f
	}
	fmt.Fprintf(&b, "Filter: %s\n\n", styles.warn.Render(filter))

	switch {
	case s.loading && len(posts) == 0:
		b.WriteString(styles.help.Render("Loading..."))
		b.WriteString("\n")
	case len(posts) == 0:
		b.WriteString(styles.help.Render("No scheduled posts"))
		b.WriteString("\n")
	default:
		for i, post := range posts {
			marker := "  "
			if i == s.cursor {
				marker = styles.active.Render("> ")
			}
			fmt.Fprintf(&b, "%s%s\n", marker, post.Title)
			fmt.Fprintf(&b, "    %s · %s · %s\n",
				formatter.Platforms(post.Platforms),
				formatter.ScheduleTime(post),
				post.Status,
			)
		}
	}

	if s.confirming && s.cursor < len(posts) {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render(fmt.Sprintf("Cancel '%s'? (y/n)", posts[s.cursor].Title)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("d cancel · e edit · f filter · r refresh"))
	return b.String()
}
