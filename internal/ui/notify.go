package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// notifyTTL is how long a notification stays visible before auto-dismissing.
const notifyTTL = 5 * time.Second

// NotifyLevel selects the notification's rendering style.
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifySuccess
	NotifyError
)

type notification struct {
	id    int
	text  string
	level NotifyLevel
}

// expireAfter produces the dismissal timer for a pushed notification. It is
// a variable so tests can substitute a no-op.
var expireAfter = func(id int) tea.Cmd {
	return tea.Tick(notifyTTL, func(time.Time) tea.Msg {
		return notifyExpiredMsg{id: id}
	})
}

// notifier holds the queue of visible notifications, newest first. Each push
// gets a fresh id so an expiry timer only ever removes the notification it
// was armed for.
type notifier struct {
	items  []notification
	nextID int
}

// Push enqueues a notification and returns the command that removes it after
// [notifyTTL].
func (n *notifier) Push(level NotifyLevel, text string) tea.Cmd {
	n.nextID++
	n.items = append(n.items, notification{id: n.nextID, text: text, level: level})
	return expireAfter(n.nextID)
}

// Expire removes the notification the timer was armed for, if still queued.
func (n *notifier) Expire(msg notifyExpiredMsg) {
	for i, item := range n.items {
		if item.id == msg.id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Dismiss clears the whole queue.
func (n *notifier) Dismiss() {
	n.items = nil
}

// Visible reports whether any notification is queued.
func (n *notifier) Visible() bool {
	return len(n.items) > 0
}

// Latest returns the most recently pushed notification.
func (n *notifier) Latest() (NotifyLevel, string) {
	if len(n.items) == 0 {
		return NotifyInfo, ""
	}
	last := n.items[len(n.items)-1]
	return last.level, last.text
}

// View renders the queued notifications, newest first, or "" when empty.
func (n *notifier) View() string {
	if len(n.items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(n.items))
	for i := len(n.items) - 1; i >= 0; i-- {
		item := n.items[i]
		switch item.level {
		case NotifySuccess:
			lines = append(lines, styles.ok.Render("✓ "+item.text))
		case NotifyError:
			lines = append(lines, styles.err.Render("✗ "+item.text))
		default:
			lines = append(lines, styles.warn.Render("• "+item.text))
		}
	}
	return strings.Join(lines, "\n")
}
