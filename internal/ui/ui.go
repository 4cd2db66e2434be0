package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
	"github.com/wilkerbruno/videos-automacoes/internal/state"
)

// cursorMode is applied to every text input at construction. Tests switch it
// to a static cursor so a synchronous driver never receives blink commands.
var cursorMode = cursor.CursorBlink

// newTextInput builds a text input with the dashboard's cursor settings.
func newTextInput() textinput.Model {
	input := textinput.New()
	input.Cursor.SetMode(cursorMode)
	return input
}

// Model represents the dashboard application state.
type Model struct {
	ctx     context.Context
	backend Backend
	store   *state.Store

	width  int
	height int
	help   help.Model
	keys   keyMap
	notify notifier

	upload    uploadState
	accounts  accountsState
	schedule  scheduleState
	analytics analyticsState
	modal     modalState

	maxFileBytes int64
	openBrowser  func(string) error
}

// NewModel creates a new dashboard model with the provided dependencies.
func NewModel(ctx context.Context, backend Backend, store *state.Store) *Model {
	if store == nil {
		store = state.NewStore()
	}
	return &Model{
		ctx:          ctx,
		backend:      backend,
		store:        store,
		help:         help.New(),
		keys:         newKeyMap(),
		upload:       newUploadState(),
		accounts:     newAccountsState(),
		schedule:     newScheduleState(),
		analytics:    newAnalyticsState(),
		maxFileBytes: shared.MaxVideoBytes,
		openBrowser:  shared.OpenBrowser,
	}
}

// SetMaxFileBytes overrides the per-file upload limit from configuration.
func (m *Model) SetMaxFileBytes(n int64) {
	if n > 0 {
		m.maxFileBytes = n
	}
}

// Init fetches account status first so the upload form knows which platform
// toggles to enable.
func (m *Model) Init() tea.Cmd {
	return m.fetchStatus()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case notifyExpiredMsg:
		m.notify.Expire(msg)
		return m, nil

	case statusFetchedMsg:
		return m, m.onStatusFetched(msg)

	case connectDoneMsg:
		return m, m.onConnectDone(msg)

	case oauthStartedMsg:
		return m, m.onOAuthStarted(msg)

	case scheduleFetchedMsg:
		return m, m.onScheduleFetched(msg)

	case cancelDoneMsg:
		return m, m.onCancelDone(msg)

	case analyticsFetchedMsg:
		return m, m.onAnalyticsFetched(msg)

	case contentGeneratedMsg:
		return m, m.onContentGenerated(msg)

	case analysisDoneMsg:
		return m, m.onAnalysisDone(msg)

	case templatesFetchedMsg:
		return m, m.onTemplatesFetched(msg)

	case uploadDoneMsg:
		return m, m.onUploadDone(msg)
	}

	return m, m.updateInputs(msg)
}

// handleKeys routes keystrokes: modals first, then global section switching,
// then the active section.
func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal.kind != modalNone {
		return m, m.handleModalKeys(msg)
	}

	if m.typing() {
		// Text inputs swallow everything except esc and section switching.
		switch msg.String() {
		case "esc", "tab", "shift+tab":
		default:
			return m, m.handleSectionKeys(msg)
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if !m.typing() {
			return m, tea.Quit
		}
	case "tab":
		return m, m.switchSection(1)
	case "shift+tab":
		return m, m.switchSection(-1)
	}

	return m, m.handleSectionKeys(msg)
}

// typing reports whether a focused text input should capture plain keys.
func (m *Model) typing() bool {
	switch m.store.Section() {
	case state.SectionUpload:
		return m.upload.typing()
	case state.SectionAccounts:
		return m.accounts.typing()
	}
	return false
}

// switchSection activates the section offset steps away and issues its fetch.
// Navigation always re-fetches; cached data is only a placeholder until the
// response lands.
func (m *Model) switchSection(offset int) tea.Cmd {
	sections := state.Sections()
	current := 0
	for i, s := range sections {
		if s == m.store.Section() {
			current = i
			break
		}
	}
	next := sections[(current+offset+len(sections))%len(sections)]
	return m.enterSection(next)
}

// enterSection activates a section and returns its entry fetch command.
func (m *Model) enterSection(section state.Section) tea.Cmd {
	m.store.SetSection(section)
	m.notify.Dismiss()

	switch section {
	case state.SectionUpload:
		return m.fetchStatus()
	case state.SectionAccounts:
		return m.fetchStatus()
	case state.SectionSchedule:
		return m.fetchSchedule()
	case state.SectionAnalytics:
		return m.fetchAnalytics()
	}
	return nil
}

func (m *Model) handleSectionKeys(msg tea.KeyMsg) tea.Cmd {
	switch m.store.Section() {
	case state.SectionUpload:
		return m.handleUploadKeys(msg)
	case state.SectionAccounts:
		return m.handleAccountsKeys(msg)
	case state.SectionSchedule:
		return m.handleScheduleKeys(msg)
	case state.SectionAnalytics:
		return m.handleAnalyticsKeys(msg)
	}
	return nil
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	switch m.store.Section() {
	case state.SectionUpload:
		return m.updateUploadInputs(msg)
	case state.SectionAccounts:
		return m.updateAccountsInputs(msg)
	}
	return nil
}

// View renders the active section under a tab bar, with the notification
// line and contextual help at the bottom.
func (m *Model) View() string {
	var body string
	if m.modal.kind != modalNone {
		body = m.renderModal()
	} else {
		switch m.store.Section() {
		case state.SectionUpload:
			body = m.renderUpload()
		case state.SectionAccounts:
			body = m.renderAccounts()
		case state.SectionSchedule:
			body = m.renderSchedule()
		case state.SectionAnalytics:
			body = m.renderAnalytics()
		}
	}

	parts := []string{m.renderTabs(), body}
	if note := m.notify.View(); note != "" {
		parts = append(parts, note)
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderTabs() string {
	labels := map[state.Section]string{
		state.SectionUpload:    "Upload",
		state.SectionAccounts:  "Accounts",
		state.SectionSchedule:  "Schedule",
		state.SectionAnalytics: "Analytics",
	}

	var tabs []string
	for _, s := range state.Sections() {
		label := labels[s]
		if s == m.store.Section() {
			tabs = append(tabs, styles.active.Render(label))
		} else {
			tabs = append(tabs, styles.help.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

// fetchStatus loads account connection states and replaces the store's map.
func (m *Model) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		statuses, err := m.backend.Status(m.ctx)
		return statusFetchedMsg{statuses: statuses, err: err}
	}
}

func (m *Model) onStatusFetched(msg statusFetchedMsg) tea.Cmd {
	if msg.err != nil {
		return m.notify.Push(NotifyError, fmt.Sprintf("Failed to load account status: %v", msg.err))
	}
	m.store.ReplaceConnections(msg.statuses)
	m.accounts.statuses = msg.statuses
	return nil
}

// errorText renders a server rejection with its message, or a generic line.
func errorText(err error, fallback string) string {
	if msg := rejectionOrEmpty(err); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s: %v", fallback, err)
}

func rejectionOrEmpty(err error) string {
	if err == nil {
		return ""
	}
	prefix := shared.ErrServerRejected.Error() + ": "
	if s := err.Error(); strings.Contains(s, prefix) {
		return s[strings.Index(s, prefix)+len(prefix):]
	}
	return ""
}

// connectedPlatformSet returns the store's connection map for toggle checks.
func (m *Model) connectedPlatformSet() map[models.Platform]bool {
	set := make(map[models.Platform]bool)
	for _, p := range m.store.ConnectedPlatforms() {
		set[p] = true
	}
	return set
}
