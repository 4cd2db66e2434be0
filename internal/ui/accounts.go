package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
)

// accountsState renders the per-platform connection list and the credential
// form opened on a selected platform.
type accountsState struct {
	cursor   int
	statuses map[models.Platform]models.AccountStatus

	editing  bool
	platform models.Platform
	fields   []textinput.Model
	fieldIdx int
	busy     bool
}

func newAccountsState() accountsState {
	return accountsState{}
}

func (a *accountsState) typing() bool {
	return a.editing
}

// openForm builds the credential inputs for a platform's connect form.
func (a *accountsState) openForm(platform models.Platform) {
	a.editing = true
	a.platform = platform
	a.fieldIdx = 0
	a.fields = nil

	for i, field := range platform.CredentialFields() {
		input := newTextInput()
		input.Placeholder = field.Label
		if field.Secret {
			input.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			input.Focus()
		}
		a.fields = append(a.fields, input)
	}
}

func (a *accountsState) closeForm() {
	a.editing = false
	a.fields = nil
}

func (a *accountsState) focusField(idx int) {
	if idx < 0 || idx >= len(a.fields) {
		return
	}
	a.fields[a.fieldIdx].Blur()
	a.fieldIdx = idx
	a.fields[a.fieldIdx].Focus()
}

// credentials collects the form values keyed by the platform's field keys.
func (a *accountsState) credentials() map[string]string {
	fields := a.platform.CredentialFields()
	creds := make(map[string]string, len(fields))
	for i, field := range fields {
		if i < len(a.fields) {
			creds[field.Key] = strings.TrimSpace(a.fields[i].Value())
		}
	}
	return creds
}

func (m *Model) handleAccountsKeys(msg tea.KeyMsg) tea.Cmd {
	a := &m.accounts

	if a.editing {
		switch msg.String() {
		case "esc":
			a.closeForm()
			return nil
		case "up":
			a.focusField(a.fieldIdx - 1)
			return nil
		case "down":
			a.focusField(a.fieldIdx + 1)
			return nil
		case "enter":
			if a.fieldIdx < len(a.fields)-1 {
				a.focusField(a.fieldIdx + 1)
				return nil
			}
			return m.submitConnect()
		}
		return m.updateAccountsInputs(msg)
	}

	platforms := models.AllPlatforms()
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(platforms)-1 {
			a.cursor++
		}
	case "enter":
		a.openForm(platforms[a.cursor])
	case "o":
		if platforms[a.cursor] == models.YouTube {
			return m.startOAuth(models.YouTube)
		}
		return m.notify.Push(NotifyInfo, "OAuth is only available for YouTube")
	case "r":
		return m.fetchStatus()
	}
	return nil
}

func (m *Model) updateAccountsInputs(msg tea.Msg) tea.Cmd {
	a := &m.accounts
	if !a.editing || a.fieldIdx >= len(a.fields) {
		return nil
	}
	var cmd tea.Cmd
	a.fields[a.fieldIdx], cmd = a.fields[a.fieldIdx].Update(msg)
	return cmd
}

// submitConnect posts the credentials. The result's success flag decides the
// notification; a false flag surfaces the server's message verbatim.
func (m *Model) submitConnect() tea.Cmd {
	a := &m.accounts
	if a.busy {
		return nil
	}
	a.busy = true

	platform := a.platform
	creds := a.credentials()
	return func() tea.Msg {
		result, err := m.backend.Connect(m.ctx, platform, creds)
		return connectDoneMsg{platform: platform, result: result, err: err}
	}
}

func (m *Model) onConnectDone(msg connectDoneMsg) tea.Cmd {
	a := &m.accounts
	a.busy = false

	if msg.err != nil {
		return m.notify.Push(NotifyError, errorText(msg.err, "Connection failed"))
	}
	if !msg.result.Success {
		text := msg.result.Message
		if text == "" {
			text = "Connection rejected"
		}
		return m.notify.Push(NotifyError, text)
	}

	a.closeForm()
	// Re-fetch rather than assuming: the status endpoint is the source of truth.
	return tea.Batch(
		m.notify.Push(NotifySuccess, fmt.Sprintf("%s connected", msg.platform.Display())),
		m.fetchStatus(),
	)
}

// startOAuth fetches the authorization URL and opens the browser. The token
// exchange happens entirely server-side; afterwards the user refreshes.
func (m *Model) startOAuth(platform models.Platform) tea.Cmd {
	return func() tea.Msg {
		authURL, err := m.backend.StartOAuth(m.ctx, platform)
		return oauthStartedMsg{platform: platform, authURL: authURL, err: err}
	}
}

func (m *Model) onOAuthStarted(msg oauthStartedMsg) tea.Cmd {
	if msg.err != nil {
		return m.notify.Push(NotifyError, errorText(msg.err, "Could not start authorization"))
	}
	if err := m.openBrowser(msg.authURL); err != nil {
		return m.notify.Push(NotifyError, fmt.Sprintf("Open this URL to authorize: %s", msg.authURL))
	}
	return m.notify.Push(NotifyInfo, "Authorize in the browser, then press r to refresh")
}

func (m *Model) renderAccounts() string {
	a := &m.accounts

	var b strings.Builder
	b.WriteString(styles.title.Render("Connected Accounts"))
	b.WriteString("\n\n")

	if a.editing {
		fmt.Fprintf(&b, "Connect %s\n\n", a.platform.Display())
		fields := a.platform.CredentialFields()
		for i, input := range a.fields {
			marker := "  "
			if i == a.fieldIdx {
				marker = styles.active.Render("> ")
			}
			fmt.Fprintf(&b, "%s%s: %s\n", marker, fields[i].Label, input.View())
		}
		b.WriteString("\n")
		if a.busy {
			b.WriteString(styles.warn.Render("Connecting..."))
			b.WriteString("\n")
		}
		b.WriteString(styles.help.Render("enter next/connect · esc cancel"))
		return b.String()
	}

	for i, p := range models.AllPlatforms() {
		marker := "  "
		if i == a.cursor {
			marker = styles.active.Render("> ")
		}

		badge := styles.err.Render("✗ disconnected")
		if st, ok := a.statuses[p]; ok && st.Connected {
			badge = styles.ok.Render("✓ connected")
		}
		fmt.Fprintf(&b, "%s%-10s %s\n", marker, p.Display(), badge)
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter credentials · o OAuth (YouTube) · r refresh"))
	return b.String()
}
