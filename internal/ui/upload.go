package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/services"
	"github.com/wilkerbruno/videos-automacoes/internal/shared"
)

// Upload form focus rows, in navigation order.
const (
	uploadFocusFile = iota
	uploadFocusTitle
	uploadFocusCategory
	uploadFocusSchedule
	uploadFocusPlatforms // one row per platform follows
	uploadFocusGenerate  = uploadFocusPlatforms + 4
	uploadFocusSubmit    = uploadFocusGenerate + 1
)

// uploadState holds the upload form. The busy flag disables every submit and
// generate trigger while a request is in flight, so double activation cannot
// produce duplicate posts.
type uploadState struct {
	focus         int
	fileInput     textinput.Model
	titleInput    textinput.Model
	categoryInput textinput.Model
	scheduleInput textinput.Model
	descInput     textinput.Model
	editingDesc   bool
	platforms     map[models.Platform]bool
	generate      bool
	busy          bool
}

func newUploadState() uploadState {
	file := newTextInput()
	file.Placeholder = "path/to/video.mp4"
	file.Focus()

	title := newTextInput()
	title.Placeholder = "Post title"

	category := newTextInput()
	category.Placeholder = "entertainment"

	schedule := newTextInput()
	schedule.Placeholder = "2026-01-15T10:00 (empty = post now)"

	desc := newTextInput()
	desc.Placeholder = "Description"

	return uploadState{
		fileInput:     file,
		titleInput:    title,
		categoryInput: category,
		scheduleInput: schedule,
		descInput:     desc,
		platforms:     make(map[models.Platform]bool),
	}
}

// typing reports whether a text input currently captures plain keys.
func (u *uploadState) typing() bool {
	if u.editingDesc {
		return true
	}
	switch u.focus {
	case uploadFocusFile, uploadFocusTitle, uploadFocusCategory, uploadFocusSchedule:
		return true
	}
	return false
}

// focusedInput returns the text input for the current focus row, or nil.
func (u *uploadState) focusedInput() *textinput.Model {
	if u.editingDesc {
		return &u.descInput
	}
	switch u.focus {
	case uploadFocusFile:
		return &u.fileInput
	case uploadFocusTitle:
		return &u.titleInput
	case uploadFocusCategory:
		return &u.categoryInput
	case uploadFocusSchedule:
		return &u.scheduleInput
	}
	return nil
}

func (u *uploadState) setFocus(focus int) {
	if focus < uploadFocusFile {
		focus = uploadFocusSubmit
	}
	if focus > uploadFocusSubmit {
		focus = uploadFocusFile
	}
	u.focus = focus

	for _, input := range []*textinput.Model{&u.fileInput, &u.titleInput, &u.categoryInput, &u.scheduleInput} {
		input.Blur()
	}
	if input := u.focusedInput(); input != nil {
		input.Focus()
	}
}

// selectedPlatforms returns the toggled platforms in canonical order.
func (u *uploadState) selectedPlatforms() []models.Platform {
	var out []models.Platform
	for _, p := range models.AllPlatforms() {
		if u.platforms[p] {
			out = append(out, p)
		}
	}
	return out
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) tea.Cmd {
	u := &m.upload

	if u.editingDesc {
		switch msg.String() {
		case "enter", "esc":
			u.editingDesc = false
			u.descInput.Blur()
			if msg.String() == "enter" {
				if content := m.store.PendingContent(); content != nil {
					content.Description = u.descInput.Value()
					m.store.SetPendingContent(content)
				}
			}
			return nil
		}
		var cmd tea.Cmd
		u.descInput, cmd = u.descInput.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up":
		u.setFocus(u.focus - 1)
		return nil
	case "down":
		u.setFocus(u.focus + 1)
		return nil
	case "enter":
		return m.handleUploadEnter()
	case "esc":
		if u.typing() {
			u.setFocus(uploadFocusSubmit)
			return nil
		}
	}

	if !u.typing() {
		switch msg.String() {
		case " ":
			if u.focus >= uploadFocusPlatforms && u.focus < uploadFocusGenerate {
				platform := models.AllPlatforms()[u.focus-uploadFocusPlatforms]
				u.platforms[platform] = !u.platforms[platform]
			} else if u.focus == uploadFocusGenerate {
				u.generate = !u.generate
			}
			return nil
		case "g":
			return m.generatePreview()
		case "e":
			if content := m.store.PendingContent(); content != nil {
				u.editingDesc = true
				u.descInput.SetValue(content.Description)
				u.descInput.Focus()
			}
			return nil
		case "a":
			return m.openAnalyzer()
		case "t":
			return m.openTemplates()
		case "x":
			m.store.ClearFiles()
			return nil
		}
		return nil
	}

	return m.updateUploadInputs(msg)
}

func (m *Model) updateUploadInputs(msg tea.Msg) tea.Cmd {
	if input := m.upload.focusedInput(); input != nil {
		var cmd tea.Cmd
		*input, cmd = input.Update(msg)
		return cmd
	}
	return nil
}

// handleUploadEnter activates the focused row: add a file, or submit.
func (m *Model) handleUploadEnter() tea.Cmd {
	u := &m.upload

	switch u.focus {
	case uploadFocusFile:
		return m.addFile(strings.TrimSpace(u.fileInput.Value()))
	case uploadFocusSubmit:
		return m.submitUpload()
	default:
		u.setFocus(u.focus + 1)
	}
	return nil
}

// addFile verifies the file locally before it ever joins the queue; rejected
// files produce a notification and change nothing else.
func (m *Model) addFile(path string) tea.Cmd {
	if path == "" {
		return nil
	}

	info, err := shared.VerifyVideoFile(path, m.maxFileBytes)
	if err != nil {
		return m.notify.Push(NotifyError, fmt.Sprintf("File rejected: %v", err))
	}

	m.store.AddFile(models.FileRef{
		Name: info.Name,
		Path: info.Path,
		Size: info.Size,
		MIME: info.MIME,
	})
	m.upload.fileInput.SetValue("")
	return m.notify.Push(NotifySuccess, fmt.Sprintf("Added %s (%s)", info.Name, formatter.FileSize(info.Size)))
}

// generatePreview requests AI content for the current form values.
func (m *Model) generatePreview() tea.Cmd {
	u := &m.upload
	if u.busy {
		return nil
	}

	title := strings.TrimSpace(u.titleInput.Value())
	platforms := u.selectedPlatforms()
	if title == "" {
		return m.notify.Push(NotifyError, "Enter a title before generating content")
	}
	if len(platforms) == 0 {
		return m.notify.Push(NotifyError, "Select at least one platform")
	}

	u.busy = true
	category := strings.TrimSpace(u.categoryInput.Value())
	return func() tea.Msg {
		content, err := m.backend.Generate(m.ctx, title, category, platforms)
		return contentGeneratedMsg{content: content, err: err}
	}
}

func (m *Model) onContentGenerated(msg contentGeneratedMsg) tea.Cmd {
	m.upload.busy = false
	if m.modal.kind != modalNone {
		// Regenerated/templated content closes the widget that produced it.
		m.modal = modalState{}
	}
	if msg.err != nil {
		return m.notify.Push(NotifyError, errorText(msg.err, "Content generation failed"))
	}
	m.store.SetPendingContent(msg.content)
	return m.notify.Push(NotifySuccess, fmt.Sprintf("Content ready, viral score %s", formatter.Score(msg.content.ViralScore)))
}

// submitUpload checks the preconditions and fires the upload. While busy,
// repeated activation is ignored.
func (m *Model) submitUpload() tea.Cmd {
	u := &m.upload
	if u.busy {
		return nil
	}

	title := strings.TrimSpace(u.titleInput.Value())
	platforms := u.selectedPlatforms()
	files := m.store.SelectedFiles()

	switch {
	case title == "":
		return m.notify.Push(NotifyError, "Title is required")
	case len(platforms) == 0:
		return m.notify.Push(NotifyError, "Select at least one platform")
	case len(files) == 0:
		return m.notify.Push(NotifyError, "Add at least one video file")
	}

	u.busy = true
	req := services.UploadRequest{
		Files:           files,
		Title:           title,
		Category:        strings.TrimSpace(u.categoryInput.Value()),
		Platforms:       platforms,
		GenerateContent: u.generate,
		ScheduleTime:    strings.TrimSpace(u.scheduleInput.Value()),
		Content:         m.store.PendingContent(),
	}

	return func() tea.Msg {
		result, err := m.backend.Upload(m.ctx, req)
		return uploadDoneMsg{result: result, err: err}
	}
}

func (m *Model) onUploadDone(msg uploadDoneMsg) tea.Cmd {
	u := &m.upload
	u.busy = false

	if msg.err != nil {
		return m.notify.Push(NotifyError, errorText(msg.err, "Upload failed"))
	}

	content := m.store.PendingContent()

	// Full form reset so the next post starts clean.
	m.store.ResetUploadForm()
	u.fileInput.SetValue("")
	u.titleInput.SetValue("")
	u.categoryInput.SetValue("")
	u.scheduleInput.SetValue("")
	u.platforms = make(map[models.Platform]bool)
	u.generate = false
	u.setFocus(uploadFocusFile)

	m.modal = modalState{kind: modalResult, result: msg.result, resultContent: content}

	text := msg.result.Message
	if text == "" {
		text = "Post submitted"
	}
	if msg.result.ViralScore > 0 {
		text = fmt.Sprintf("%s (viral score %d)", text, msg.result.ViralScore)
	}

	// The new post changes both server-backed views; refresh their caches.
	return tea.Batch(
		m.notify.Push(NotifySuccess, text),
		m.fetchSchedule(),
		m.fetchAnalytics(),
	)
}

func (m *Model) renderUpload() string {
	u := &m.upload
	connected := m.connectedPlatformSet()

	var b strings.Builder
	b.WriteString(styles.title.Render("New Post"))
	b.WriteString("\n\n")

	row := func(focus int, label, value string) {
		marker := "  "
		if u.focus == focus && !u.editingDesc {
			marker = styles.active.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", marker, label, value)
	}

	row(uploadFocusFile, "File:", u.fileInput.View())

	files := m.store.SelectedFiles()
	for _, f := range files {
		fmt.Fprintf(&b, "      · %s (%s, %s)\n", f.Name, f.MIME, formatter.FileSize(f.Size))
	}

	row(uploadFocusTitle, "Title:", u.titleInput.View())
	row(uploadFocusCategory, "Category:", u.categoryInput.View())
	row(uploadFocusSchedule, "Schedule:", u.scheduleInput.View())

	for i, p := range models.AllPlatforms() {
		check := "[ ]"
		if u.platforms[p] {
			check = styles.ok.Render("[x]")
		}
		label := p.Display()
		if !connected[p] {
			label += styles.help.Render(" (not connected)")
		}
		row(uploadFocusPlatforms+i, check, label)
	}

	genCheck := "[ ]"
	if u.generate {
		genCheck = styles.ok.Render("[x]")
	}
	row(uploadFocusGenerate, genCheck, "Generate AI content on upload")

	submitLabel := "Submit"
	if u.busy {
		submitLabel = styles.warn.Render("Submitting...")
	}
	row(uploadFocusSubmit, "→", submitLabel)

	if content := m.store.PendingContent(); content != nil {
		b.WriteString("\n")
		b.WriteString(styles.title.Render("AI Preview"))
		b.WriteString("\n")
		if u.editingDesc {
			fmt.Fprintf(&b, "Description: %s\n", u.descInput.View())
		} else {
			fmt.Fprintf(&b, "Description: %s\n", content.Description)
		}
		if line := formatter.Hashtags(content.Hashtags); line != "" {
			fmt.Fprintf(&b, "Hashtags: %s\n", line)
		}
		fmt.Fprintf(&b, "Viral score: %s\n", formatter.Score(content.ViralScore))
		b.WriteString(styles.help.Render("e edit description · g regenerate"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter add file/submit · space toggle · g generate · a analyze · t templates · x clear files"))
	return b.String()
}
