package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilkerbruno/videos-automacoes/internal/formatter"
	"github.com/wilkerbruno/videos-automacoes/internal/models"
	"github.com/wilkerbruno/videos-automacoes/internal/services"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAnalyzer
	modalTemplates
	modalResult
)

// modalState drives the widgets layered over the upload section: the viral
// potential analyzer, the template picker, and the submission result summary.
type modalState struct {
	kind modalKind
	busy bool

	// analyzer
	analysis *models.ViralAnalysis

	// submission result
	result        *models.UploadResult
	resultContent *models.GeneratedContent

	// template picker
	templates    []templateEntry
	cursor       int
	filling      bool
	varInputs    []textinput.Model
	varIdx       int
	templatePick int
}

type templateEntry struct {
	id         string
	name       string
	category   string
	viralScore int
	variables  []string
}

// openAnalyzer validates the form and fires the viral analysis request.
func (m *Model) openAnalyzer() tea.Cmd {
	title := strings.TrimSpace(m.upload.titleInput.Value())
	if title == "" {
		return m.notify.Push(NotifyError, "Enter a title to analyze")
	}

	var description string
	if content := m.store.PendingContent(); content != nil {
		description = content.Description
	}

	m.modal = modalState{kind: modalAnalyzer, busy: true}
	req := services.AnalyzeRequest{
		Title:       title,
		Description: description,
		Category:    strings.TrimSpace(m.upload.categoryInput.Value()),
		Platforms:   models.PlatformStrings(m.upload.selectedPlatforms()),
	}
	return func() tea.Msg {
		analysis, err := m.backend.Analyze(m.ctx, req)
		return analysisDoneMsg{analysis: analysis, err: err}
	}
}

func (m *Model) onAnalysisDone(msg analysisDoneMsg) tea.Cmd {
	m.modal.busy = false
	if msg.err != nil {
		m.modal.kind = modalNone
		return m.notify.Push(NotifyError, errorText(msg.err, "Analysis failed"))
	}
	m.modal.analysis = msg.analysis
	return nil
}

// openTemplates opens the picker and fetches the template catalog.
func (m *Model) openTemplates() tea.Cmd {
	m.modal = modalState{kind: modalTemplates, busy: true}
	return func() tea.Msg {
		templates, err := m.backend.Templates(m.ctx)
		return templatesFetchedMsg{templates: templates, err: err}
	}
}

func (m *Model) onTemplatesFetched(msg templatesFetchedMsg) tea.Cmd {
	m.modal.busy = false
	if msg.err != nil {
		m.modal.kind = modalNone
		return m.notify.Push(NotifyError, errorText(msg.err, "Could not load templates"))
	}
	m.modal.templates = nil
	for _, tpl := range msg.templates {
		m.modal.templates = append(m.modal.templates, templateEntry{
			id:         tpl.ID,
			name:       tpl.Name,
			category:   tpl.Category,
			viralScore: tpl.ViralScore,
			variables:  tpl.Variables,
		})
	}
	return nil
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) tea.Cmd {
	switch m.modal.kind {
	case modalAnalyzer:
		return m.handleAnalyzerKeys(msg)
	case modalTemplates:
		return m.handleTemplatesKeys(msg)
	case modalResult:
		switch msg.String() {
		case "esc", "enter", "q":
			m.modal = modalState{}
		}
		return nil
	}
	return nil
}

func (m *Model) handleAnalyzerKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.modal = modalState{}
		return nil
	case "r":
		if m.modal.busy || m.modal.analysis == nil {
			return nil
		}
		return m.regenerateFromAnalysis()
	}
	return nil
}

// regenerateFromAnalysis asks the server to rewrite the content applying the
// analyzer's improvements; the result replaces the pending preview.
func (m *Model) regenerateFromAnalysis() tea.Cmd {
	analysis := m.modal.analysis
	m.modal.busy = true

	return func() tea.Msg {
		content, err := m.backend.Regenerate(m.ctx, analysis, true)
		return contentGeneratedMsg{content: content, err: err}
	}
}

func (m *Model) handleTemplatesKeys(msg tea.KeyMsg) tea.Cmd {
	mo := &m.modal

	if mo.filling {
		switch msg.String() {
		case "esc":
			mo.filling = false
			return nil
		case "up":
			mo.focusVar(mo.varIdx - 1)
			return nil
		case "down":
			mo.focusVar(mo.varIdx + 1)
			return nil
		case "enter":
			if mo.varIdx < len(mo.varInputs)-1 {
				mo.focusVar(mo.varIdx + 1)
				return nil
			}
			return m.submitTemplate()
		}
		// Templates without variables have no inputs to type into.
		if len(mo.varInputs) == 0 {
			return nil
		}
		var cmd tea.Cmd
		mo.varInputs[mo.varIdx], cmd = mo.varInputs[mo.varIdx].Update(msg)
		return cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.modal = modalState{}
	case "up", "k":
		if mo.cursor > 0 {
			mo.cursor--
		}
	case "down", "j":
		if mo.cursor < len(mo.templates)-1 {
			mo.cursor++
		}
	case "enter":
		if mo.cursor < len(mo.templates) {
			mo.openVariableForm(mo.cursor)
		}
	}
	return nil
}

// openVariableForm switches the picker into fill mode for one template.
func (mo *modalState) openVariableForm(idx int) {
	tpl := mo.templates[idx]
	mo.templatePick = idx
	mo.varInputs = nil
	mo.varIdx = 0

	if len(tpl.variables) == 0 {
		mo.filling = true
		return
	}

	for i, name := range tpl.variables {
		input := newTextInput()
		input.Placeholder = name
		if i == 0 {
			input.Focus()
		}
		mo.varInputs = append(mo.varInputs, input)
	}
	mo.filling = true
}

func (mo *modalState) focusVar(idx int) {
	if idx < 0 || idx >= len(mo.varInputs) {
		return
	}
	mo.varInputs[mo.varIdx].Blur()
	mo.varIdx = idx
	mo.varInputs[mo.varIdx].Focus()
}

// submitTemplate generates content from the picked template and variables.
func (m *Model) submitTemplate() tea.Cmd {
	mo := &m.modal
	if mo.busy {
		return nil
	}
	mo.busy = true

	tpl := mo.templates[mo.templatePick]
	variables := make(map[string]string, len(tpl.variables))
	for i, name := range tpl.variables {
		if i < len(mo.varInputs) {
			variables[name] = strings.TrimSpace(mo.varInputs[i].Value())
		}
	}

	platforms := m.upload.selectedPlatforms()
	return func() tea.Msg {
		content, err := m.backend.FromTemplate(m.ctx, tpl.id, variables, platforms)
		return contentGeneratedMsg{content: content, err: err}
	}
}

func (m *Model) renderModal() string {
	switch m.modal.kind {
	case modalAnalyzer:
		return m.renderAnalyzer()
	case modalTemplates:
		return m.renderTemplates()
	case modalResult:
		return m.renderResult()
	}
	return ""
}

func (m *Model) renderResult() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Post Submitted"))
	b.WriteString("\n\n")

	result := m.modal.result
	if result == nil {
		b.WriteString(styles.help.Render("No result available"))
		return b.String()
	}

	if result.Data.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", result.Data.Title)
	}
	if result.Data.Status != "" {
		fmt.Fprintf(&b, "Status: %s\n", result.Data.Status)
	}
	if len(result.Data.Platforms) > 0 {
		fmt.Fprintf(&b, "Platforms: %s\n", formatter.Platforms(result.Data.Platforms))
	}
	if result.ViralScore > 0 {
		fmt.Fprintf(&b, "Viral score: %s\n", formatter.Score(result.ViralScore))
	}

	if content := m.modal.resultContent; content != nil {
		if content.Description != "" {
			fmt.Fprintf(&b, "\n%s\n", content.Description)
		}
		if line := formatter.Hashtags(content.Hashtags); line != "" {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	if result.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", styles.ok.Render(result.Message))
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter close"))
	return b.String()
}

func (m *Model) renderAnalyzer() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Viral Potential"))
	b.WriteString("\n\n")

	if m.modal.busy {
		b.WriteString(styles.help.Render("Analyzing..."))
		return b.String()
	}

	a := m.modal.analysis
	if a == nil {
		b.WriteString(styles.help.Render("No analysis available"))
		return b.String()
	}

	fmt.Fprintf(&b, "Score: %s\n\n", styles.ok.Render(formatter.Score(a.ViralScore)))

	if len(a.Strengths) > 0 {
		b.WriteString(styles.ok.Render("Strengths"))
		b.WriteString("\n")
		for _, s := range a.Strengths {
			fmt.Fprintf(&b, "  + %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(a.Improvements) > 0 {
		b.WriteString(styles.warn.Render("Improvements"))
		b.WriteString("\n")
		for _, s := range a.Improvements {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
		b.WriteString("\n")
	}

	for platform, elements := range a.TrendingElements {
		fmt.Fprintf(&b, "Trending on %s: %s\n", platform, strings.Join(elements, ", "))
	}
	for platform, times := range a.OptimalTiming {
		fmt.Fprintf(&b, "Best times for %s: %s\n", platform, strings.Join(times, ", "))
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("r regenerate with improvements · esc close"))
	return b.String()
}

func (m *Model) renderTemplates() string {
	mo := &m.modal

	var b strings.Builder
	b.WriteString(styles.title.Render("Content Templates"))
	b.WriteString("\n\n")

	if mo.busy {
		b.WriteString(styles.help.Render("Loading..."))
		return b.String()
	}

	if mo.filling {
		tpl := mo.templates[mo.templatePick]
		fmt.Fprintf(&b, "Fill in '%s'\n\n", tpl.name)
		if len(mo.varInputs) == 0 {
			b.WriteString(styles.help.Render("No variables, press enter to generate"))
			b.WriteString("\n")
		}
		for i, input := range mo.varInputs {
			marker := "  "
			if i == mo.varIdx {
				marker = styles.active.Render("> ")
			}
			fmt.Fprintf(&b, "%s%s: %s\n", marker, tpl.variables[i], input.View())
		}
		b.WriteString("\n")
		b.WriteString(styles.help.Render("enter next/generate · esc back"))
		return b.String()
	}

	if len(mo.templates) == 0 {
		b.WriteString(styles.help.Render("No templates available"))
		b.WriteString("\n")
	}
	for i, tpl := range mo.templates {
		marker := "  "
		if i == mo.cursor {
			marker = styles.active.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s (%s, score %d)\n", marker, tpl.name, tpl.category, tpl.viralScore)
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter pick · esc close"))
	return b.String()
}
