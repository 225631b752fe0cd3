package ui

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/qment/internal/editor"
	"github.com/gravitrone/qment/internal/ui/components"
)

type pane int

const (
	paneQuestions pane = iota
	paneGroups
	paneSections
	paneCount
)

const questionPaneWidth = 14

// EditorModel shows one edit session: the question list, the tag groups of
// the selected question, and its sections.
type EditorModel struct {
	session *editor.Editor
	keys    KeyMap
	log     *slog.Logger

	focus     pane
	questions *components.List
	groupIdx  int
	tagIdx    int // -1 when no tag is highlighted

	input       textinput.Model
	text        textarea.Model
	editingText bool
	textSection string

	width  int
	height int
}

// NewEditorModel wraps session for display.
func NewEditorModel(session *editor.Editor, keys KeyMap, logger *slog.Logger) EditorModel {
	input := textinput.New()
	input.CharLimit = 120
	input.ShowSuggestions = true
	input.PromptStyle = GhostStyle
	input.CompletionStyle = MutedStyle

	text := textarea.New()
	text.ShowLineNumbers = false
	text.Placeholder = "Section text..."

	m := EditorModel{
		session:   session,
		keys:      keys,
		log:       logger,
		questions: components.NewList(12),
		tagIdx:    -1,
		input:     input,
		text:      text,
	}
	m.syncQuestions()
	return m
}

// Session returns the wrapped edit session.
func (m EditorModel) Session() *editor.Editor {
	return m.session
}

// capturing reports whether keys belong to a text field.
func (m EditorModel) capturing() bool {
	return m.session.Pending() || m.editingText
}

func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.session.Pending() {
			return m.handleGhostKeys(msg)
		}
		if m.editingText {
			return m.handleTextKeys(msg)
		}
		if key.Matches(msg, m.keys.NextPane) {
			m.focus = (m.focus + 1) % paneCount
			return m, nil
		}
		switch m.focus {
		case paneQuestions:
			return m.handleQuestionKeys(msg)
		case paneGroups:
			return m.handleGroupKeys(msg)
		case paneSections:
			return m.handleSectionKeys(msg)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.session.Pending():
		m.input, cmd = m.input.Update(msg)
	case m.editingText:
		m.text, cmd = m.text.Update(msg)
	}
	return m, cmd
}

// --- Ghost input ---

func (m *EditorModel) openGhost() tea.Cmd {
	g := m.session.Ghost()
	switch g := g.(type) {
	case editor.GhostQuestionNumber:
		m.input.Prompt = "# "
		m.input.Placeholder = "number"
	case editor.GhostGroupName:
		m.input.Prompt = "+ "
		m.input.Placeholder = "group"
		if g.IsRename() {
			m.input.Prompt = "~ "
		}
	case editor.GhostTag:
		m.input.Prompt = "+ "
		m.input.Placeholder = "tag"
	}
	m.input.SetValue(g.Value())
	m.input.CursorEnd()
	m.input.SetSuggestions(m.session.SuggestionPool())
	return m.input.Focus()
}

func (m EditorModel) handleGhostKeys(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	if isEnter(msg) || isBack(msg) {
		m.commitGhost()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.Type(m.input.Value())
	return m, cmd
}

func (m *EditorModel) commitGhost() {
	res := m.session.Commit()
	m.input.Blur()
	m.input.SetValue("")
	m.input.SetSuggestions(nil)
	if !res.Applied {
		return
	}
	switch g := res.Ghost.(type) {
	case editor.GhostQuestionNumber:
		m.syncQuestions()
		m.groupIdx, m.tagIdx = 0, -1
	case editor.GhostGroupName:
		if q, err := m.session.Question(); err == nil {
			if idx := slices.Index(q.GroupNames(), g.Text); idx >= 0 {
				m.groupIdx, m.tagIdx = idx, -1
			}
		}
	}
}

// --- Section text ---

func (m EditorModel) handleTextKeys(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	if isBack(msg) {
		if err := m.session.SetSectionText(m.textSection, m.text.Value()); err != nil {
			m.log.Debug("section text dropped", "section", m.textSection, "err", err)
		}
		m.editingText = false
		m.text.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

// --- Panes ---

func (m EditorModel) handleQuestionKeys(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	nums := m.session.Document().Numbers()
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if len(nums) == 0 {
			return m, nil
		}
		idx := -1
		if n, ok := m.session.CurrentQuestion(); ok {
			idx = slices.Index(nums, n)
		}
		if key.Matches(msg, m.keys.Up) {
			idx--
		} else {
			idx++
		}
		idx = clamp(idx, 0, len(nums)-1)
		m.selectQuestion(nums[idx])
	case key.Matches(msg, m.keys.Add):
		m.session.BeginAddQuestion()
		cmd := m.openGhost()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.session.CurrentQuestion(); ok {
			m.session.RemoveQuestion(n)
			m.syncQuestions()
		}
	case key.Matches(msg, m.keys.Right):
		m.focus = paneGroups
	}
	return m, nil
}

func (m *EditorModel) selectQuestion(n uint32) {
	if err := m.session.SelectQuestion(n); err != nil {
		m.log.Debug("select question ignored", "question", n, "err", err)
		return
	}
	m.groupIdx, m.tagIdx = 0, -1
	m.syncQuestions()
}

func (m EditorModel) handleGroupKeys(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	q, err := m.session.Question()
	if err != nil {
		if key.Matches(msg, m.keys.Left) {
			m.focus = paneQuestions
		}
		return m, nil
	}
	groups := q.GroupNames()
	group := ""
	if m.groupIdx >= 0 && m.groupIdx < len(groups) {
		group = groups[m.groupIdx]
	}
	var tags []string
	if t, err := q.Group(group); err == nil {
		tags = t.Slice()
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.groupIdx = clamp(m.groupIdx-1, 0, len(groups)-1)
		m.tagIdx = -1
	case key.Matches(msg, m.keys.Down):
		m.groupIdx = clamp(m.groupIdx+1, 0, len(groups)-1)
		m.tagIdx = -1
	case key.Matches(msg, m.keys.Left):
		if m.tagIdx < 0 {
			m.focus = paneQuestions
			return m, nil
		}
		m.tagIdx--
	case key.Matches(msg, m.keys.Right):
		if m.tagIdx < len(tags)-1 {
			m.tagIdx++
		}
	case key.Matches(msg, m.keys.Add):
		cmd := m.begin(m.session.BeginAddGroup())
		return m, cmd
	case key.Matches(msg, m.keys.Rename):
		cmd := m.begin(m.session.BeginRenameGroup(group))
		return m, cmd
	case key.Matches(msg, m.keys.AddTag):
		cmd := m.begin(m.session.BeginAddTag(group))
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		m.ignore("remove group", m.session.RemoveGroup(group))
		m.groupIdx = clamp(m.groupIdx, 0, len(groups)-2)
		m.tagIdx = -1
	case key.Matches(msg, m.keys.DeleteTag):
		if m.tagIdx >= 0 && m.tagIdx < len(tags) {
			m.ignore("remove tag", m.session.RemoveTag(group, tags[m.tagIdx]))
			m.tagIdx = clamp(m.tagIdx, -1, len(tags)-2)
		}
	}
	return m, nil
}

func (m EditorModel) handleSectionKeys(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	q, err := m.session.Question()
	if err != nil {
		return m, nil
	}
	names := q.SectionNames()
	current := m.session.CurrentSection()
	idx := slices.Index(names, current)

	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if len(names) == 0 {
			return m, nil
		}
		if key.Matches(msg, m.keys.Left) {
			idx--
		} else {
			idx++
		}
		idx = clamp(idx, 0, len(names)-1)
		m.ignore("select section", m.session.SelectSection(names[idx]))
	case key.Matches(msg, m.keys.EditText):
		if err := m.session.CreateSectionText(current); err != nil {
			m.ignore("create section", err)
			return m, nil
		}
		s, err := q.Section(current)
		if err != nil || s.Text == nil {
			return m, nil
		}
		m.text.SetValue(*s.Text)
		m.textSection = current
		m.editingText = true
		cmd := m.text.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.ClearText):
		m.ignore("clear section", m.session.ClearSectionText(current))
	case key.Matches(msg, m.keys.Up):
		m.focus = paneGroups
	}
	return m, nil
}

func (m *EditorModel) begin(err error) tea.Cmd {
	if err != nil {
		m.ignore("begin edit", err)
		return nil
	}
	return m.openGhost()
}

// ignore logs a gesture that did nothing.
func (m *EditorModel) ignore(action string, err error) {
	if err != nil {
		m.log.Debug("gesture ignored", "action", action, "err", err)
	}
}

func (m *EditorModel) syncQuestions() {
	nums := m.session.Document().Numbers()
	labels := make([]string, len(nums))
	for i, n := range nums {
		labels[i] = fmt.Sprintf("Q%d", n)
	}
	cursor := -1
	if n, ok := m.session.CurrentQuestion(); ok {
		cursor = slices.Index(nums, n)
	}
	m.questions.SetItems(labels, cursor)
}

func (m *EditorModel) resize() {
	page := m.height - 16
	if page < 4 {
		page = 4
	}
	m.questions.PageSize = page
	w := m.rightWidth() - 4
	if w < 20 {
		w = 20
	}
	m.text.SetWidth(w)
	m.text.SetHeight(8)
	m.input.Width = w - 4
}

func (m EditorModel) rightWidth() int {
	w := m.width - questionPaneWidth - 8
	if w < 30 {
		return 30
	}
	if w > 90 {
		return 90
	}
	return w
}

// --- View ---

func (m EditorModel) View() string {
	left := m.paneStyle(paneQuestions).Width(questionPaneWidth).Render(m.renderQuestions())
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.paneStyle(paneGroups).Width(m.rightWidth()).Render(m.renderGroups()),
		m.paneStyle(paneSections).Width(m.rightWidth()).Render(m.renderSections()),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m EditorModel) paneStyle(p pane) lipgloss.Style {
	if m.focus == p && !m.capturing() {
		return PaneActiveStyle
	}
	return PaneStyle
}

func (m EditorModel) renderQuestions() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Questions"))
	b.WriteString("\n")
	visible := m.questions.Visible()
	for i, label := range visible {
		if m.questions.IsSelected(m.questions.RelToAbs(i)) {
			b.WriteString(SelectedStyle.Render("> " + label))
		} else {
			b.WriteString(NormalStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	if _, ok := m.session.Ghost().(editor.GhostQuestionNumber); ok {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if len(visible) == 0 {
		b.WriteString(MutedStyle.Render("none yet"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m EditorModel) renderGroups() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Tags"))
	b.WriteString("\n")

	q, err := m.session.Question()
	if err != nil {
		b.WriteString(MutedStyle.Render("select a question"))
		b.WriteString(m.renderForeignGhost())
		return b.String()
	}
	current, _ := m.session.CurrentQuestion()
	ghost := m.session.Ghost()
	focused := m.focus == paneGroups

	names := q.GroupNames()
	for i, name := range names {
		tags, _ := q.Group(name)
		var row strings.Builder
		if g, ok := ghost.(editor.GhostGroupName); ok && g.IsRename() && g.Question == current && *g.RenameTarget == name {
			row.WriteString(m.input.View())
		} else {
			marker := "  "
			if focused && i == m.groupIdx {
				marker = SelectedStyle.Render("> ")
			}
			row.WriteString(marker + GroupNameStyle.Render(components.SanitizeOneLine(name)))
		}
		for j, tag := range tags.Slice() {
			style := TagStyle
			if focused && i == m.groupIdx && j == m.tagIdx {
				style = TagSelectedStyle
			}
			row.WriteString(" " + style.Render(components.SanitizeOneLine(tag)))
		}
		if g, ok := ghost.(editor.GhostTag); ok && g.Question == current && g.Group == name {
			row.WriteString(" " + m.input.View())
		}
		b.WriteString(row.String())
		b.WriteString("\n")
	}
	if g, ok := ghost.(editor.GhostGroupName); ok && !g.IsRename() && g.Question == current {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	} else if len(names) == 0 {
		b.WriteString(MutedStyle.Render("no groups"))
		b.WriteString("\n")
	}
	b.WriteString(m.renderForeignGhost())
	return strings.TrimRight(b.String(), "\n")
}

// renderForeignGhost shows a pending group or tag edit that belongs to a
// question other than the selected one.
func (m EditorModel) renderForeignGhost() string {
	current, ok := m.session.CurrentQuestion()
	var owner uint32
	switch g := m.session.Ghost().(type) {
	case editor.GhostGroupName:
		owner = g.Question
	case editor.GhostTag:
		owner = g.Question
	default:
		return ""
	}
	if ok && owner == current {
		return ""
	}
	return "\n" + MutedStyle.Render(fmt.Sprintf("Q%d: ", owner)) + m.input.View()
}

func (m EditorModel) renderSections() string {
	q, err := m.session.Question()
	if err != nil {
		return HeaderStyle.Render("Sections")
	}
	current := m.session.CurrentSection()
	tabs := make([]string, 0, 2)
	for _, name := range q.SectionNames() {
		label := components.SanitizeOneLine(name)
		if name == current {
			tabs = append(tabs, TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, TabInactiveStyle.Render(label))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	s, err := q.Section(current)
	switch {
	case err != nil:
		body = MutedStyle.Render("no sections")
	case m.editingText:
		body = m.text.View()
	case !s.HasText():
		body = AbsentStyle.Render("not created yet, press enter to create")
	case *s.Text == "":
		body = MutedStyle.Render("(empty)")
	default:
		body = NormalStyle.Render(components.SanitizeText(*s.Text))
	}
	return header + "\n\n" + body
}

// hints returns the status bar entries for the current state.
func (m EditorModel) hints() []string {
	if m.session.Pending() {
		return []string{
			components.Hint("enter/esc", "Commit"),
			components.Hint("tab", "Complete"),
		}
	}
	if m.editingText {
		return []string{components.Hint("esc", "Done")}
	}
	bind := func(b key.Binding) string {
		return components.Hint(b.Help().Key, b.Help().Desc)
	}
	hints := []string{bind(m.keys.NextPane)}
	switch m.focus {
	case paneQuestions:
		hints = append(hints,
			components.Hint("↑/↓", "Select"),
			bind(m.keys.Add),
			bind(m.keys.Delete),
		)
	case paneGroups:
		hints = append(hints,
			components.Hint("↑/↓", "Group"),
			components.Hint("←/→", "Tag"),
			bind(m.keys.Add),
			bind(m.keys.Rename),
			bind(m.keys.AddTag),
			bind(m.keys.DeleteTag),
			bind(m.keys.Delete),
		)
	case paneSections:
		hints = append(hints,
			components.Hint("←/→", "Section"),
			bind(m.keys.EditText),
			bind(m.keys.ClearText),
		)
	}
	return hints
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
