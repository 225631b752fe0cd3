package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/qment/internal/config"
	"github.com/gravitrone/qment/internal/document"
	"github.com/gravitrone/qment/internal/editor"
	"github.com/gravitrone/qment/internal/store"
	"github.com/gravitrone/qment/internal/ui/components"
)

// --- Messages ---

type clearToastMsg struct{}

type documentLoadedMsg struct {
	path  string
	doc   *document.Document
	quiet bool
}

type presetLoadedMsg struct {
	path   string
	preset *document.Preset
}

type loadFailedMsg struct {
	op    string
	path  string
	err   error
	quiet bool
}

type appToast struct {
	level string
	text  string
}

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmQuit
	confirmClose
	confirmReplace
)

// --- App Model ---

// App is the root TUI model. It owns at most one edit session and the file
// dialog used to open, create and save documents and presets.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	presets *editor.PresetRef
	keys    KeyMap

	editor *EditorModel
	dialog *fileDialog

	helpOpen bool
	confirm  confirmKind
	// replaceMode is the dialog a confirmReplace continues to.
	replaceMode dialogMode
	err      string
	toast    *appToast

	width  int
	height int
}

// NewApp creates the root model. presets is shared with every session the
// app opens.
func NewApp(cfg *config.Config, presets *editor.PresetRef, logger *slog.Logger) App {
	if cfg == nil {
		cfg = config.Default()
	}
	if presets == nil {
		presets = editor.NewPresetRef(nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return App{
		cfg:     cfg,
		log:     logger,
		presets: presets,
		keys:    DefaultKeyMap(cfg.VimKeys),
	}
}

func (a App) Init() tea.Cmd {
	if path := strings.TrimSpace(a.cfg.RecentProject); path != "" {
		return loadDocumentCmd(path, true)
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.editor != nil {
			ed, _ := a.editor.Update(msg)
			a.editor = &ed
		}
		if a.dialog != nil {
			a.dialog.width, a.dialog.height = msg.Width, msg.Height
		}
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil

	case documentLoadedMsg:
		a.openSession(msg.doc, msg.path)
		a.rememberProject(msg.path)
		a.log.Info("project opened", "path", msg.path, "questions", msg.doc.Len())
		if msg.quiet {
			return a, nil
		}
		cmd := a.setToast("success", "Opened "+filepath.Base(msg.path))
		return a, cmd

	case presetLoadedMsg:
		a.presets.Store(msg.preset)
		a.cfg.PresetPath = msg.path
		a.saveConfig()
		a.log.Info("preset loaded", "path", msg.path)
		cmd := a.setToast("success", "Preset "+filepath.Base(msg.path)+" active")
		return a, cmd

	case loadFailedMsg:
		a.log.Warn("load failed", "op", msg.op, "path", msg.path, "err", msg.err)
		if msg.quiet {
			return a, nil
		}
		a.err = fmt.Sprintf("%s: %v", msg.op, msg.err)
		return a, nil

	case tea.KeyMsg:
		if a.confirm != confirmNone {
			return a.handleConfirmKeys(msg)
		}
		if a.dialog != nil {
			return a.handleDialog(msg)
		}
		if a.helpOpen {
			if isBack(msg) || key.Matches(msg, a.keys.Help) {
				a.helpOpen = false
			}
			return a, nil
		}
		if a.err != "" {
			a.err = ""
		}
		if key.Matches(msg, a.keys.Force) {
			return a.requestQuit()
		}
		if a.editor != nil && a.editor.capturing() {
			return a.updateEditor(msg)
		}
		return a.handleGlobalKeys(msg)
	}

	if a.dialog != nil {
		return a.handleDialog(msg)
	}
	if a.editor != nil {
		return a.updateEditor(msg)
	}
	return a, nil
}

func (a App) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	ed, cmd := a.editor.Update(msg)
	a.editor = &ed
	return a, cmd
}

func (a App) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Help):
		a.helpOpen = true
		return a, nil
	case key.Matches(msg, a.keys.Quit):
		return a.requestQuit()
	case key.Matches(msg, a.keys.New):
		return a.replaceSession(dialogNewProject)
	case key.Matches(msg, a.keys.Open):
		return a.replaceSession(dialogOpenProject)
	case key.Matches(msg, a.keys.LoadPreset):
		return a.openDialog(dialogLoadPreset, a.cfg.PresetPath)
	case key.Matches(msg, a.keys.NewPreset):
		return a.openDialog(dialogNewPreset, "")
	case key.Matches(msg, a.keys.Save):
		return a.save()
	case key.Matches(msg, a.keys.SaveAs):
		if a.editor == nil {
			cmd := a.setToast("warning", "No project open")
			return a, cmd
		}
		return a.openDialog(dialogSaveAs, a.editor.Session().Path())
	case key.Matches(msg, a.keys.Close):
		if a.editor == nil {
			return a, nil
		}
		if a.editor.Session().Dirty() {
			a.confirm = confirmClose
			return a, nil
		}
		a.closeSession()
		return a, nil
	}
	if a.editor != nil {
		return a.updateEditor(msg)
	}
	return a, nil
}

func (a App) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		kind := a.confirm
		a.confirm = confirmNone
		switch kind {
		case confirmQuit:
			return a, tea.Quit
		case confirmReplace:
			return a.openDialog(a.replaceMode, "")
		}
		a.closeSession()
	case isKey(msg, "n"), isBack(msg):
		a.confirm = confirmNone
	}
	return a, nil
}

// replaceSession opens the dialog for a new or opened project, asking first
// when the current one has unsaved edits.
func (a App) replaceSession(mode dialogMode) (tea.Model, tea.Cmd) {
	if a.hasUnsaved() {
		a.confirm = confirmReplace
		a.replaceMode = mode
		return a, nil
	}
	return a.openDialog(mode, "")
}

func (a App) requestQuit() (tea.Model, tea.Cmd) {
	if a.hasUnsaved() {
		a.confirm = confirmQuit
		return a, nil
	}
	return a, tea.Quit
}

// hasUnsaved reports whether quitting would lose edits. A pending ghost
// counts, since quitting discards it.
func (a App) hasUnsaved() bool {
	if a.editor == nil {
		return false
	}
	s := a.editor.Session()
	return s.Dirty() || s.Pending()
}

// --- Sessions ---

func (a *App) openSession(doc *document.Document, path string) {
	if a.editor != nil {
		a.editor.Session().Discard()
	}
	session := editor.New(doc, path, a.presets, a.log)
	ed := NewEditorModel(session, a.keys, a.log)
	if a.width > 0 {
		ed, _ = ed.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	a.editor = &ed
}

func (a *App) closeSession() {
	if a.editor == nil {
		return
	}
	a.editor.Session().Discard()
	a.log.Info("project closed", "path", a.editor.Session().Path())
	a.editor = nil
}

func (a *App) rememberProject(path string) {
	if a.cfg.RecentProject == path {
		return
	}
	a.cfg.RecentProject = path
	a.saveConfig()
}

func (a *App) saveConfig() {
	if err := a.cfg.Save(); err != nil {
		a.log.Warn("save config failed", "err", err)
	}
}

// save writes the open document. A failed write leaves the document and
// its dirty flag as they were.
func (a App) save() (tea.Model, tea.Cmd) {
	if a.editor == nil {
		cmd := a.setToast("warning", "No project open")
		return a, cmd
	}
	s := a.editor.Session()
	if err := store.SaveDocument(s.Path(), s.Document()); err != nil {
		a.log.Warn("save failed", "path", s.Path(), "err", err)
		a.err = fmt.Sprintf("save project: %v", err)
		return a, nil
	}
	s.MarkSaved()
	a.rememberProject(s.Path())
	a.log.Info("project saved", "path", s.Path(), "questions", s.Document().Len())
	cmd := a.setToast("success", "Saved "+filepath.Base(s.Path()))
	return a, cmd
}

// --- File dialog ---

func (a App) openDialog(mode dialogMode, initial string) (tea.Model, tea.Cmd) {
	d, cmd := newFileDialog(mode, initial, a.width, a.height)
	a.dialog = &d
	return a, cmd
}

func (a App) handleDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	d, cmd := a.dialog.Update(msg)
	switch {
	case d.cancelled:
		a.dialog = nil
		return a, nil
	case d.done:
		a.dialog = nil
		return a.finishDialog(d.mode, d.path)
	}
	a.dialog = &d
	return a, cmd
}

func (a App) finishDialog(mode dialogMode, path string) (tea.Model, tea.Cmd) {
	switch mode {
	case dialogNewProject:
		a.openSession(document.New(), path)
		a.log.Info("project created", "path", path)
		cmd := a.setToast("info", "New project "+filepath.Base(path)+", save to create it")
		return a, cmd
	case dialogOpenProject:
		return a, loadDocumentCmd(path, false)
	case dialogSaveAs:
		if a.editor == nil {
			return a, nil
		}
		s := a.editor.Session()
		previous := s.Path()
		s.SetPath(path)
		model, cmd := a.save()
		if next := model.(App); next.err != "" {
			s.SetPath(previous)
			return next, cmd
		}
		return model, cmd
	case dialogLoadPreset:
		return a, loadPresetCmd(path)
	case dialogNewPreset:
		if err := store.SavePreset(path, store.StarterPreset(a.cfg.DefaultGroups)); err != nil {
			a.log.Warn("write preset failed", "path", path, "err", err)
			a.err = fmt.Sprintf("new preset: %v", err)
			return a, nil
		}
		return a, loadPresetCmd(path)
	}
	return a, nil
}

func loadDocumentCmd(path string, quiet bool) tea.Cmd {
	return func() tea.Msg {
		doc, err := store.LoadDocument(path)
		if err != nil {
			return loadFailedMsg{op: "open project", path: path, err: err, quiet: quiet}
		}
		return documentLoadedMsg{path: path, doc: doc, quiet: quiet}
	}
}

func loadPresetCmd(path string) tea.Cmd {
	return func() tea.Msg {
		p, err := store.LoadPreset(path)
		if err != nil {
			return loadFailedMsg{op: "load preset", path: path, err: err}
		}
		return presetLoadedMsg{path: path, preset: p}
	}
}

// --- View ---

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(a.width), a.width)
	title := centerBlockUniform(a.renderTitle(), a.width)

	var content string
	switch {
	case a.confirm != confirmNone:
		content = a.renderConfirm()
	case a.dialog != nil:
		content = a.dialog.View()
	case a.helpOpen:
		content = a.renderHelp()
	case a.editor != nil:
		content = a.editor.View()
	default:
		content = components.TitledBox("No Project Open",
			MutedStyle.Render("ctrl+n new project | ctrl+o open project"), a.width)
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.err != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", a.err, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s", banner, title, content, hints, feedback)
}

func (a App) renderTitle() string {
	if a.editor == nil {
		return ""
	}
	s := a.editor.Session()
	name := components.SanitizeOneLine(filepath.Base(s.Path()))
	line := TabActiveStyle.Render(name)
	if s.Dirty() {
		line += " " + WarningStyle.Render("modified")
	}
	if p := a.cfg.PresetPath; p != "" {
		line += " " + MutedStyle.Render("preset: "+components.SanitizeOneLine(filepath.Base(p)))
	}
	return line
}

func (a App) statusHints() []string {
	switch {
	case a.confirm != confirmNone:
		return []string{components.Hint("y", "Confirm"), components.Hint("n", "Cancel")}
	case a.dialog != nil:
		return nil
	case a.helpOpen:
		return []string{components.Hint("esc", "Close")}
	}
	var hints []string
	if a.editor != nil {
		hints = a.editor.hints()
		if a.editor.capturing() {
			return hints
		}
	}
	return append(hints,
		components.Hint("ctrl+s", "Save"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	)
}

func (a App) renderHelp() string {
	h := help.New()
	h.ShowAll = true
	h.FullSeparator = "    "
	h.Styles.FullKey = AccentStyle
	h.Styles.FullDesc = NormalStyle
	lines := []string{
		MutedStyle.Render("esc to close"),
		"",
		h.View(a.keys),
		"",
		MutedStyle.Render("Edits in the text field are applied when it loses focus (enter or esc)."),
		MutedStyle.Render("Blank or invalid entries are dropped."),
	}
	return components.Indent(components.TitledBox("Help", strings.Join(lines, "\n"), a.width), 1)
}

func (a App) renderConfirm() string {
	switch a.confirm {
	case confirmClose:
		return components.Indent(components.ConfirmDialog("Close Project", "Discard unsaved changes?"), 1)
	case confirmReplace:
		return components.Indent(components.ConfirmDialog(a.replaceMode.title(), "Discard unsaved changes?"), 1)
	}
	return components.Indent(components.ConfirmDialog("Quit", "You have unsaved changes. Quit anyway?"), 1)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(2500*time.Millisecond, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
