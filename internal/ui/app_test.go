package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/qment/internal/config"
	"github.com/gravitrone/qment/internal/document"
	"github.com/gravitrone/qment/internal/editor"
	"github.com/gravitrone/qment/internal/logging"
	"github.com/gravitrone/qment/internal/store"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	a := NewApp(config.Default(), editor.NewPresetRef(testPreset()), logging.Discard())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App)
}

func press(a App, msgs ...tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	var m tea.Model = a
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m.(App), cmd
}

// run executes cmd and feeds its message back, as the program loop would.
func run(t *testing.T, a App, cmd tea.Cmd) App {
	t.Helper()
	require.NotNil(t, cmd)
	a, _ = press(a, cmd())
	return a
}

func writeBank(t *testing.T, numbers ...uint32) string {
	t.Helper()
	doc := document.New()
	for _, n := range numbers {
		doc.AddQuestion(n)
	}
	path := filepath.Join(t.TempDir(), "bank.json")
	require.NoError(t, store.SaveDocument(path, doc))
	return path
}

func TestAppStartsWithoutProject(t *testing.T) {
	a := newTestApp(t)
	assert.Nil(t, a.Init())
	assert.Contains(t, plain(a.View()), "No Project Open")
}

func TestNewProjectThenSave(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "new.json")

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.NotNil(t, a.dialog)
	a, _ = press(a, runes(path), keyEnter)
	require.Nil(t, a.dialog)
	require.NotNil(t, a.editor)
	assert.Equal(t, path, a.editor.Session().Path())
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	a, _ = press(a, runes("a"), keyEnter)
	assert.True(t, a.editor.Session().Dirty())
	assert.Contains(t, plain(a.View()), "modified")

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Empty(t, a.err)
	assert.False(t, a.editor.Session().Dirty())
	require.NotNil(t, a.toast)
	assert.Equal(t, "success", a.toast.level)

	doc, err := store.LoadDocument(path)
	require.NoError(t, err)
	assert.True(t, doc.HasQuestion(0))
	assert.Equal(t, path, a.cfg.RecentProject)
}

func TestSaveFailureKeepsDirtyState(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "missing-dir", "bank.json")
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN}, runes(path), keyEnter)
	a, _ = press(a, runes("a"), keyEnter)

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, a.err, "save project")
	assert.True(t, a.editor.Session().Dirty())
	assert.Equal(t, 1, a.editor.Session().Document().Len())
	assert.Contains(t, plain(a.View()), "Error")
}

func TestOpenProject(t *testing.T) {
	a := newTestApp(t)
	path := writeBank(t, 3, 1)

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlO}, runes(path))
	a, cmd := press(a, keyEnter)
	a = run(t, a, cmd)

	require.NotNil(t, a.editor)
	assert.Equal(t, []uint32{1, 3}, a.editor.Session().Document().Numbers())
	assert.False(t, a.editor.Session().Dirty())
	assert.Equal(t, path, a.cfg.RecentProject)
}

func TestOpenProjectFailureLeavesSessionAlone(t *testing.T) {
	a := newTestApp(t)
	good := writeBank(t, 1)
	a = run(t, a, loadDocumentCmd(good, false))
	session := a.editor.Session()

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"questions": {"one": {}}}`), 0644))
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlO}, runes(bad))
	a, cmd := press(a, keyEnter)
	a = run(t, a, cmd)

	assert.Same(t, session, a.editor.Session())
	assert.Equal(t, []uint32{1}, session.Document().Numbers())
	assert.Contains(t, a.err, "open project")
	assert.Equal(t, good, a.cfg.RecentProject)

	// Any key clears the error.
	a, _ = press(a, keyTab)
	assert.Empty(t, a.err)
}

func TestDialogEscapeChangesNothing(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlO}, runes("whatever.json"), keyEsc)
	assert.Nil(t, a.dialog)
	assert.Nil(t, a.editor)
	assert.Empty(t, a.err)
}

func TestInitReopensRecentProjectQuietly(t *testing.T) {
	a := newTestApp(t)
	a.cfg.RecentProject = writeBank(t, 2)

	a = run(t, a, a.Init())
	require.NotNil(t, a.editor)
	assert.True(t, a.editor.Session().Document().HasQuestion(2))
	assert.Nil(t, a.toast)

	a.editor = nil
	a.cfg.RecentProject = filepath.Join(t.TempDir(), "gone.json")
	a = run(t, a, a.Init())
	assert.Nil(t, a.editor)
	assert.Empty(t, a.err)
}

func TestQuitConfirmWhenDirty(t *testing.T) {
	a := newTestApp(t)
	_, cmd := press(a, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("x.json"), keyEnter, runes("a"), keyEnter)
	a, cmd = press(a, runes("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, confirmQuit, a.confirm)
	assert.Contains(t, plain(a.View()), "unsaved changes")

	a, _ = press(a, runes("n"))
	assert.Equal(t, confirmNone, a.confirm)

	_, cmd = press(a, runes("q"), runes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestPendingEditCapturesKeys(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("x.json"), keyEnter)

	a, _ = press(a, runes("a"), keyBack, runes("q"))
	assert.Equal(t, confirmNone, a.confirm)
	assert.Equal(t, "q", a.editor.Session().Ghost().Value())

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, confirmQuit, a.confirm)
}

func TestCloseProject(t *testing.T) {
	a := newTestApp(t)
	a = run(t, a, loadDocumentCmd(writeBank(t, 1), true))

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Nil(t, a.editor)

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("y.json"), keyEnter, runes("a"), keyEnter)
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Equal(t, confirmClose, a.confirm)
	a, _ = press(a, runes("y"))
	assert.Nil(t, a.editor)
}

func TestOpenOrNewAsksBeforeDroppingEdits(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("x.json"), keyEnter, runes("a"), keyEnter)
	require.True(t, a.editor.Session().Dirty())
	session := a.editor.Session()

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, confirmReplace, a.confirm)
	assert.Nil(t, a.dialog)
	assert.Contains(t, plain(a.View()), "Open Project")

	a, _ = press(a, runes("n"))
	assert.Equal(t, confirmNone, a.confirm)
	assert.Nil(t, a.dialog)
	assert.Same(t, session, a.editor.Session())

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, confirmReplace, a.confirm)
	a, _ = press(a, keyEsc)
	assert.Equal(t, confirmNone, a.confirm)
	assert.Same(t, session, a.editor.Session())

	path := writeBank(t, 8)
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlO}, runes("y"))
	require.NotNil(t, a.dialog)
	assert.Equal(t, dialogOpenProject, a.dialog.mode)

	a, _ = press(a, runes(path))
	a, cmd := press(a, keyEnter)
	a = run(t, a, cmd)
	assert.Equal(t, path, a.editor.Session().Path())
	assert.Equal(t, []uint32{8}, a.editor.Session().Document().Numbers())
}

func TestOpenWithoutEditsSkipsConfirm(t *testing.T) {
	a := newTestApp(t)
	a = run(t, a, loadDocumentCmd(writeBank(t, 1), true))

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, confirmNone, a.confirm)
	require.NotNil(t, a.dialog)
}

func TestLoadPresetSwapsActivePreset(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "p.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// exam board groups
		"tags": {"Board": ["AQA"]},
		"groups": ["Board"],
	}`), 0644))

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlN}, runes("z.json"), keyEnter, runes("a"), keyEnter)
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlP}, runes(path))
	a, cmd := press(a, keyEnter)
	a = run(t, a, cmd)

	assert.Equal(t, []string{"Board"}, a.presets.Load().DefaultGroups())
	assert.Equal(t, path, a.cfg.PresetPath)

	// Existing questions keep their groups; new ones use the new preset.
	doc := a.editor.Session().Document()
	q0, _ := doc.Question(0)
	assert.Equal(t, []string{"Topic"}, q0.GroupNames())
	a, _ = press(a, runes("a"), keyEnter)
	q1, _ := doc.Question(1)
	assert.Equal(t, []string{"Board"}, q1.GroupNames())

	saved, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, path, saved.PresetPath)
}

func TestLoadPresetFailureKeepsPreset(t *testing.T) {
	a := newTestApp(t)
	before := a.presets.Load()
	a = run(t, a, loadPresetCmd(filepath.Join(t.TempDir(), "nope.jsonc")))
	assert.Same(t, before, a.presets.Load())
	assert.Contains(t, a.err, "load preset")
}

func TestNewPresetWritesAndActivates(t *testing.T) {
	a := newTestApp(t)
	a.cfg.DefaultGroups = []string{"Paper"}
	path := filepath.Join(t.TempDir(), "starter.jsonc")

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlE}, runes(path))
	a, cmd := press(a, keyEnter)
	_, err := os.Stat(path)
	require.NoError(t, err)

	a = run(t, a, cmd)
	assert.Equal(t, []string{"Paper"}, a.presets.Load().DefaultGroups())
}

func TestSaveAsMovesProject(t *testing.T) {
	a := newTestApp(t)
	a = run(t, a, loadDocumentCmd(writeBank(t, 4), true))
	target := filepath.Join(t.TempDir(), "copy.json")

	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlA}, keyCtrlU, runes(target), keyEnter)
	assert.Equal(t, target, a.editor.Session().Path())
	doc, err := store.LoadDocument(target)
	require.NoError(t, err)
	assert.True(t, doc.HasQuestion(4))
}

func TestSaveAsFailureKeepsPath(t *testing.T) {
	a := newTestApp(t)
	original := writeBank(t, 4)
	a = run(t, a, loadDocumentCmd(original, true))

	bad := filepath.Join(t.TempDir(), "no", "such", "dir.json")
	a, _ = press(a, tea.KeyMsg{Type: tea.KeyCtrlA}, keyCtrlU, runes(bad), keyEnter)
	assert.Equal(t, original, a.editor.Session().Path())
	assert.NotEmpty(t, a.err)
}

func TestHelpOverlay(t *testing.T) {
	a := newTestApp(t)
	a, _ = press(a, runes("?"))
	assert.True(t, a.helpOpen)
	view := plain(a.View())
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "New Preset")

	a, _ = press(a, keyEsc)
	assert.False(t, a.helpOpen)
}
