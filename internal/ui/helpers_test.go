package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/qment/internal/document"
	"github.com/gravitrone/qment/internal/editor"
	"github.com/gravitrone/qment/internal/logging"
	"github.com/gravitrone/qment/internal/ui/components"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlU = tea.KeyMsg{Type: tea.KeyCtrlU}
	keyCtrlB = tea.KeyMsg{Type: tea.KeyCtrlB}
)

func testPreset() *document.Preset {
	return document.NewPreset(map[string][]string{
		document.GlobalGroup: {"exam"},
		"Topic":              {"algebra", "geometry"},
	}, []string{"Topic"})
}

func newTestEditorModel(t *testing.T, doc *document.Document) EditorModel {
	t.Helper()
	session := editor.New(doc, "bank.json", editor.NewPresetRef(testPreset()), logging.Discard())
	m := NewEditorModel(session, DefaultKeyMap(false), logging.Discard())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func send(m EditorModel, msgs ...tea.Msg) EditorModel {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func plain(view string) string {
	return components.SanitizeText(view)
}
