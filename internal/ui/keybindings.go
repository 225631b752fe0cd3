package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Key Helpers ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

// --- Key Map ---

// KeyMap holds the editor bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	NextPane key.Binding

	Add       key.Binding // question / group, depending on the pane
	Rename    key.Binding
	Delete    key.Binding
	AddTag    key.Binding
	DeleteTag key.Binding
	EditText  key.Binding
	ClearText key.Binding

	New        key.Binding
	Open       key.Binding
	Save       key.Binding
	SaveAs     key.Binding
	Close      key.Binding
	LoadPreset key.Binding
	NewPreset  key.Binding

	Help  key.Binding
	Quit  key.Binding
	Force key.Binding
}

// DefaultKeyMap returns the bindings. With vim set, hjkl move as well as the
// arrow keys.
func DefaultKeyMap(vim bool) KeyMap {
	up, down, left, right := []string{"up"}, []string{"down"}, []string{"left"}, []string{"right"}
	if vim {
		up = append(up, "k")
		down = append(down, "j")
		left = append(left, "h")
		right = append(right, "l")
	}
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys(up...), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys(down...), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys(left...), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys(right...), key.WithHelp("→", "right")),
		NextPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Pane")),

		Add:       key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "Add")),
		Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Rename")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Delete")),
		AddTag:    key.NewBinding(key.WithKeys("t", "enter"), key.WithHelp("t", "Tag")),
		DeleteTag: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "Remove Tag")),
		EditText:  key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "Edit")),
		ClearText: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Clear")),

		New:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "New")),
		Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "Open")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "Save")),
		SaveAs:     key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "Save As")),
		Close:      key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "Close")),
		LoadPreset: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "Preset")),
		NewPreset:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "New Preset")),

		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
		Quit:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
		Force: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
	}
}

// ShortHelp returns the bindings shown in the compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Save, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped into help columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Open, k.Save, k.SaveAs, k.Close},
		{k.LoadPreset, k.NewPreset, k.NextPane, k.Help, k.Quit},
		{k.Add, k.Rename, k.Delete, k.AddTag, k.DeleteTag},
		{k.EditText, k.ClearText},
	}
}
