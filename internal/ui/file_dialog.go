package ui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/qment/internal/ui/components"
)

type dialogMode int

const (
	dialogNewProject dialogMode = iota
	dialogOpenProject
	dialogSaveAs
	dialogLoadPreset
	dialogNewPreset
)

func (d dialogMode) title() string {
	switch d {
	case dialogNewProject:
		return "New Project"
	case dialogOpenProject:
		return "Open Project"
	case dialogSaveAs:
		return "Save Project As"
	case dialogLoadPreset:
		return "Load Preset"
	case dialogNewPreset:
		return "New Preset"
	}
	return ""
}

// existing reports whether the dialog picks a file that must already exist.
func (d dialogMode) existing() bool {
	return d == dialogOpenProject || d == dialogLoadPreset
}

// fileDialog asks for a path, typed or picked from the filesystem. Escape
// cancels and leaves everything as it was.
type fileDialog struct {
	mode     dialogMode
	input    textinput.Model
	picker   filepicker.Model
	browsing bool
	width    int
	height   int

	done      bool
	cancelled bool
	path      string
}

func newFileDialog(mode dialogMode, initial string, width, height int) (fileDialog, tea.Cmd) {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "path/to/file.json"
	if mode == dialogLoadPreset || mode == dialogNewPreset {
		input.Placeholder = "path/to/preset.jsonc"
	}
	input.CharLimit = 512
	input.SetValue(initial)
	input.CursorEnd()

	d := fileDialog{
		mode:   mode,
		input:  input,
		width:  width,
		height: height,
	}
	cmd := d.input.Focus()
	return d, cmd
}

func (d fileDialog) Update(msg tea.Msg) (fileDialog, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if d.browsing {
			return d.handleBrowseKeys(msg)
		}
		switch {
		case isBack(msg):
			d.cancelled = true
			return d, nil
		case isEnter(msg):
			path := strings.TrimSpace(d.input.Value())
			if path == "" {
				return d, nil
			}
			d.path = expandHome(path)
			d.done = true
			return d, nil
		case isKey(msg, "ctrl+b"):
			cmd := d.openPicker()
			return d, cmd
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	// Directory reads arrive as internal picker messages.
	var cmd tea.Cmd
	if d.browsing {
		d.picker, cmd = d.picker.Update(msg)
	} else {
		d.input, cmd = d.input.Update(msg)
	}
	return d, cmd
}

func (d fileDialog) handleBrowseKeys(msg tea.KeyMsg) (fileDialog, tea.Cmd) {
	if isBack(msg) || isKey(msg, "ctrl+b") {
		d.browsing = false
		cmd := d.input.Focus()
		return d, cmd
	}
	var cmd tea.Cmd
	d.picker, cmd = d.picker.Update(msg)
	if ok, path := d.picker.DidSelectFile(msg); ok {
		if d.mode.existing() {
			d.path = path
			d.done = true
			return d, nil
		}
		// Picking a file for a new document only seeds the typed path.
		d.input.SetValue(path)
		d.input.CursorEnd()
		d.browsing = false
		cmd := d.input.Focus()
		return d, cmd
	}
	return d, cmd
}

func (d *fileDialog) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".json", ".jsonc"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.Height = 10
	if d.height > 0 {
		fp.Height = min(max(d.height-14, 6), 18)
	}
	fp.CurrentDirectory = pickerStart(d.input.Value())
	d.picker = fp
	d.browsing = true
	d.input.Blur()
	return d.picker.Init()
}

// pickerStart returns the directory the picker opens in for a typed path.
func pickerStart(typed string) string {
	path := expandHome(strings.TrimSpace(typed))
	if path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
		if dir := filepath.Dir(path); dir != "" && dirExists(dir) {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func (d fileDialog) View() string {
	if d.browsing {
		body := d.picker.View() + "\n" + MutedStyle.Render(components.SanitizeOneLine(d.picker.CurrentDirectory))
		return components.InputDialog(d.mode.title(), body, "enter: pick | esc: type path", d.width)
	}
	return components.InputDialog(d.mode.title(), d.input.View(), "enter: submit | ctrl+b: browse | esc: cancel", d.width)
}
