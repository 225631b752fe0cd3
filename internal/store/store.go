// Package store reads and writes question bank documents and presets as
// whole-file JSON snapshots.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/gravitrone/qment/internal/document"
)

// ReadText returns the file contents as a string.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteText replaces the file at path. The text goes to a temporary file in
// the same directory first, so a failed write leaves the old file intact.
func WriteText(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadDocument reads and decodes a document. Nothing is returned on failure.
func LoadDocument(path string) (*document.Document, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	doc := document.New()
	if err := json.Unmarshal([]byte(text), doc); err != nil {
		return nil, parseError(path, err)
	}
	return doc, nil
}

// SaveDocument encodes doc as indented JSON and writes it to path.
func SaveDocument(path string, doc *document.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return WriteText(path, string(data)+"\n")
}

// LoadPreset reads a preset. Comments and trailing commas are allowed.
func LoadPreset(path string) (*document.Preset, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return ParsePreset([]byte(text), path)
}

// ParsePreset decodes preset JSON (or JSONC) data. name labels errors.
func ParsePreset(data []byte, name string) (*document.Preset, error) {
	var p document.Preset
	if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
		return nil, parseError(name, err)
	}
	return document.NewPreset(p.Tags, p.Groups), nil
}

// SavePreset writes p as indented JSON.
func SavePreset(path string, p *document.Preset) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return WriteText(path, string(data)+"\n")
}

// StarterPreset is written by `qment preset init` and used when no preset is
// configured.
func StarterPreset(groups []string) *document.Preset {
	if len(groups) == 0 {
		groups = []string{"Topic", "Difficulty"}
	}
	return document.NewPreset(map[string][]string{
		document.GlobalGroup: {"review", "exam"},
		"Difficulty":         {"easy", "medium", "hard"},
	}, groups)
}

func parseError(name string, err error) error {
	if errors.Is(err, document.ErrParse) {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%s: %w: %w", name, document.ErrParse, err)
}
