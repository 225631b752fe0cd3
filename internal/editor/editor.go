// Package editor implements the edit session over one open document: the
// current question and section selection, and the single pending text entry
// (the ghost input) through which questions, groups and tags are created.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/gravitrone/qment/internal/document"
)

// ErrNoSelection is returned by gestures that need a selected question.
var ErrNoSelection = errors.New("no question selected")

// Editor is an edit session. It is not safe for concurrent use; every call
// is made while handling a single UI gesture.
type Editor struct {
	doc     *document.Document
	path    string
	dirty   bool
	presets *PresetRef
	log     *slog.Logger

	current    uint32
	hasCurrent bool
	section    string

	ghost Ghost
}

// New opens a session on doc stored at path. presets may be shared with
// other sessions; a nil logger discards output.
func New(doc *document.Document, path string, presets *PresetRef, logger *slog.Logger) *Editor {
	if doc == nil {
		doc = document.New()
	}
	if presets == nil {
		presets = NewPresetRef(nil)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Editor{
		doc:     doc,
		path:    path,
		presets: presets,
		log:     logger.With("component", "editor"),
		ghost:   GhostEmpty{},
	}
}

func (e *Editor) Document() *document.Document { return e.doc }

func (e *Editor) Path() string { return e.path }

// SetPath changes where the document is saved.
func (e *Editor) SetPath(path string) {
	e.path = path
}

// Dirty reports whether the document changed since it was opened or saved.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkSaved clears the dirty flag after a successful write.
func (e *Editor) MarkSaved() {
	e.dirty = false
}

// Preset returns the active preset.
func (e *Editor) Preset() *document.Preset { return e.presets.Load() }

// --- Selection ---

// CurrentQuestion returns the selected question number.
func (e *Editor) CurrentQuestion() (uint32, bool) {
	if !e.hasCurrent {
		return 0, false
	}
	return e.current, true
}

// SelectQuestion makes n the current question. The pending ghost is kept.
func (e *Editor) SelectQuestion(n uint32) error {
	if !e.doc.HasQuestion(n) {
		return fmt.Errorf("select question %d: %w", n, document.ErrNotFound)
	}
	e.current = n
	e.hasCurrent = true
	return nil
}

// ClearSelection deselects the current question.
func (e *Editor) ClearSelection() {
	e.current = 0
	e.hasCurrent = false
}

// Question returns the selected question.
func (e *Editor) Question() (*document.Question, error) {
	if !e.hasCurrent {
		return nil, ErrNoSelection
	}
	return e.doc.Question(e.current)
}

// CurrentSection returns the selected section name. Until one is chosen, or
// when the selected question lacks it, the question's first section is used.
func (e *Editor) CurrentSection() string {
	q, err := e.Question()
	if err != nil {
		return e.section
	}
	if _, err := q.Section(e.section); err == nil {
		return e.section
	}
	if names := q.SectionNames(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// SelectSection makes name the current section.
func (e *Editor) SelectSection(name string) error {
	q, err := e.Question()
	if err != nil {
		return err
	}
	if _, err := q.Section(name); err != nil {
		return err
	}
	e.section = name
	return nil
}

// --- Immediate mutations ---

// RemoveQuestion deletes question n, clearing the selection if it was n.
func (e *Editor) RemoveQuestion(n uint32) {
	if !e.doc.HasQuestion(n) {
		return
	}
	e.doc.RemoveQuestion(n)
	if e.hasCurrent && e.current == n {
		e.ClearSelection()
	}
	e.dirty = true
	e.log.Debug("question removed", "question", n)
}

// RemoveGroup deletes a group of the selected question.
func (e *Editor) RemoveGroup(name string) error {
	q, err := e.Question()
	if err != nil {
		return err
	}
	if !q.HasGroup(name) {
		return fmt.Errorf("group %q: %w", name, document.ErrNotFound)
	}
	q.RemoveGroup(name)
	e.dirty = true
	return nil
}

// RemoveTag deletes tag from group of the selected question.
func (e *Editor) RemoveTag(group, tag string) error {
	q, err := e.Question()
	if err != nil {
		return err
	}
	tags, err := q.Group(group)
	if err != nil {
		return err
	}
	if !tags.Remove(tag) {
		return fmt.Errorf("tag %q: %w", tag, document.ErrNotFound)
	}
	e.dirty = true
	return nil
}

// CreateSectionText makes an absent section present with empty text. A
// section that already has text is left alone.
func (e *Editor) CreateSectionText(name string) error {
	s, err := e.currentSection(name)
	if err != nil {
		return err
	}
	if s.HasText() {
		return nil
	}
	s.SetText("")
	e.dirty = true
	return nil
}

// SetSectionText replaces the text of a section.
func (e *Editor) SetSectionText(name, text string) error {
	s, err := e.currentSection(name)
	if err != nil {
		return err
	}
	if s.HasText() && *s.Text == text {
		return nil
	}
	s.SetText(text)
	e.dirty = true
	return nil
}

// ClearSectionText makes a section absent again.
func (e *Editor) ClearSectionText(name string) error {
	s, err := e.currentSection(name)
	if err != nil {
		return err
	}
	if !s.HasText() {
		return nil
	}
	s.Clear()
	e.dirty = true
	return nil
}

func (e *Editor) currentSection(name string) (*document.Section, error) {
	q, err := e.Question()
	if err != nil {
		return nil, err
	}
	return q.Section(name)
}

// --- Ghost input ---

// Ghost returns the pending edit.
func (e *Editor) Ghost() Ghost { return e.ghost }

// Pending reports whether an edit is pending.
func (e *Editor) Pending() bool {
	_, empty := e.ghost.(GhostEmpty)
	return !empty
}

// BeginAddQuestion opens a question number entry prefilled with one past the
// highest existing number, or 0 for an empty document.
func (e *Editor) BeginAddQuestion() {
	text := "0"
	if max, ok := e.doc.MaxNumber(); ok {
		if max == math.MaxUint32 {
			text = ""
		} else {
			text = strconv.FormatUint(uint64(max)+1, 10)
		}
	}
	e.open(GhostQuestionNumber{Text: text})
}

// BeginAddGroup opens a group name entry on the selected question.
func (e *Editor) BeginAddGroup() error {
	if _, err := e.Question(); err != nil {
		return err
	}
	e.open(GhostGroupName{Question: e.current})
	return nil
}

// BeginRenameGroup opens a rename entry prefilled with the group's name.
func (e *Editor) BeginRenameGroup(name string) error {
	q, err := e.Question()
	if err != nil {
		return err
	}
	if !q.HasGroup(name) {
		return fmt.Errorf("group %q: %w", name, document.ErrNotFound)
	}
	target := name
	e.open(GhostGroupName{Question: e.current, Text: name, RenameTarget: &target})
	return nil
}

// BeginAddTag opens a tag entry for group on the selected question.
func (e *Editor) BeginAddTag(group string) error {
	q, err := e.Question()
	if err != nil {
		return err
	}
	if !q.HasGroup(group) {
		return fmt.Errorf("group %q: %w", group, document.ErrNotFound)
	}
	e.open(GhostTag{Question: e.current, Group: group})
	return nil
}

// Type replaces the pending text. It does nothing when no edit is pending.
func (e *Editor) Type(text string) {
	e.ghost = withText(e.ghost, text)
}

// Discard drops the pending edit without applying it.
func (e *Editor) Discard() Ghost {
	prev := e.ghost
	e.ghost = GhostEmpty{}
	if _, empty := prev.(GhostEmpty); !empty {
		e.log.Debug("ghost input discarded", "kind", ghostKind(prev), "text", prev.Value(), "reason", "cancelled")
	}
	return prev
}

// Commit applies the pending edit if it is valid and resets to GhostEmpty.
// Invalid input is dropped; the result says why.
func (e *Editor) Commit() CommitResult {
	g := e.ghost
	e.ghost = GhostEmpty{}

	res := e.apply(g)
	res.Ghost = g
	switch {
	case res.Applied:
		e.log.Debug("ghost input committed", "kind", ghostKind(g), "text", g.Value())
	case res.Reason != ReasonEmpty:
		e.log.Debug("ghost input discarded", "kind", ghostKind(g), "text", g.Value(), "reason", string(res.Reason))
	}
	return res
}

func (e *Editor) open(g Ghost) {
	if prev := e.ghost; prev != nil {
		if _, empty := prev.(GhostEmpty); !empty {
			e.log.Debug("ghost input replaced", "kind", ghostKind(prev), "text", prev.Value())
		}
	}
	e.ghost = g
}

func (e *Editor) apply(g Ghost) CommitResult {
	switch g := g.(type) {
	case GhostQuestionNumber:
		n, err := strconv.ParseUint(g.Text, 10, 32)
		if err != nil {
			return CommitResult{Reason: ReasonParseFailure}
		}
		num := uint32(n)
		e.doc.AddSeededQuestion(num, document.NewSeededQuestion(e.Preset().DefaultGroups()))
		e.current = num
		e.hasCurrent = true
		e.dirty = true
		return CommitResult{Applied: true, Reason: ReasonApplied}

	case GhostGroupName:
		q, err := e.doc.Question(g.Question)
		if err != nil {
			return CommitResult{Reason: ReasonStaleTarget}
		}
		if g.Text == "" {
			return CommitResult{Reason: ReasonBlank}
		}
		if g.RenameTarget != nil {
			if *g.RenameTarget == g.Text {
				return CommitResult{Applied: true, Reason: ReasonApplied}
			}
			if err := q.RenameGroup(*g.RenameTarget, g.Text); err != nil {
				return CommitResult{Reason: ReasonStaleTarget}
			}
			e.dirty = true
			return CommitResult{Applied: true, Reason: ReasonApplied}
		}
		if q.HasGroup(g.Text) {
			return CommitResult{Reason: ReasonDuplicate}
		}
		q.AddGroup(g.Text)
		e.dirty = true
		return CommitResult{Applied: true, Reason: ReasonApplied}

	case GhostTag:
		q, err := e.doc.Question(g.Question)
		if err != nil {
			return CommitResult{Reason: ReasonStaleTarget}
		}
		tags, err := q.Group(g.Group)
		if err != nil {
			return CommitResult{Reason: ReasonStaleTarget}
		}
		if g.Text == "" {
			return CommitResult{Reason: ReasonBlank}
		}
		if tags.Add(g.Text) {
			e.dirty = true
		}
		return CommitResult{Applied: true, Reason: ReasonApplied}
	}
	return CommitResult{Reason: ReasonEmpty}
}

func ghostKind(g Ghost) string {
	switch g := g.(type) {
	case GhostQuestionNumber:
		return "question"
	case GhostGroupName:
		if g.IsRename() {
			return "rename-group"
		}
		return "group"
	case GhostTag:
		return "tag"
	default:
		return "empty"
	}
}
