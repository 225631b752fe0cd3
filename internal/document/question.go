package document

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Default section names, in display order.
const (
	SectionQuestion   = "Question"
	SectionMarkScheme = "Mark Scheme"
)

// Section is a named slot of optional free text. A nil Text means the section
// has not been created yet; a non-nil empty string is a valid edited state.
type Section struct {
	Text *string `json:"text"`
}

// HasText reports whether the section text exists (possibly empty).
func (s *Section) HasText() bool {
	return s.Text != nil
}

// SetText stores text, making the section present.
func (s *Section) SetText(text string) {
	s.Text = &text
}

// Clear makes the section absent again.
func (s *Section) Clear() {
	s.Text = nil
}

// Question owns its tag groups and its ordered sections.
type Question struct {
	groups   map[string]*TagSet
	sections orderedSections
}

// NewQuestion returns a question with the two default sections and no groups.
func NewQuestion() *Question {
	q := &Question{groups: make(map[string]*TagSet)}
	q.AddSection(SectionQuestion)
	q.AddSection(SectionMarkScheme)
	return q
}

// NewSeededQuestion returns a default question with an empty group for each
// name, in order. Repeated names are skipped.
func NewSeededQuestion(groups []string) *Question {
	q := NewQuestion()
	for _, name := range groups {
		q.AddGroup(name)
	}
	return q
}

// Groups yields each group and its mutable tag set, sorted by name. Keys are
// snapshotted first, so groups may be removed while iterating.
func (q *Question) Groups() iter.Seq2[string, *TagSet] {
	return func(yield func(string, *TagSet) bool) {
		for _, name := range q.GroupNames() {
			tags, ok := q.groups[name]
			if !ok {
				continue
			}
			if !yield(name, tags) {
				return
			}
		}
	}
}

// GroupNames returns the group names in iteration order.
func (q *Question) GroupNames() []string {
	names := make([]string, 0, len(q.groups))
	for name := range q.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddGroup creates an empty group. An existing group is left untouched, so
// callers that must not reuse a name check HasGroup first.
func (q *Question) AddGroup(name string) {
	if q.groups == nil {
		q.groups = make(map[string]*TagSet)
	}
	if _, ok := q.groups[name]; ok {
		return
	}
	q.groups[name] = NewTagSet()
}

// RenameGroup moves the tag set from oldName to newName, replacing whatever
// newName held.
func (q *Question) RenameGroup(oldName, newName string) error {
	tags, ok := q.groups[oldName]
	if !ok {
		return fmt.Errorf("group %q: %w", oldName, ErrNotFound)
	}
	delete(q.groups, oldName)
	q.groups[newName] = tags
	return nil
}

func (q *Question) RemoveGroup(name string) {
	delete(q.groups, name)
}

func (q *Question) HasGroup(name string) bool {
	_, ok := q.groups[name]
	return ok
}

// Group returns the mutable tag set for name.
func (q *Question) Group(name string) (*TagSet, error) {
	tags, ok := q.groups[name]
	if !ok {
		return nil, fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	return tags, nil
}

// GroupCount returns the number of groups.
func (q *Question) GroupCount() int {
	return len(q.groups)
}

// Sections yields sections in display order.
func (q *Question) Sections() iter.Seq2[string, *Section] {
	return q.sections.all()
}

// SectionNames returns the section names in display order.
func (q *Question) SectionNames() []string {
	return slices.Clone(q.sections.names)
}

// Section returns the mutable section called name.
func (q *Question) Section(name string) (*Section, error) {
	s, ok := q.sections.get(name)
	if !ok {
		return nil, fmt.Errorf("section %q: %w", name, ErrNotFound)
	}
	return s, nil
}

// AddSection inserts an empty section. A new name is appended; an existing one
// keeps its position and is reset.
func (q *Question) AddSection(name string) {
	q.sections.set(name, &Section{})
}

func (q *Question) RemoveSection(name string) {
	q.sections.remove(name)
}

// orderedSections keeps section names in insertion order.
type orderedSections struct {
	names []string
	byKey map[string]*Section
}

func (o *orderedSections) get(name string) (*Section, bool) {
	s, ok := o.byKey[name]
	return s, ok
}

func (o *orderedSections) set(name string, s *Section) {
	if o.byKey == nil {
		o.byKey = make(map[string]*Section)
	}
	if _, ok := o.byKey[name]; !ok {
		o.names = append(o.names, name)
	}
	o.byKey[name] = s
}

func (o *orderedSections) remove(name string) {
	if _, ok := o.byKey[name]; !ok {
		return
	}
	delete(o.byKey, name)
	if i := slices.Index(o.names, name); i >= 0 {
		o.names = slices.Delete(o.names, i, i+1)
	}
}

func (o *orderedSections) all() iter.Seq2[string, *Section] {
	return func(yield func(string, *Section) bool) {
		for _, name := range slices.Clone(o.names) {
			s, ok := o.byKey[name]
			if !ok {
				continue
			}
			if !yield(name, s) {
				return
			}
		}
	}
}
