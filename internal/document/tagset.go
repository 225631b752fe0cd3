package document

import (
	"iter"
	"slices"
)

// TagSet is an insertion-ordered set of tags.
type TagSet struct {
	order []string
	index map[string]struct{}
}

// NewTagSet creates a set holding the given tags, duplicates dropped.
func NewTagSet(tags ...string) *TagSet {
	s := &TagSet{index: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add inserts tag. Returns false when it was already present.
func (s *TagSet) Add(tag string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[tag]; ok {
		return false
	}
	s.index[tag] = struct{}{}
	s.order = append(s.order, tag)
	return true
}

// Remove deletes tag. Returns false when it was absent.
func (s *TagSet) Remove(tag string) bool {
	if _, ok := s.index[tag]; !ok {
		return false
	}
	delete(s.index, tag)
	if i := slices.Index(s.order, tag); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

func (s *TagSet) Has(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

func (s *TagSet) Len() int {
	return len(s.order)
}

// All yields tags in insertion order over a snapshot.
func (s *TagSet) All() iter.Seq[string] {
	return slices.Values(s.Slice())
}

// Slice returns a copy of the tags in insertion order.
func (s *TagSet) Slice() []string {
	return slices.Clone(s.order)
}
