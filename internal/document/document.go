// Package document holds the question bank model: documents of numbered
// questions, their tag groups and text sections, and the presets used to seed
// new questions.
package document

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrNotFound is returned when a question, group or section is absent.
	ErrNotFound = errors.New("not found")
	// ErrParse is returned when JSON input does not decode into the model.
	ErrParse = errors.New("parse failure")
)

// Document maps question numbers to questions.
type Document struct {
	questions map[uint32]*Question
}

// New returns an empty document.
func New() *Document {
	return &Document{questions: make(map[uint32]*Question)}
}

// Questions yields questions in ascending number order. Numbers are read when
// iteration starts; a question removed mid-iteration is skipped.
func (d *Document) Questions() iter.Seq2[uint32, *Question] {
	return func(yield func(uint32, *Question) bool) {
		for _, n := range d.Numbers() {
			q, ok := d.questions[n]
			if !ok {
				continue
			}
			if !yield(n, q) {
				return
			}
		}
	}
}

// Numbers returns the question numbers in ascending order.
func (d *Document) Numbers() []uint32 {
	nums := make([]uint32, 0, len(d.questions))
	for n := range d.questions {
		nums = append(nums, n)
	}
	slices.Sort(nums)
	return nums
}

// Question returns the question numbered n. It never creates one.
func (d *Document) Question(n uint32) (*Question, error) {
	q, ok := d.questions[n]
	if !ok {
		return nil, fmt.Errorf("question %d: %w", n, ErrNotFound)
	}
	return q, nil
}

// HasQuestion reports whether n is in use.
func (d *Document) HasQuestion(n uint32) bool {
	_, ok := d.questions[n]
	return ok
}

// AddQuestion stores a default question at n, replacing any existing one.
func (d *Document) AddQuestion(n uint32) {
	d.AddSeededQuestion(n, NewQuestion())
}

// AddSeededQuestion stores q at n, replacing any existing one.
func (d *Document) AddSeededQuestion(n uint32, q *Question) {
	if d.questions == nil {
		d.questions = make(map[uint32]*Question)
	}
	d.questions[n] = q
}

// RemoveQuestion deletes n if present.
func (d *Document) RemoveQuestion(n uint32) {
	delete(d.questions, n)
}

func (d *Document) Len() int {
	return len(d.questions)
}

// MaxNumber returns the highest question number, or false when empty.
func (d *Document) MaxNumber() (uint32, bool) {
	if len(d.questions) == 0 {
		return 0, false
	}
	var max uint32
	for n := range d.questions {
		if n > max {
			max = n
		}
	}
	return max, true
}
