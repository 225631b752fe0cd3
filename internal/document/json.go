package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type questionJSON struct {
	Groups   map[string][]string `json:"groups"`
	Sections json.RawMessage     `json:"sections"`
}

// MarshalJSON writes questions keyed by decimal number, ascending.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"questions":{`)
	first := true
	for n, q := range d.Questions() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(strconv.FormatUint(uint64(n), 10))
		buf.Write(key)
		buf.WriteByte(':')
		body, err := q.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", n, err)
		}
		buf.Write(body)
	}
	buf.WriteString(`}}`)
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the document contents. The questions object is
// required, and its keys must be canonical non-negative 32-bit decimal
// numbers, so no two keys name the same question.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Questions map[string]*Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if raw.Questions == nil {
		return fmt.Errorf("%w: missing questions object", ErrParse)
	}
	questions := make(map[uint32]*Question, len(raw.Questions))
	for key, q := range raw.Questions {
		n, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: question key %q is not a number", ErrParse, key)
		}
		if strconv.FormatUint(n, 10) != key {
			return fmt.Errorf("%w: question key %q is not in canonical form", ErrParse, key)
		}
		if q == nil {
			q = NewQuestion()
		}
		questions[uint32(n)] = q
	}
	d.questions = questions
	return nil
}

// MarshalJSON writes groups as tag arrays and sections as an object whose key
// order is the display order.
func (q *Question) MarshalJSON() ([]byte, error) {
	groups := make(map[string][]string, len(q.groups))
	for name, tags := range q.groups {
		groups[name] = tags.Slice()
	}
	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return nil, err
	}

	var sections bytes.Buffer
	sections.WriteByte('{')
	first := true
	for name, s := range q.Sections() {
		if !first {
			sections.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		sections.Write(key)
		sections.WriteByte(':')
		sections.Write(value)
	}
	sections.WriteByte('}')

	var buf bytes.Buffer
	buf.WriteString(`{"groups":`)
	buf.Write(groupsJSON)
	buf.WriteString(`,"sections":`)
	buf.Write(sections.Bytes())
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a question, keeping the section order found in data.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	out := Question{groups: make(map[string]*TagSet, len(raw.Groups))}
	for name, tags := range raw.Groups {
		out.groups[name] = NewTagSet(tags...)
	}
	if err := decodeSections(raw.Sections, &out.sections); err != nil {
		return err
	}
	*q = out
	return nil
}

func decodeSections(data json.RawMessage, into *orderedSections) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: sections: %w", ErrParse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: sections must be an object", ErrParse)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: sections: %w", ErrParse, err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: section key must be a string", ErrParse)
		}
		var s Section
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("%w: section %q: %w", ErrParse, name, err)
		}
		into.set(name, &s)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: sections: %w", ErrParse, err)
	}
	return nil
}
