package document

import "slices"

// GlobalGroup is the preset key whose suggestions apply to every group.
const GlobalGroup = "Global"

// Preset lists default groups for new questions and suggested tags per group.
// A preset is never mutated once it is shared; replace it instead.
type Preset struct {
	Tags   map[string][]string `json:"tags"`
	Groups []string            `json:"groups"`
}

// NewPreset builds a preset, copying its inputs.
func NewPreset(tags map[string][]string, groups []string) *Preset {
	p := &Preset{
		Tags:   make(map[string][]string, len(tags)),
		Groups: slices.Clone(groups),
	}
	for k, v := range tags {
		p.Tags[k] = slices.Clone(v)
	}
	return p
}

// Suggestions returns the group-specific suggestions, or nil.
func (p *Preset) Suggestions(group string) []string {
	if p == nil {
		return nil
	}
	return p.Tags[group]
}

// Global returns the suggestions offered for every group.
func (p *Preset) Global() []string {
	return p.Suggestions(GlobalGroup)
}

// DefaultGroups returns a copy of the groups seeded into new questions.
func (p *Preset) DefaultGroups() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.Groups)
}
