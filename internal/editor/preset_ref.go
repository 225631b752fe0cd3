package editor

import (
	"sync/atomic"

	"github.com/gravitrone/qment/internal/document"
)

var emptyPreset = document.NewPreset(nil, nil)

// PresetRef is the shared handle to the active preset. Replacing the preset
// swaps the pointer; questions created earlier keep the groups they were
// seeded with.
type PresetRef struct {
	ptr atomic.Pointer[document.Preset]
}

// NewPresetRef returns a handle holding p.
func NewPresetRef(p *document.Preset) *PresetRef {
	r := &PresetRef{}
	r.Store(p)
	return r
}

// Load returns the active preset. It is never nil.
func (r *PresetRef) Load() *document.Preset {
	if r == nil {
		return emptyPreset
	}
	if p := r.ptr.Load(); p != nil {
		return p
	}
	return emptyPreset
}

// Store replaces the active preset. A nil preset resets to an empty one.
func (r *PresetRef) Store(p *document.Preset) {
	if p == nil {
		p = emptyPreset
	}
	r.ptr.Store(p)
}
