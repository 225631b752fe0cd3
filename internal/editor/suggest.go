package editor

import (
	"slices"
	"strings"

	"github.com/gravitrone/qment/internal/document"
)

// SuggestionPool returns every completion that fits the pending edit, before
// prefix filtering. Tag entries get the group's preset suggestions followed
// by the Global ones, minus tags the group already has. Group entries get the
// preset's group names the question does not have yet.
func (e *Editor) SuggestionPool() []string {
	preset := e.Preset()
	switch g := e.ghost.(type) {
	case GhostTag:
		var existing *document.TagSet
		if q, err := e.doc.Question(g.Question); err == nil {
			existing, _ = q.Group(g.Group)
		}
		return dedupe(func(s string) bool {
			return existing != nil && existing.Has(s)
		}, preset.Suggestions(g.Group), preset.Global())

	case GhostGroupName:
		q, err := e.doc.Question(g.Question)
		if err != nil {
			return nil
		}
		named := make([]string, 0, len(preset.Tags))
		for name := range preset.Tags {
			if name != document.GlobalGroup {
				named = append(named, name)
			}
		}
		slices.Sort(named)
		return dedupe(q.HasGroup, preset.DefaultGroups(), named)
	}
	return nil
}

// Suggestions returns the pool entries that start with the pending text,
// ignoring case.
func (e *Editor) Suggestions() []string {
	prefix := strings.ToLower(e.ghost.Value())
	pool := e.SuggestionPool()
	out := pool[:0:0]
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			out = append(out, s)
		}
	}
	return out
}

func dedupe(skip func(string) bool, lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if s == "" || skip(s) {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
