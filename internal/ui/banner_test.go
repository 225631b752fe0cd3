package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderBannerIncludesSubtitle(t *testing.T) {
	out := RenderBanner(120)
	assert.NotContains(t, out, "\x1b]")
	assert.Contains(t, plain(out), "Question Bank Editor")
	assert.Greater(t, strings.Count(out, "\n"), 3)
}

func TestRenderBannerCompactWhenNarrow(t *testing.T) {
	out := RenderBanner(30)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, plain(out), "qment")
	assert.LessOrEqual(t, lipgloss.Width(out), 30)
}
