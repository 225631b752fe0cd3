package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 0, boxWidth(0))
	assert.Equal(t, 40, boxWidth(10))
	assert.Equal(t, 70, boxWidth(100))
	assert.Equal(t, 80, boxWidth(200))
	assert.Equal(t, 20, safeBoxWidth(20))
}

func TestTitledBoxFitsNarrowTerminal(t *testing.T) {
	out := TitledBox("Questions", "Q1\nQ2", 20)
	assert.LessOrEqual(t, maxLineWidth(out), 20)
}

func TestTitledBoxPutsTitleInBorder(t *testing.T) {
	out := TitledBox("Tags", "Topic", 80)
	first := strings.Split(out, "\n")[0]
	assert.Contains(t, first, "[ Tags ]")
	assert.Contains(t, out, "Topic")
}

func TestTitledBoxWithoutTitleIsPlainBox(t *testing.T) {
	assert.Equal(t, Box("body", 80), TitledBox("", "body", 80))
}

func TestErrorBoxSanitizesMessage(t *testing.T) {
	out := ErrorBox("Error", "open project: bad\x1b]0;title\x07 file", 80)
	assert.NotContains(t, out, "\x1b]")
	assert.Contains(t, SanitizeText(out), "open project: bad")
}

func TestTableClampsLongValues(t *testing.T) {
	rows := []TableRow{
		{Label: strings.Repeat("Group", 10), Value: strings.Repeat("tag ", 60)},
		{Label: "Questions", Value: "3"},
	}
	out := Table("Summary", rows, 60)
	assert.LessOrEqual(t, maxLineWidth(out), maxLineWidth(Box("x", 60)))
	assert.Contains(t, out, "Questions")
}

func TestTableEmpty(t *testing.T) {
	assert.Equal(t, "", Table("Summary", nil, 60))
}

func TestClampTextWidthFoldsLines(t *testing.T) {
	assert.Equal(t, "a b", ClampTextWidth("a\nb", 10))
	assert.Equal(t, "abc", ClampTextWidth("abcdef", 3))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("hello", 0))
	assert.Equal(t, "he", truncateRunes("hello", 2))
	assert.Equal(t, "你", truncateRunes("你好", 1))
}

func TestIndentPadsEveryLine(t *testing.T) {
	lines := strings.Split(Indent("a\nb\nc", 2), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}

func TestTableGridFixedWidth(t *testing.T) {
	out := TableGrid([]TableColumn{
		{Header: "#", Width: 4, Align: lipgloss.Right},
		{Header: "Groups", Width: 16},
		{Header: "Tags", Width: 10},
	}, [][]string{
		{"1", "Topic", "algebra, review"},
		{"12", "Difficulty\nhard", strings.Repeat("x", 80)},
	}, 50)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 50, lipgloss.Width(line))
	}
	assert.Contains(t, lines[0], "Groups")
	assert.Contains(t, lines[2], "algebra, review")
	assert.Contains(t, lines[3], "Difficulty hard")
}

func TestTableGridNoWidth(t *testing.T) {
	assert.Equal(t, "", TableGrid([]TableColumn{{Header: "#"}}, nil, 0))
}
