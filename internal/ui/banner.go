package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
  ██████  ███    ███ ███████ ███    ██ ████████
 ██    ██ ████  ████ ██      ████   ██    ██
 ██    ██ ██ ████ ██ █████   ██ ██  ██    ██
 ██ ▄▄ ██ ██  ██  ██ ██      ██  ██ ██    ██
  ██████  ██      ██ ███████ ██   ████    ██
     ▀▀`

const bannerSubtitle = "Question Bank Editor"

// RenderBanner returns the styled title block with its subtitle. A compact
// one-line title is used when width cannot fit the art.
func RenderBanner(width int) string {
	lines := strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n")

	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if width > 0 && width < maxWidth+2 {
		return BannerStyle.Render("qment") + " " + MutedStyle.Render(bannerSubtitle)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(BannerStyle.Render(line))
		b.WriteString("\n")
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(maxWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)
	return b.String() + subtitle
}
