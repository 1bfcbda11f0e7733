package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/wotd/pkg/timeutil"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader produces the top bar:
//
//	WOTD  |  2026-10-16  |  3 panels  |  next word in 3h 20m  |  vocabulary.csv
func renderHeader(m *Model) string {
	now := m.clock()
	sep := headerSepStyle.Render(" │ ")

	parts := []string{
		headerBrandStyle.Render("WOTD"),
		sep,
		headerMetaStyle.Render(timeutil.FormatDay(timeutil.DayBucket(now))),
		sep,
		headerMetaStyle.Render(plural(m.ctrl.Len(), "panel")),
		sep,
		headerMetaStyle.Render("next word in " + timeutil.FormatCountdown(timeutil.UntilRollover(now))),
	}
	if m.source != "" {
		parts = append(parts, sep, headerMetaStyle.Render(truncate(m.source, 40)))
	}

	return headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left string
	if m.statusMsg != "" {
		if m.err != nil {
			left = statusErrStyle.Render(m.statusMsg)
		} else {
			left = statusStyle.Render(m.statusMsg)
		}
	}

	right := m.help.View(m.keys)
	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Background(colorBgSurface).Width(m.width).Render(left),
			right)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

func (m Model) today() string {
	return timeutil.FormatDay(timeutil.DayBucket(m.clock()))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
