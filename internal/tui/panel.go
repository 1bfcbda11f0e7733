package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/wotd/internal/frame"
	"github.com/Mr-Dark-debug/wotd/internal/widget"

	"github.com/charmbracelet/lipgloss"
)

// Frame sizes are stored in pixels; the terminal shows them scaled to cells.
const (
	pixelsPerCol = 10
	pixelsPerRow = 25
)

// panelCells converts a stored size to the inner width and height of a box.
func panelCells(s frame.Size) (cols, rows int) {
	return clamp(s.Width/pixelsPerCol, 22, 60), clamp(s.Height/pixelsPerRow, 6, 20)
}

func colour(c frame.RGBA) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// renderPanels lays the boxes out left to right in layout order, wrapping
// to a new row when the terminal width is used up.
func renderPanels(m *Model) string {
	var rows []string
	var row []string
	used := 0

	for _, id := range m.layoutOrder() {
		w, ok := m.ctrl.Widget(id)
		if !ok {
			continue
		}
		box := renderPanel(w, id == m.focus)
		bw := lipgloss.Width(box)
		if used > 0 && used+bw > m.width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, box)
		used += bw
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderPanel draws one word panel in its configured colours:
//
//	ざせき
//	座席
//	zaseki
//	seat
//
//	look 1/4  Noto Sans JP       ● unlocked
func renderPanel(w *widget.Panel, focused bool) string {
	cfg := w.Config()
	cols, rows := panelCells(cfg.Size)
	mainFg, secondFg := w.Foregrounds()
	bg := colour(w.Background())

	main := lipgloss.NewStyle().Foreground(colour(mainFg)).Background(bg)
	second := lipgloss.NewStyle().Foreground(colour(secondFg)).Background(bg)

	e := w.Entry()
	lines := []string{
		second.Render(e.Kana),
		main.Bold(true).Render(e.Word),
		second.Italic(true).Render(e.Romaji),
		main.Render(truncate(e.English, cols)),
	}

	meta := panelMetaStyle.Background(bg).Render(
		fmt.Sprintf("look %d/%d  %s", cfg.LookatOffset+1, frame.OffsetCycle, truncate(cfg.Font, cols-24)))
	if !w.Locked() {
		meta += panelUnlockedStyle.Background(bg).Render("  ● unlocked")
	}

	for len(lines) < rows-1 {
		lines = append(lines, "")
	}
	lines = append(lines, meta)

	border, borderColor := panelBorder, panelBorderColor
	if focused {
		border, borderColor = panelActiveBorder, panelActiveBorderColor
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		Background(bg).
		Padding(0, 1).
		Width(cols).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}
