// Package display renders departure rows as a fixed-width, multi-column
// terminal grid.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/adamatan/mbta/internal/board"
)

const (
	colWidth   = 32
	maxPerStop = 3

	liveGlyph   = "🟢"
	schedGlyph  = "📅"
	noTripsText = "No upcoming trips"
)

// Column is one stop's slot in a grid block.
type Column struct {
	Name string
	Rows []board.Row
}

// RenderGrid renders a titled block of stop columns. Each stop shows at most
// three rows; the first rendered row with live data gets seconds precision to
// pick out the most imminent arrival.
func RenderGrid(title string, columns []Column, now time.Time) string {
	names := make([][]string, len(columns))
	cells := make([][]string, len(columns))
	secondsUsed := false
	for i, col := range columns {
		names[i] = wrapName(col.Name)
		cells[i] = renderRows(col.Rows, now, &secondsUsed)
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteByte('\n')
	writeLines(&b, names)
	writeLines(&b, cells)
	b.WriteByte('\n')
	return b.String()
}

// writeLines prints one set of per-column line lists row by row, padding every
// cell to the column width with a two-space gutter.
func writeLines(b *strings.Builder, columns [][]string) {
	height := 0
	for _, lines := range columns {
		if len(lines) > height {
			height = len(lines)
		}
	}
	for line := 0; line < height; line++ {
		for _, lines := range columns {
			text := ""
			if line < len(lines) {
				text = lines[line]
			}
			b.WriteString(padToWidth(text, colWidth))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
}

// renderRows renders at most maxPerStop rows for one stop. secondsUsed is
// shared across the whole block so that only the first live row carries
// seconds.
func renderRows(rows []board.Row, now time.Time, secondsUsed *bool) []string {
	var out []string
	for _, r := range rows {
		if len(out) >= maxPerStop {
			break
		}
		switch {
		case !r.Predicted.IsZero():
			withSeconds := !*secondsUsed
			*secondsUsed = true
			cell := liveGlyph + " " + formatClock(r.Predicted, now, withSeconds)
			if r.StopsAway > 0 {
				cell += fmt.Sprintf(" (%d stop%s)", r.StopsAway, plural(r.StopsAway))
			}
			out = append(out, cell)
		case !r.Scheduled.IsZero():
			out = append(out, schedGlyph+" "+formatClock(r.Scheduled, now, false))
		}
	}
	if len(out) == 0 {
		out = append(out, noTripsText)
	}
	return out
}

// formatClock renders a wall-clock time with a relative annotation. Times
// within a minute of now show bare.
func formatClock(t, now time.Time, withSeconds bool) string {
	layout := "15:04"
	if withSeconds {
		layout = "15:04:05"
	}
	clock := t.Format(layout)
	diff := minutesUntil(t, now)
	switch {
	case diff == 0:
		return clock
	case diff < 0:
		return fmt.Sprintf("%s (%dm ago)", clock, -diff)
	default:
		return fmt.Sprintf("%s (in %dm)", clock, diff)
	}
}

// wrapName word-wraps a stop name to the column width without breaking words.
func wrapName(name string) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(name) {
		switch {
		case line == "":
			line = word
		case displayWidth(line)+1+displayWidth(word) <= colWidth:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// displayWidth is the terminal cell width of s. The indicator glyphs render
// two cells wide in common terminals; padding must account for that or the
// columns drift.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// padToWidth right-pads s with spaces to the target display width.
func padToWidth(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func minutesUntil(t, now time.Time) int {
	return int(t.Sub(now).Minutes())
}
