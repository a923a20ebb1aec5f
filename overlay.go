package main

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlay draws a block of content on top of the rendered frame at character
// position (x, y). Rows outside the frame are dropped; within a row the
// frame's prefix and suffix survive around the block.
func (m model) overlay(base, content string, x, y int) string {
	frame := splitLines(base)
	block := splitLines(content)
	blockWidth := maxLineWidth(block)

	for i, line := range block {
		row := y + i
		if row < 0 || row >= len(frame) || row >= m.height {
			continue
		}
		frame[row] = spliceLine(frame[row], padRight(line, blockWidth), x, m.width)
	}
	return strings.Join(frame, "\n")
}

// spliceLine overwrites the cells of target from x onward with insert. Both
// cuts are ANSI-aware so styled frames survive the splice.
func spliceLine(target, insert string, x, width int) string {
	target = padRight(target, width)

	left := ansi.Truncate(target, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(insert)
	right := ""
	if width > 0 {
		right = ansi.TruncateLeft(target, end, "")
		if gap := width - end - ansi.StringWidth(right); gap > 0 {
			right = strings.Repeat(" ", gap) + right
		}
	}
	return left + insert + right
}
