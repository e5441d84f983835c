package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return xansi.Truncate(s, width, "")
	}
	return xansi.Truncate(s, width, "…")
}

func padToWidth(s string, width int) string {
	gap := width - xansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func indentBlock(block string, indent int) string {
	if indent <= 0 {
		return block
	}
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
