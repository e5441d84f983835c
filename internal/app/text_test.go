package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"

	"console/internal/types"
)

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello", 10); got != "hello" {
		t.Fatalf("short strings pass through, got %q", got)
	}
	got := truncateToWidth("a long client name", 8)
	if xansi.StringWidth(got) > 8 {
		t.Fatalf("truncated string too wide: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if got := truncateToWidth("anything", 0); got != "" {
		t.Fatalf("zero width yields empty, got %q", got)
	}
}

func TestPadToWidth(t *testing.T) {
	if got := padToWidth("ab", 5); got != "ab   " {
		t.Fatalf("unexpected padding: %q", got)
	}
	if got := padToWidth("abcdef", 3); got != "abcdef" {
		t.Fatalf("padToWidth must not truncate: %q", got)
	}
}

func TestRenderTableHighlightsSelection(t *testing.T) {
	columns := []tableColumn{{title: "NAME", width: 10}, {title: "EMAIL", width: 16}}
	rows := [][]string{
		{"Acme", "a@acme.test"},
		{"Globex", "b@globex.test"},
	}
	out := xansi.Strip(renderTable(columns, rows, 1, 10))
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "Globex") {
		t.Fatalf("table missing content:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	out := xansi.Strip(renderTable(clientColumns(80), nil, 0, 10))
	if !strings.Contains(out, "no records") {
		t.Fatalf("expected empty marker:\n%s", out)
	}
}

func TestRenderTableScrollsWithSelection(t *testing.T) {
	columns := []tableColumn{{title: "N", width: 6}}
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{string(rune('a' + i))}
	}
	out := xansi.Strip(renderTable(columns, rows, 19, 5))
	if !strings.Contains(out, "t") {
		t.Fatalf("selected row must be visible:\n%s", out)
	}
	if strings.Contains(out, "\na ") {
		t.Fatalf("rows far above the selection should scroll out:\n%s", out)
	}
}

func TestRenderStatsCountsOpenTickets(t *testing.T) {
	tickets := []types.Ticket{
		{ID: "t1", Status: types.TicketOpen},
		{ID: "t2", Status: types.TicketClosed},
		{ID: "t3", Status: types.TicketInProgress},
	}
	out := xansi.Strip(renderStats(nil, tickets, nil))
	if !strings.Contains(out, "open tickets") {
		t.Fatalf("stats missing open tickets card:\n%s", out)
	}
	if !strings.Contains(out, "2") {
		t.Fatalf("expected 2 open tickets in stats:\n%s", out)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := renderMarkdown("", 40); got != "" {
		t.Fatalf("empty input renders empty, got %q", got)
	}
	out := renderMarkdown("# Restart the printer\n\n1. Power cycle.", 40)
	if out == "" {
		t.Fatalf("expected rendered output")
	}
	for _, line := range strings.Split(xansi.Strip(out), "\n") {
		if xansi.StringWidth(line) > 40 {
			t.Fatalf("rendered line exceeds width: %q", line)
		}
	}
}
