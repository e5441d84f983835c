package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func containsPage(pages []page, target page) bool {
	for _, p := range pages {
		if p == target {
			return true
		}
	}
	return false
}

func TestSidebarHidesClientsForNonAdmins(t *testing.T) {
	admin := NewSidebarController(true)
	tech := NewSidebarController(false)

	if !containsPage(admin.pages, pageClients) {
		t.Fatalf("admin sidebar must show the clients page")
	}
	if containsPage(tech.pages, pageClients) {
		t.Fatalf("non-admin sidebar must not show the clients page")
	}
	for _, p := range []page{pageDashboard, pageTickets, pageAssets, pageAssistant} {
		if !containsPage(tech.pages, p) {
			t.Fatalf("page %v missing from non-admin sidebar", p)
		}
	}
}

func TestSidebarCountsAppearInView(t *testing.T) {
	c := NewSidebarController(true)
	c.SetSize(24, 10)
	c.SetCounts(3, 7, 5)

	view := xansi.Strip(c.View())
	for _, want := range []string{"Clients (3)", "Tickets (7)", "Assets (5)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in sidebar view:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "Dashboard") {
		t.Fatalf("dashboard entry missing:\n%s", view)
	}
}

func TestSidebarSelect(t *testing.T) {
	c := NewSidebarController(true)
	c.Select(pageAssets)
	if got := c.Selected(); got != pageAssets {
		t.Fatalf("expected assets selected, got %v", got)
	}
	// Selecting a hidden page leaves the cursor alone.
	tech := NewSidebarController(false)
	tech.Select(pageTickets)
	tech.Select(pageClients)
	if got := tech.Selected(); got != pageTickets {
		t.Fatalf("hidden page selection should be ignored, got %v", got)
	}
}
