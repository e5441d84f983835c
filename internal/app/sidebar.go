package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"
)

type page int

const (
	pageDashboard page = iota
	pageClients
	pageTickets
	pageAssets
	pageAssistant
)

func (p page) title() string {
	switch p {
	case pageDashboard:
		return "Dashboard"
	case pageClients:
		return "Clients"
	case pageTickets:
		return "Tickets"
	case pageAssets:
		return "Assets"
	case pageAssistant:
		return "AI Assistant"
	default:
		return ""
	}
}

type sidebarItem struct {
	page  page
	count int
}

func (s sidebarItem) Title() string       { return s.page.title() }
func (s sidebarItem) Description() string { return "" }
func (s sidebarItem) FilterValue() string { return s.page.title() }

type sidebarDelegate struct{}

func (d sidebarDelegate) Height() int  { return 1 }
func (d sidebarDelegate) Spacing() int { return 0 }

func (d sidebarDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d sidebarDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(sidebarItem)
	if !ok {
		return
	}
	label := entry.page.title()
	if entry.count > 0 {
		label = fmt.Sprintf("%s (%d)", label, entry.count)
	}
	line := " " + label + " "
	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render(line))
		return
	}
	fmt.Fprint(w, navStyle.Render(line))
}

// SidebarController is the page switcher on the left edge. Record counts
// next to each page come from the mirror snapshots and repaint on refresh.
type SidebarController struct {
	list  list.Model
	pages []page
}

func NewSidebarController(showClients bool) *SidebarController {
	pages := []page{pageDashboard}
	if showClients {
		pages = append(pages, pageClients)
	}
	pages = append(pages, pageTickets, pageAssets, pageAssistant)

	items := make([]list.Item, len(pages))
	for i, p := range pages {
		items[i] = sidebarItem{page: p}
	}
	mlist := list.New(items, sidebarDelegate{}, minSidebarWidth, minContentHeight)
	mlist.Title = "Console"
	mlist.SetShowHelp(false)
	mlist.SetFilteringEnabled(false)
	mlist.SetShowPagination(false)
	mlist.SetShowStatusBar(false)
	mlist.Styles.Title = headerStyle
	return &SidebarController{list: mlist, pages: pages}
}

func (c *SidebarController) View() string {
	return c.list.View()
}

func (c *SidebarController) Update(msg tea.Msg) tea.Cmd {
	updated, cmd := c.list.Update(msg)
	c.list = updated
	return cmd
}

func (c *SidebarController) SetSize(width, height int) {
	c.list.SetSize(width, height)
}

func (c *SidebarController) Selected() page {
	if item, ok := c.list.SelectedItem().(sidebarItem); ok {
		return item.page
	}
	return pageDashboard
}

// Select moves the cursor to the given page if it is visible.
func (c *SidebarController) Select(target page) {
	for i, p := range c.pages {
		if p == target {
			c.list.Select(i)
			return
		}
	}
}

func (c *SidebarController) SetCounts(clients, tickets, assets int) {
	items := make([]list.Item, len(c.pages))
	for i, p := range c.pages {
		entry := sidebarItem{page: p}
		switch p {
		case pageClients:
			entry.count = clients
		case pageTickets:
			entry.count = tickets
		case pageAssets:
			entry.count = assets
		}
		items[i] = entry
	}
	c.list.SetItems(items)
}
