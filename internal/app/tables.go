package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"console/internal/types"
)

type tableColumn struct {
	title string
	width int
}

// renderTable draws a fixed-width table with the selected row highlighted.
// Rows outside the height window scroll with the selection.
func renderTable(columns []tableColumn, rows [][]string, selected, height int) string {
	var b strings.Builder
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = padToWidth(truncateToWidth(col.title, col.width), col.width)
	}
	b.WriteString(tableHeaderStyle.Render(strings.Join(header, "  ")))

	if len(rows) == 0 {
		b.WriteString("\n" + tableDimStyle.Render("  no records"))
		return b.String()
	}

	visible := max(1, height-1)
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := min(len(rows), start+visible)
	for idx := start; idx < end; idx++ {
		cells := make([]string, len(columns))
		for i, col := range columns {
			value := ""
			if i < len(rows[idx]) {
				value = rows[idx][i]
			}
			cells[i] = padToWidth(truncateToWidth(value, col.width), col.width)
		}
		line := strings.Join(cells, "  ")
		b.WriteString("\n")
		if idx == selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(tableRowStyle.Render(line))
		}
	}
	return b.String()
}

func clientColumns(width int) []tableColumn {
	name := max(12, width*3/10)
	contact := max(10, width*2/10)
	email := max(14, width*3/10)
	phone := max(8, width-name-contact-email-6)
	return []tableColumn{
		{title: "NAME", width: name},
		{title: "CONTACT", width: contact},
		{title: "EMAIL", width: email},
		{title: "PHONE", width: phone},
	}
}

func clientRows(clients []types.Client) [][]string {
	rows := make([][]string, len(clients))
	for i, c := range clients {
		rows[i] = []string{c.Name, c.ContactPerson, c.Email, c.Phone}
	}
	return rows
}

func ticketColumns(width int) []tableColumn {
	title := max(16, width*4/10)
	client := max(10, width*2/10)
	status := 12
	created := max(10, width-title-client-status-6)
	return []tableColumn{
		{title: "TITLE", width: title},
		{title: "CLIENT", width: client},
		{title: "STATUS", width: status},
		{title: "CREATED", width: created},
	}
}

func ticketRows(tickets []types.Ticket, clientNames map[string]string) [][]string {
	rows := make([][]string, len(tickets))
	for i, t := range tickets {
		status := ticketStatusStyle(string(t.Status)).Render(string(t.Status))
		rows[i] = []string{t.Title, clientNames[t.ClientID], status, types.DateOnly(t.CreatedDate)}
	}
	return rows
}

func assetColumns(width int) []tableColumn {
	name := max(14, width*3/10)
	client := max(10, width*2/10)
	kind := 10
	warranty := max(10, width-name-client-kind-6)
	return []tableColumn{
		{title: "NAME", width: name},
		{title: "CLIENT", width: client},
		{title: "TYPE", width: kind},
		{title: "WARRANTY END", width: warranty},
	}
}

func assetRows(assets []types.Asset, clientNames map[string]string) [][]string {
	rows := make([][]string, len(assets))
	for i, a := range assets {
		rows[i] = []string{a.Name, clientNames[a.ClientID], string(a.Type), types.DateOnly(a.WarrantyEndDate)}
	}
	return rows
}

// renderStats draws the dashboard summary cards.
func renderStats(clients []types.Client, tickets []types.Ticket, assets []types.Asset) string {
	open := 0
	for _, t := range tickets {
		if !t.Status.Resolved() {
			open++
		}
	}
	cards := []string{
		statCard(len(clients), "clients"),
		statCard(open, "open tickets"),
		statCard(len(tickets), "tickets total"),
		statCard(len(assets), "assets"),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func statCard(value int, label string) string {
	content := statValueStyle.Render(fmt.Sprintf("%d", value)) + "\n" + statLabelStyle.Render(label)
	return statCardStyle.Render(content)
}
