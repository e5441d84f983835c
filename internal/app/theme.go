package app

import "github.com/charmbracelet/lipgloss/v2"

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorBannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true).Padding(0, 1)
	offlineBannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true).Padding(0, 1)
	loadingStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	navStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	navActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("251")).Underline(true)
	tableRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	tableDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	statCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 2)
	statValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	statLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fieldLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	fieldActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)

	dialogHeaderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	dialogBodyStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))

	toastInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)

// Ticket status dots, matching the severity ordering used on the board.
var ticketStatusColors = map[string]string{
	"Open":        "203",
	"In Progress": "214",
	"Paused":      "245",
	"Completed":   "114",
	"Canceled":    "240",
	"Closed":      "240",
}

func ticketStatusStyle(status string) lipgloss.Style {
	color, ok := ticketStatusColors[status]
	if !ok {
		color = "252"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
