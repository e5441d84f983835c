package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const confirmMaxWidth = 60

// ConfirmController is the modal yes/no dialog used for destructive actions,
// most importantly client deletion where the message warns about the
// tickets and assets that go with it.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = 1
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	*c = ConfirmController{}
}

func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q", "n":
		return true, confirmChoiceCancel
	case "y":
		return true, confirmChoiceConfirm
	case "left", "h":
		c.selected = 0
		return true, confirmChoiceNone
	case "right", "l":
		c.selected = 1
		return true, confirmChoiceNone
	case "tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	return false, confirmChoiceNone
}

// View renders the dialog block and reports the row it should be placed on.
func (c *ConfirmController) View(maxWidth, maxHeight int) (string, int) {
	if c == nil || !c.active {
		return "", 0
	}
	width := c.dialogWidth(maxWidth)
	innerWidth := max(1, width-2)
	contentWidth := max(1, innerWidth-2)

	title := c.title
	if title == "" {
		title = "Confirm"
	}
	lines := []string{dialogHeaderStyle.Render(" " + padToWidth(truncateToWidth(title, contentWidth), contentWidth) + " ")}

	if c.message != "" {
		wrapped := xansi.Hardwrap(c.message, contentWidth, true)
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, dialogBodyStyle.Render(" "+padToWidth(truncateToWidth(line, contentWidth), contentWidth)+" "))
		}
	}

	confirm := padToWidth("["+c.confirmLabel+"]", contentWidth/2)
	cancel := padToWidth("["+c.cancelLabel+"]", contentWidth-contentWidth/2)
	if c.selected == 0 {
		confirm = selectedStyle.Render(confirm)
		cancel = dialogBodyStyle.Render(cancel)
	} else {
		confirm = dialogBodyStyle.Render(confirm)
		cancel = selectedStyle.Render(cancel)
	}
	lines = append(lines, " "+confirm+cancel+" ")

	block := confirmDialogBorderStyle.Render(strings.Join(lines, "\n"))

	x := 0
	if maxWidth > 0 {
		x = max(0, (maxWidth-width)/2)
	}
	if x > 0 {
		block = indentBlock(block, x)
	}
	y := 1
	height := len(lines) + 2
	if maxHeight > 0 {
		y = max(1, (maxHeight-height)/2)
	}
	return block, y
}

func (c *ConfirmController) dialogWidth(maxWidth int) int {
	contentWidth := xansi.StringWidth(c.title)
	for _, line := range strings.Split(c.message, "\n") {
		if w := xansi.StringWidth(line); w > contentWidth {
			contentWidth = w
		}
	}
	if w := xansi.StringWidth(c.confirmLabel) + xansi.StringWidth(c.cancelLabel) + 6; w > contentWidth {
		contentWidth = w
	}
	width := contentWidth + 4
	if width > confirmMaxWidth {
		width = confirmMaxWidth
	}
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	return width
}
