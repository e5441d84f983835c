package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// AssistantController is the AI troubleshooting page: a problem input on
// top, the rendered Markdown answer in a scrollable viewport below.
type AssistantController struct {
	input     textinput.Model
	viewport  viewport.Model
	answer    string
	errText   string
	busy      bool
	available bool
	width     int
}

func NewAssistantController(width, height int, available bool) *AssistantController {
	input := textinput.New()
	input.Placeholder = "describe the problem, e.g. \"printer offline after update\""
	input.SetWidth(width)
	vp := viewport.New(viewport.WithWidth(max(1, width)), viewport.WithHeight(max(1, height)))
	return &AssistantController{
		input:     input,
		viewport:  vp,
		available: available,
		width:     width,
	}
}

func (c *AssistantController) SetSize(width, height int) {
	c.width = width
	c.input.SetWidth(width)
	c.viewport.SetWidth(max(1, width))
	c.viewport.SetHeight(max(1, height))
	c.refreshContent()
}

func (c *AssistantController) Focus() { c.input.Focus() }
func (c *AssistantController) Blur()  { c.input.Blur() }

func (c *AssistantController) Busy() bool { return c.busy }

func (c *AssistantController) SetBusy() {
	c.busy = true
	c.errText = ""
}

func (c *AssistantController) SetAnswer(answer string) {
	c.busy = false
	c.errText = ""
	c.answer = answer
	c.refreshContent()
	c.viewport.GotoTop()
}

func (c *AssistantController) SetError(text string) {
	c.busy = false
	c.errText = text
}

func (c *AssistantController) refreshContent() {
	if c.answer == "" {
		c.viewport.SetContent("")
		return
	}
	c.viewport.SetContent(renderMarkdown(c.answer, c.viewport.Width()))
}

// Update returns the submitted problem text once the user presses enter.
func (c *AssistantController) Update(msg tea.Msg) (problem string, cmd tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if c.busy {
				return "", nil
			}
			text := strings.TrimSpace(c.input.Value())
			if text == "" {
				return "", nil
			}
			return text, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			updated, cmd := c.viewport.Update(msg)
			c.viewport = updated
			return "", cmd
		}
	}
	updated, cmd := c.input.Update(msg)
	c.input = updated
	return "", cmd
}

func (c *AssistantController) View() string {
	if !c.available {
		return strings.Join([]string{
			headerStyle.Render("AI Assistant"),
			"",
			tableDimStyle.Render("Not configured. Set assistant.api_key in the config file or the GEMINI_API_KEY environment variable."),
		}, "\n")
	}
	lines := []string{
		fieldActiveStyle.Render("Problem: ") + c.input.View(),
	}
	switch {
	case c.busy:
		lines = append(lines, "", loadingStyle.Render("thinking…"))
	case c.errText != "":
		lines = append(lines, "", errorBannerStyle.Render(c.errText))
	case c.answer != "":
		lines = append(lines, dividerStyle.Render(strings.Repeat("─", max(1, c.width))), c.viewport.View())
	default:
		lines = append(lines, "", tableDimStyle.Render("Troubleshooting steps will appear here."))
	}
	return strings.Join(lines, "\n")
}
