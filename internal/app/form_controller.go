package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
)

type formField struct {
	label       string
	placeholder string
	value       string
	required    bool
}

// FormController walks through record fields one input at a time, the same
// flow for creating and editing clients, tickets, and assets.
type FormController struct {
	title  string
	fields []formField
	step   int
	input  textinput.Model
	width  int
}

func NewFormController(width int) *FormController {
	input := textinput.New()
	input.SetWidth(width)
	return &FormController{input: input, width: width}
}

func (c *FormController) Resize(width int) {
	c.width = width
	c.input.SetWidth(width)
}

// Enter starts the form. Field values carry the current record when
// editing and are empty when creating.
func (c *FormController) Enter(title string, fields []formField) {
	c.title = title
	c.fields = fields
	c.step = 0
	c.prepareInput()
}

func (c *FormController) Exit() {
	c.title = ""
	c.fields = nil
	c.step = 0
	c.input.SetValue("")
	c.input.Blur()
}

func (c *FormController) prepareInput() {
	if c.step >= len(c.fields) {
		return
	}
	field := c.fields[c.step]
	c.input.Placeholder = field.placeholder
	c.input.SetValue(field.value)
	c.input.CursorEnd()
	c.input.Focus()
}

// Values returns the collected field values in declaration order.
func (c *FormController) Values() []string {
	out := make([]string, len(c.fields))
	for i, field := range c.fields {
		out[i] = strings.TrimSpace(field.value)
	}
	return out
}

// Update returns done=true once every field has been submitted.
func (c *FormController) Update(msg tea.Msg) (done bool, cmd tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		updated, cmd := c.input.Update(msg)
		c.input = updated
		return false, cmd
	}
	switch keyMsg.String() {
	case "enter":
		value := strings.TrimSpace(c.input.Value())
		field := &c.fields[c.step]
		if value == "" && field.required {
			return false, nil
		}
		field.value = value
		c.step++
		if c.step >= len(c.fields) {
			return true, nil
		}
		c.prepareInput()
		return false, nil
	case "shift+tab", "up":
		if c.step > 0 {
			c.fields[c.step].value = strings.TrimSpace(c.input.Value())
			c.step--
			c.prepareInput()
		}
		return false, nil
	}
	updated, cmd := c.input.Update(msg)
	c.input = updated
	return false, cmd
}

func (c *FormController) View() string {
	lines := []string{headerStyle.Render(c.title), ""}
	for i, field := range c.fields {
		lines = append(lines, renderFormField(field, i, c.step, c.input.View()))
	}
	lines = append(lines, "", helpStyle.Render("enter next · shift+tab back · esc cancel"))
	return strings.Join(lines, "\n")
}

func renderFormField(field formField, index, step int, inputView string) string {
	label := field.label
	if field.required {
		label += "*"
	}
	if index == step {
		return fieldActiveStyle.Render(label+": ") + inputView
	}
	value := field.value
	if value == "" {
		value = "<empty>"
	}
	if index > step {
		return fieldLabelStyle.Render(fmt.Sprintf("%s: %s", label, value))
	}
	return fieldLabelStyle.Render(label+": ") + tableRowStyle.Render(value)
}
