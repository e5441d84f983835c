package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"console/internal/types"
)

func typeText(t *testing.T, c *FormController, text string) {
	t.Helper()
	for _, r := range text {
		if _, cmd := c.Update(tea.KeyPressMsg{Code: r, Text: string(r)}); cmd != nil {
			cmd()
		}
	}
}

func pressEnter(c *FormController) bool {
	done, _ := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return done
}

func TestFormStepsThroughFields(t *testing.T) {
	c := NewFormController(40)
	c.Enter("New ticket", ticketFormFields(types.Ticket{}, ""))

	typeText(t, c, "Printer offline")
	if pressEnter(c) {
		t.Fatalf("form must not finish on first field")
	}
	typeText(t, c, "Acme")
	if pressEnter(c) {
		t.Fatalf("form must not finish on second field")
	}
	// Status and description left empty.
	pressEnter(c)
	if !pressEnter(c) {
		t.Fatalf("form should finish after the last field")
	}

	values := c.Values()
	if values[0] != "Printer offline" || values[1] != "Acme" {
		t.Fatalf("unexpected values: %#v", values)
	}
}

func TestFormRequiredFieldBlocksEmptySubmit(t *testing.T) {
	c := NewFormController(40)
	c.Enter("New client", clientFormFields(types.Client{}))

	if pressEnter(c) {
		t.Fatalf("empty required field must not advance")
	}
	if c.step != 0 {
		t.Fatalf("step advanced past required field: %d", c.step)
	}
}

func TestFormEditPrefillsValues(t *testing.T) {
	c := NewFormController(40)
	c.Enter("Edit client", clientFormFields(types.Client{Name: "Acme", Email: "office@acme.test"}))

	if c.fields[0].value != "Acme" {
		t.Fatalf("name not prefilled: %#v", c.fields[0])
	}
	if c.input.Value() != "Acme" {
		t.Fatalf("input not seeded with current value: %q", c.input.Value())
	}
}

func TestFormBackStep(t *testing.T) {
	c := NewFormController(40)
	c.Enter("New client", clientFormFields(types.Client{}))

	typeText(t, c, "Acme")
	pressEnter(c)
	if c.step != 1 {
		t.Fatalf("expected step 1, got %d", c.step)
	}
	c.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if c.step != 0 {
		t.Fatalf("shift+tab should go back, step=%d", c.step)
	}
	if c.input.Value() != "Acme" {
		t.Fatalf("returning to a field should restore its value, got %q", c.input.Value())
	}
}
