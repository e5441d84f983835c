package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// LoginController drives the username/password form shown while the
// session is logged out.
type LoginController struct {
	username textinput.Model
	password textinput.Model
	focused  int
	errText  string
	busy     bool
}

func NewLoginController(width int) *LoginController {
	username := textinput.New()
	username.Placeholder = "username"
	username.SetWidth(width)
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.SetWidth(width)

	return &LoginController{username: username, password: password}
}

func (c *LoginController) Resize(width int) {
	c.username.SetWidth(width)
	c.password.SetWidth(width)
}

func (c *LoginController) Reset() {
	c.username.SetValue("")
	c.password.SetValue("")
	c.errText = ""
	c.busy = false
	c.focusField(0)
}

func (c *LoginController) SetError(text string) {
	c.errText = text
	c.busy = false
}

func (c *LoginController) SetBusy() {
	c.busy = true
	c.errText = ""
}

func (c *LoginController) Credentials() (string, string) {
	return strings.TrimSpace(c.username.Value()), c.password.Value()
}

func (c *LoginController) focusField(idx int) {
	c.focused = idx
	if idx == 0 {
		c.username.Focus()
		c.password.Blur()
	} else {
		c.username.Blur()
		c.password.Focus()
	}
}

// Update returns submit=true when the form is complete and ready to send.
func (c *LoginController) Update(msg tea.Msg) (submit bool, cmd tea.Cmd) {
	if c.busy {
		return false, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			c.focusField((c.focused + 1) % 2)
			return false, nil
		case "shift+tab", "up":
			c.focusField((c.focused + 1) % 2)
			return false, nil
		case "enter":
			if c.focused == 0 {
				c.focusField(1)
				return false, nil
			}
			username, password := c.Credentials()
			if username == "" || password == "" {
				c.errText = "username and password are required"
				return false, nil
			}
			return true, nil
		}
	}
	if c.focused == 0 {
		updated, cmd := c.username.Update(msg)
		c.username = updated
		return false, cmd
	}
	updated, cmd := c.password.Update(msg)
	c.password = updated
	return false, cmd
}

func (c *LoginController) View() string {
	lines := []string{
		headerStyle.Render("Sign in"),
		"",
		renderLoginField("Username", c.username.View(), c.focused == 0),
		renderLoginField("Password", c.password.View(), c.focused == 1),
	}
	if c.busy {
		lines = append(lines, "", loadingStyle.Render("signing in…"))
	} else if c.errText != "" {
		lines = append(lines, "", errorBannerStyle.Render(c.errText))
	}
	return strings.Join(lines, "\n")
}

func renderLoginField(label, input string, active bool) string {
	style := fieldLabelStyle
	if active {
		style = fieldActiveStyle
	}
	return style.Render(label+": ") + input
}
