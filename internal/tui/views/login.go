package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/tui"
)

// SubmitLoginMsg carries the entered credentials.
type SubmitLoginMsg struct {
	Email    string
	Password string
	AsAdmin  bool
}

// LoginModel is the login screen: email and password inputs plus an
// admin toggle.
type LoginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	asAdmin  bool
	notice   string
	width    int
	height   int
}

// NewLoginModel creates the login screen.
func NewLoginModel(width, height int) LoginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 256
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return LoginModel{email: email, password: password, width: width, height: height}
}

// SetNotice shows a one-line message above the form, used when a guard
// redirect landed the shopper here.
func (m *LoginModel) SetNotice(notice string) {
	m.notice = notice
}

// Update handles messages for the login screen.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return BackMsg{} }
		case tui.KeyTab:
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.email.Blur()
				m.password.Focus()
			}
			return m, textinput.Blink
		case "ctrl+r":
			m.asAdmin = !m.asAdmin
			return m, nil
		case tui.KeyEnter:
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.notice = "email and password are required"
				return m, nil
			}
			asAdmin := m.asAdmin
			return m, func() tea.Msg {
				return SubmitLoginMsg{Email: email, Password: password, AsAdmin: asAdmin}
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View renders the login screen.
func (m LoginModel) View() string {
	var b strings.Builder

	title := "Shopper Login"
	if m.asAdmin {
		title = "Admin Login"
	}
	b.WriteString(tui.TitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(tui.WarningStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString("Email:    " + m.email.View() + "\n")
	b.WriteString("Password: " + m.password.View() + "\n\n")
	b.WriteString(tui.DimStyle.Render("tab: switch field  ctrl+r: toggle admin  enter: log in  esc: back"))
	return tui.BoxStyle.Width(m.width - 4).Render(b.String())
}
