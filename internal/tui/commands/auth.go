package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shopverse-dev/shopverse/internal/api"
	"github.com/shopverse-dev/shopverse/internal/log"
	"github.com/shopverse-dev/shopverse/internal/session"
	"github.com/shopverse-dev/shopverse/internal/tui"
)

// LoginCmd authenticates against the shopper or admin endpoint and
// persists the session.
func LoginCmd(client *api.Client, sessions *session.Store, logger *log.Logger, email, password string, asAdmin bool) tea.Cmd {
	return func() tea.Msg {
		req := api.LoginRequest{Email: email, Password: password}
		role := session.RoleShopper
		var resp *api.AuthResponse
		var err error
		if asAdmin {
			role = session.RoleAdmin
			resp, err = client.AdminLogin(context.Background(), req)
		} else {
			resp, err = client.Login(context.Background(), req)
		}
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}

		err = sessions.Login(session.Session{
			Identity:    resp.Email,
			DisplayName: resp.Username,
			Role:        role,
			Token:       resp.Token,
		})
		if err != nil {
			return tui.ErrorMsg{Err: err}
		}

		_ = logger.Append(log.LogEvent{Event: log.EventLogin, Identity: resp.Email, Role: role.String()})
		return tui.LoggedInMsg{Identity: resp.Email, DisplayName: resp.Username, Role: role}
	}
}

// LogoutCmd clears the session.
func LogoutCmd(sessions *session.Store, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		identity := ""
		if cur := sessions.Current(); cur != nil {
			identity = cur.Identity
		}
		if err := sessions.Logout(); err != nil {
			return tui.ErrorMsg{Err: err}
		}
		_ = logger.Append(log.LogEvent{Event: log.EventLogout, Identity: identity})
		return tui.LoggedOutMsg{}
	}
}
