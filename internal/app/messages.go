package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"console/internal/session"
	"console/internal/types"
)

const snapshotInterval = time.Second

type sessionRestoredMsg struct {
	result session.RestoreResult
	err    error
}

type loginResultMsg struct {
	identity *types.User
	err      error
}

type loadDoneMsg struct {
	err error
}

type mutationDoneMsg struct {
	status string
	err    error
}

type assistantAnswerMsg struct {
	answer string
	err    error
}

type snapshotTickMsg time.Time

type clearToastMsg struct{}

// snapshotTickCmd drives the periodic repaint. The scheduler refreshes the
// mirrors in the background; the view just re-reads their snapshots.
func snapshotTickCmd() tea.Cmd {
	return tea.Tick(snapshotInterval, func(t time.Time) tea.Msg {
		return snapshotTickMsg(t)
	})
}

func clearToastCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (m *Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.ctl.Start(context.Background())
		return sessionRestoredMsg{result: result, err: err}
	}
}

func (m *Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		identity, err := m.ctl.Login(context.Background(), username, password)
		return loginResultMsg{identity: identity, err: err}
	}
}

func (m *Model) retryCmd() tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{err: m.ctl.Retry(context.Background())}
	}
}

func (m *Model) assistantCmd(problem string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.assistant.TroubleshootingSteps(context.Background(), problem)
		return assistantAnswerMsg{answer: answer, err: err}
	}
}

func mutationCmd(status string, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{status: status, err: run(context.Background())}
	}
}
