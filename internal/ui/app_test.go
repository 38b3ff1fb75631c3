package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/hnpanel/internal/command"
)

const testCommand = "test.fetch"

func newTestApp(t *testing.T, h command.Handler) *App {
	t.Helper()
	reg := command.NewRegistry()
	require.NoError(t, reg.Register(testCommand, h))
	return NewApp(reg, testCommand, "http://localhost:8421/", false)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_RunSuccess(t *testing.T) {
	a := newTestApp(t, func(ctx context.Context) error { return nil })

	require.NotNil(t, a.Init())
	assert.Equal(t, stateRunning, a.state)
	assert.Contains(t, a.View(), "Fetching top stories")

	a.Update(a.runCommand()())
	assert.Equal(t, stateDone, a.state)
	assert.Contains(t, a.View(), "Panel updated")
}

func TestApp_RunFailure(t *testing.T) {
	a := newTestApp(t, func(ctx context.Context) error { return errors.New("HTTP 503") })

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateRunning, a.state)

	a.Update(a.runCommand()())
	assert.Equal(t, stateFailed, a.state)
	assert.Contains(t, a.View(), "Failed to fetch Hacker News: HTTP 503")
}

func TestApp_RunIgnoredWhileRunning(t *testing.T) {
	a := newTestApp(t, func(ctx context.Context) error { return nil })

	a.Update(runes("f"))
	run := a.run
	_, cmd := a.Update(runes("f"))
	assert.Nil(t, cmd)
	assert.Equal(t, run, a.run)
}

func TestApp_DismissCancelsRun(t *testing.T) {
	started := make(chan struct{})
	a := newTestApp(t, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	done := make(chan tea.Msg, 1)
	cmd := a.runCommand()
	go func() { done <- cmd() }()
	<-started

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateDismissed, a.state)

	select {
	case msg := <-done:
		a.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("command was not cancelled")
	}
	assert.Equal(t, stateDismissed, a.state)
	assert.Contains(t, a.View(), "Dismissed")
}

func TestApp_StaleResultIgnored(t *testing.T) {
	a := newTestApp(t, func(ctx context.Context) error { return nil })

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a.Update(commandDoneMsg{run: a.run - 1, err: errors.New("old")})
	assert.Equal(t, stateRunning, a.state)
}

func TestApp_Quit(t *testing.T) {
	a := newTestApp(t, func(ctx context.Context) error { return nil })

	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
