package ui

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/fragmede/hnpanel/internal/command"
)

type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateDone
	stateFailed
	stateDismissed
)

type commandDoneMsg struct {
	run  int
	err  error
	took time.Duration
}

type browserMsg struct{ err error }

// App is the root Bubble Tea model. It triggers one command and reports
// where its output can be viewed.
type App struct {
	registry    *command.Registry
	command     string
	panelURL    string
	openBrowser bool
	opened      bool

	keys    KeyMap
	spinner spinner.Model
	help    help.Model

	state   runState
	run     int
	lastErr error
	took    time.Duration
	status  string
}

// NewApp creates the trigger surface for cmd. When openBrowser is set the
// panel is opened after the first successful run.
func NewApp(registry *command.Registry, cmd, panelURL string, openBrowser bool) *App {
	return &App{
		registry:    registry,
		command:     cmd,
		panelURL:    panelURL,
		openBrowser: openBrowser,
		keys:        Keys,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle)),
		help:        help.New(),
	}
}

// Init runs the command once on startup.
func (a *App) Init() tea.Cmd {
	return a.start()
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.registry.Cancel(a.command)
			return a, tea.Quit
		case key.Matches(msg, a.keys.Run):
			return a, a.start()
		case key.Matches(msg, a.keys.Dismiss):
			if a.state == stateRunning && a.registry.Cancel(a.command) {
				a.state = stateDismissed
			}
			return a, nil
		case key.Matches(msg, a.keys.OpenURL):
			return a, openURL(a.panelURL)
		}

	case commandDoneMsg:
		// Dismissed runs still deliver their cancellation results.
		if msg.run != a.run || a.state != stateRunning {
			return a, nil
		}
		a.took = msg.took
		a.lastErr = msg.err
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				a.state = stateDismissed
			} else {
				a.state = stateFailed
			}
			return a, nil
		}
		a.state = stateDone
		if a.openBrowser && !a.opened {
			a.opened = true
			return a, openURL(a.panelURL)
		}
		return a, nil

	case browserMsg:
		if msg.err != nil {
			a.status = "Could not open browser: " + msg.err.Error()
		} else {
			a.status = ""
		}
		return a, nil

	case spinner.TickMsg:
		if a.state != stateRunning {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) start() tea.Cmd {
	if a.state == stateRunning {
		return nil
	}
	a.state = stateRunning
	a.run++
	a.lastErr = nil
	return tea.Batch(a.spinner.Tick, a.runCommand())
}

func (a *App) runCommand() tea.Cmd {
	registry := a.registry
	name := a.command
	run := a.run
	return func() tea.Msg {
		start := time.Now()
		err := registry.Execute(context.Background(), name)
		return commandDoneMsg{run: run, err: err, took: time.Since(start)}
	}
}

// View renders the application.
func (a *App) View() string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Hacker News"))
	sb.WriteString(" ")
	sb.WriteString(URLStyle.Render(a.panelURL))
	sb.WriteString("\n\n")

	switch a.state {
	case stateIdle:
		sb.WriteString(DimStyle.Render("Ready."))
	case stateRunning:
		sb.WriteString(a.spinner.View() + " Fetching top stories...")
	case stateDone:
		sb.WriteString(SuccessStyle.Render(fmt.Sprintf("Panel updated in %s.", a.took.Round(time.Millisecond))))
	case stateFailed:
		sb.WriteString(ErrorStyle.Render("Failed to fetch Hacker News: " + a.lastErr.Error()))
	case stateDismissed:
		sb.WriteString(DimStyle.Render("Dismissed."))
	}
	if a.status != "" {
		sb.WriteString("\n")
		sb.WriteString(DimStyle.Render(a.status))
	}

	sb.WriteString("\n\n")
	sb.WriteString(a.help.View(a.keys))
	return sb.String()
}

func openURL(url string) tea.Cmd {
	return func() tea.Msg {
		return browserMsg{err: openBrowser(url)}
	}
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return errors.Errorf("unsupported platform %s", runtime.GOOS)
	}
	return cmd.Run()
}
