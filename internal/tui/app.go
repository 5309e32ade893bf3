package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/runner-select/internal/api"
	"github.com/altinukshini/runner-select/internal/config"
	"github.com/altinukshini/runner-select/internal/tui/runnersview"
	"github.com/altinukshini/runner-select/internal/ui"
)

type RunnerLister interface {
	ListRunners(ctx context.Context) (*api.RunnersPage, error)
}

// App is the interactive inspector: the repository's runners, which of them
// match the primary labels, and the runner a workflow step would pick.
type App struct {
	cfg    config.Config
	client RunnerLister

	runnersView runnersview.Model
	spinner     spinner.Model

	// State
	loading   bool
	width     int
	height    int
	status    string
	rateLimit api.RateLimit
}

func NewApp(cfg config.Config, client RunnerLister) App {
	return App{
		cfg:         cfg,
		client:      client,
		runnersView: runnersview.New(cfg.Criteria()),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(ui.StyleInfo)),
		loading:     true,
		status:      "Loading runners...",
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.fetchRunners())
}

func (a App) fetchRunners() tea.Cmd {
	return func() tea.Msg {
		page, err := a.client.ListRunners(context.Background())
		if err != nil {
			return ui.RunnersLoadedMsg{Err: err}
		}
		return ui.RunnersLoadedMsg{Runners: page.Runners, RateLimit: page.RateLimit}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.runnersView, cmd = a.runnersView.Update(a.contentSize())
		return a, cmd

	case tea.KeyMsg:
		if a.runnersView.IsFiltering() {
			break
		}
		switch {
		case key.Matches(msg, ui.Keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, ui.Keys.Refresh):
			if a.loading {
				return a, nil
			}
			a.loading = true
			a.status = "Refreshing runners..."
			return a, tea.Batch(a.spinner.Tick, a.fetchRunners())
		}

	case ui.RunnersLoadedMsg:
		a.loading = false
		if msg.Err != nil {
			a.status = fmt.Sprintf("Error loading runners: %v", msg.Err)
		} else {
			a.status = fmt.Sprintf("%d runners", len(msg.Runners))
			a.rateLimit = msg.RateLimit
		}

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.runnersView, cmd = a.runnersView.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// contentSize is the window minus header and status bar.
func (a App) contentSize() tea.WindowSizeMsg {
	h := a.height - 2
	if h < 1 {
		h = 1
	}
	return tea.WindowSizeMsg{Width: a.width, Height: h}
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.cfg.RepoNWO(), a.cfg.PrimaryLabels, a.rateLimit, a.width)

	status := a.status
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	statusBar := RenderStatusBar(status, a.runnersView.ShortHelp(), a.width)

	content := a.runnersView.View()
	// Hard clamp: header(1) + statusbar(1) = 2 lines of chrome.
	maxContentLines := a.height - 2
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			content = strings.Join(lines[:maxContentLines], "\n")
		}
	}

	return header + "\n" + content + "\n" + statusBar
}
