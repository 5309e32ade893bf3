package runnersview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/altinukshini/runner-select/internal/model"
	"github.com/altinukshini/runner-select/internal/selector"
	"github.com/altinukshini/runner-select/internal/ui"
)

type runnerItem struct {
	runner    model.Runner
	qualifies bool
}

func (r runnerItem) Title() string {
	busy := ""
	if r.runner.Busy {
		busy = ui.StyleWarning.Render(" [busy]")
	}
	status := ui.StatusStyle(r.runner.Status).Render(r.runner.Status)
	return fmt.Sprintf("%s %s%s  %s", ui.QualifyIcon(r.qualifies), r.runner.Name, busy, status)
}

func (r runnerItem) Description() string {
	parts := []string{strings.Join(r.runner.LabelNames(), ", ")}
	if r.runner.Ephemeral {
		parts = append(parts, "ephemeral")
	}
	return strings.Join(parts, " | ")
}

func (r runnerItem) FilterValue() string {
	// Filter by name, status and labels
	parts := append([]string{r.runner.Name, r.runner.Status}, r.runner.LabelNames()...)
	return strings.Join(parts, " ")
}

// Model lists the repository's runners against a selection criteria.
type Model struct {
	list     list.Model
	criteria selector.Criteria
	runners  []model.Runner
	result   selector.Result
	width    int
	height   int
	loading  bool
	err      error
}

// New creates a new runners view.
func New(criteria selector.Criteria) Model {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.KeyMap.Filter = ui.Keys.Filter
	l.DisableQuitKeybindings()

	return Model{list: l, criteria: criteria, loading: true}
}

// Init satisfies the tea.Model interface.
func (m Model) Init() tea.Cmd { return nil }

// Update handles messages for the runners view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.RunnersLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.runners = msg.Runners
		m.result = selector.Select(msg.Runners, m.criteria)
		items := make([]list.Item, len(msg.Runners))
		for i, r := range msg.Runners {
			items[i] = runnerItem{runner: r, qualifies: selector.Qualifies(r, m.criteria.PrimaryLabels)}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve two lines for the decision and the counts.
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the runners view.
func (m Model) View() string {
	if m.loading {
		return "\n  Loading runners..."
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v", m.err)
	}

	decision := RenderDecision(m.result)
	if len(m.runners) == 0 {
		return decision + "\n\n  No self-hosted runners found.\n\n  GitHub-hosted runners are not listed by the API."
	}

	idle, busy, qualifying := 0, 0, 0
	for _, r := range m.runners {
		if r.Status == model.RunnerStatusIdle {
			idle++
		}
		if r.Busy {
			busy++
		}
		if selector.Qualifies(r, m.criteria.PrimaryLabels) {
			qualifying++
		}
	}
	counts := fmt.Sprintf("  %d runners | %d idle | %d busy | %d match %s",
		len(m.runners), idle, busy, qualifying, strings.Join(m.criteria.PrimaryLabels, ","))
	counts = ui.StyleMuted.Render(counts)

	return decision + "\n" + counts + "\n" + m.list.View()
}

// Result returns the decision for the last loaded runner list.
func (m Model) Result() selector.Result { return m.result }

// IsFiltering returns true when the filter input is active.
func (m Model) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

// ShortHelp returns key bindings for this view.
func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{ui.Keys.Refresh, ui.Keys.Filter, ui.Keys.Quit}
}

// RenderDecision renders the selection outcome on one line.
func RenderDecision(result selector.Result) string {
	labels := strings.Join(result.Runner, ",")
	if result.PrimaryAvailable {
		return "  " + ui.StyleSuccess.Render("primary available") + "  using " + labels
	}
	return "  " + ui.StyleWarning.Render("primary unavailable") + "  using fallback " + labels
}

// RenderTable renders every runner with its qualification mark, one per
// line, for non-interactive output.
func RenderTable(runners []model.Runner, criteria selector.Criteria) string {
	var b strings.Builder
	for _, r := range runners {
		item := runnerItem{runner: r, qualifies: selector.Qualifies(r, criteria.PrimaryLabels)}
		b.WriteString("  " + item.Title() + "\n")
		b.WriteString("      " + ui.StyleMuted.Render(item.Description()) + "\n")
	}
	return b.String()
}
