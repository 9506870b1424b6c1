package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/billing"
	"github.com/reviewdeck/reviewdeck/internal/state"
)

// DashView identifies the active dashboard tab
type DashView int

const (
	// ViewOverview is the general metrics tab
	ViewOverview DashView = iota
	// ViewStandup is the standup tab
	ViewStandup
	// ViewAnalytics is the analytics tab (Professional)
	ViewAnalytics
	// ViewCollaboration is the collaboration tab (Professional)
	ViewCollaboration
)

var viewNames = map[DashView]string{
	ViewOverview:      "Overview",
	ViewStandup:       "Standup",
	ViewAnalytics:     "Analytics",
	ViewCollaboration: "Collaboration",
}

var periods = []api.Period{api.PeriodDaily, api.PeriodWeekly, api.PeriodMonthly}

// fetchDoneMsg signals that a container finished its fetch cycle
type fetchDoneMsg struct {
	view DashView
}

// DashboardModel is the live dashboard TUI state
type DashboardModel struct {
	dashboards *state.Dashboards
	access     billing.Access

	view      DashView
	periodIdx int
	spinner   spinner.Model
	styles    Styles

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewDashboardModel creates the dashboard TUI over prepared containers
func NewDashboardModel(dashboards *state.Dashboards, access billing.Access) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return DashboardModel{
		dashboards: dashboards,
		access:     access,
		view:       ViewOverview,
		spinner:    sp,
		styles:     DefaultStyles(),
	}
}

// Init starts the spinner and the first fetch
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(ViewOverview))
}

// fetchCmd runs the container's fetch off the render loop. State lives in
// the container; the message only tells the view to re-read its snapshot.
func (m DashboardModel) fetchCmd(view DashView) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		switch view {
		case ViewOverview:
			m.dashboards.Overview.Fetch(ctx)
		case ViewStandup:
			m.dashboards.Standup.Fetch(ctx)
		case ViewAnalytics:
			m.dashboards.Analytics.Fetch(ctx)
		case ViewCollaboration:
			m.dashboards.Collaboration.Fetch(ctx)
		}
		return fetchDoneMsg{view: view}
	}
}

// setPeriodCmd mutates the active tab's period filter, which refetches
func (m DashboardModel) setPeriodCmd(view DashView, period api.Period) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		value := string(period)
		switch view {
		case ViewStandup:
			m.dashboards.Standup.SetFilter(ctx, state.FieldPeriod, value)
		case ViewAnalytics:
			m.dashboards.Analytics.SetFilter(ctx, state.FieldPeriod, value)
		case ViewCollaboration:
			m.dashboards.Collaboration.SetFilter(ctx, state.FieldPeriod, value)
		}
		return fetchDoneMsg{view: view}
	}
}

func (m DashboardModel) viewLocked(view DashView) bool {
	switch view {
	case ViewAnalytics:
		return !m.access.CanAccessAnalytics
	case ViewCollaboration:
		return !m.access.CanAccessCollaboration
	}
	return false
}

// Update handles messages (required by Bubble Tea)
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "tab", "right":
			m.view = (m.view + 1) % 4
			return m.enterView()

		case "shift+tab", "left":
			m.view = (m.view + 3) % 4
			return m.enterView()

		case "1", "2", "3", "4":
			m.view = DashView(int(msg.String()[0] - '1'))
			return m.enterView()

		case "p":
			if m.view == ViewOverview || m.viewLocked(m.view) {
				return m, nil
			}
			m.periodIdx = (m.periodIdx + 1) % len(periods)
			return m, m.setPeriodCmd(m.view, periods[m.periodIdx])

		case "r":
			if m.viewLocked(m.view) {
				return m, nil
			}
			return m, m.fetchCmd(m.view)
		}
	}

	return m, nil
}

// enterView triggers a fetch when the tab has not loaded anything yet
func (m DashboardModel) enterView() (tea.Model, tea.Cmd) {
	if m.viewLocked(m.view) {
		return m, nil
	}

	var phase state.Phase
	switch m.view {
	case ViewOverview:
		phase = m.dashboards.Overview.Snapshot().Phase
	case ViewStandup:
		phase = m.dashboards.Standup.Snapshot().Phase
	case ViewAnalytics:
		phase = m.dashboards.Analytics.Snapshot().Phase
	case ViewCollaboration:
		phase = m.dashboards.Collaboration.Snapshot().Phase
	}
	if phase == state.PhaseIdle {
		return m, m.fetchCmd(m.view)
	}
	return m, nil
}

// View renders the dashboard (required by Bubble Tea)
func (m DashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.quitting {
		return ""
	}

	out := m.renderTabs() + "\n\n"

	if m.viewLocked(m.view) {
		out += m.styles.Warning.Render("🔒 "+viewNames[m.view]+" requires the Professional plan.") + "\n"
		out += m.styles.Muted.Render("Run 'reviewdeck upgrade' to get a checkout link.") + "\n"
		out += m.renderHelp()
		return out
	}

	switch m.view {
	case ViewOverview:
		out += m.renderOverview()
	case ViewStandup:
		out += m.renderStandup()
	case ViewAnalytics:
		out += m.renderAnalytics()
	case ViewCollaboration:
		out += m.renderCollaboration()
	}

	out += m.renderHelp()
	return out
}

func (m DashboardModel) renderTabs() string {
	out := ""
	for v := ViewOverview; v <= ViewCollaboration; v++ {
		name := fmt.Sprintf("%d %s", int(v)+1, viewNames[v])
		if m.viewLocked(v) {
			name += " 🔒"
		}
		if v == m.view {
			out += m.styles.TabOn.Render(name)
		} else {
			out += m.styles.Tab.Render(name)
		}
	}
	return out
}

func (m DashboardModel) renderHelp() string {
	return m.styles.Help.Render("\ntab/1-4 switch · p period · r refresh · q quit")
}

func (m DashboardModel) loadingLine() string {
	return m.spinner.View() + " " + m.styles.Muted.Render("fetching…")
}

func newTable(cols []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}
