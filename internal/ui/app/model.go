package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "reflexum/internal/modules/session/dto"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/ui/theme"
	dashboardview "reflexum/internal/ui/views/dashboard"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active sessiondto.ActiveSessionOutput
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Reload key.Binding
	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter courses")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reload, k.Filter},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: a read-only dashboard of the configured
// date preset plus the active study session, if any.
type Model struct {
	session   sessionPort
	dashboard dashboardview.Model

	keys          keyMap
	help          help.Model
	showHelp      bool
	activeSession sessiondto.ActiveSessionOutput
	hasActive     bool
	status        string
	width         int
	height        int
}

func NewModel(overview dashboardview.OverviewPort, session sessionPort) Model {
	return Model{
		session:   session,
		dashboard: dashboardview.New(overview),
		keys:      defaultKeys(),
		help:      help.New(),
		status:    "loading",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dashboard.Init(), m.loadActiveCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height - 3})
		return m, cmd

	case activeLoadedMsg:
		m.hasActive = msg.err == nil
		m.activeSession = msg.active
		if msg.err != nil && !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
			m.status = "active session check: " + msg.err.Error()
		}

	case dashboardview.LoadedMsg:
		if msg.Err != nil {
			m.status = "load failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("%d notes · %s", msg.Overview.Files, msg.Overview.PeriodLabel)
		}

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.dashboard.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.status = "reloading"
			return m, tea.Batch(m.dashboard.Reload(), m.loadActiveCmd())
		}
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	content := m.dashboard.View()
	if m.showHelp {
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	bar := theme.Hot.Render(" Reflexum ") + theme.Muted.Render(" study dashboard")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		left = theme.Hot.Render("● "+activeLabel(m.activeSession, time.Now())) + "  " + left
	}
	right := theme.Muted.Render("r:reload  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func activeLabel(active sessiondto.ActiveSessionOutput, now time.Time) string {
	course := active.Course
	if course == "" {
		course = "session"
	}
	elapsed := int(now.Sub(active.StartedAt).Minutes())
	if elapsed < 0 {
		elapsed = 0
	}
	return fmt.Sprintf("%s %d min", course, elapsed)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		if m.session == nil {
			return activeLoadedMsg{err: apperrors.ErrNoActiveSession}
		}
		active, err := m.session.GetActive(context.Background())
		return activeLoadedMsg{active: active, err: err}
	}
}
