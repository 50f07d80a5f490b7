package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "reflexum/internal/modules/report/dto"
	"reflexum/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type OverviewPort interface {
	Overview(ctx context.Context, input reportdto.ReportInput) (reportdto.OverviewOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Overview reportdto.OverviewOutput
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type courseItem struct {
	course reportdto.CourseLine
}

func (i courseItem) Title() string { return i.course.Name }
func (i courseItem) Description() string {
	desc := fmt.Sprintf("%.0f min", i.course.Minutes)
	if open := i.course.Open + i.course.Done; open > 0 {
		desc += fmt.Sprintf("  ✔ %d/%d", i.course.Done, open)
	}
	if i.course.Overdue > 0 {
		desc += fmt.Sprintf("  ⛔ %d", i.course.Overdue)
	}
	return desc
}
func (i courseItem) FilterValue() string { return i.course.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     OverviewPort
	list     list.Model
	overview reportdto.OverviewOutput
	detail   viewport.Model
	spinner  spinner.Model
	loading  bool
	err      error
	width    int
	height   int
}

func New(port OverviewPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Courses"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, detail: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload aggregates the configured date preset again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("dashboard is not configured")}
		}
		overview, err := m.port.Overview(context.Background(), reportdto.ReportInput{})
		return LoadedMsg{Overview: overview, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.overview = msg.Overview
			items := make([]list.Item, len(msg.Overview.Courses))
			for i, c := range msg.Overview.Courses {
				items[i] = courseItem{course: c}
			}
			cmds = append(cmds, m.list.SetItems(items))
			m.list.Title = "Courses · " + msg.Overview.PeriodLabel
		}
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Collecting notes…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the course filter is open.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Overview returns the last successfully loaded aggregate.
func (m Model) Overview() reportdto.OverviewOutput {
	return m.overview
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	if m.err != nil {
		return theme.Hot.Render("⚠️ " + m.err.Error())
	}
	return RenderDetail(m.overview, m.selected())
}

func (m Model) selected() *reportdto.CourseLine {
	if item, ok := m.list.SelectedItem().(courseItem); ok {
		c := item.course
		return &c
	}
	return nil
}

// RenderDetail formats the summary pane for the whole period and, when set,
// the selected course.
func RenderDetail(o reportdto.OverviewOutput, course *reportdto.CourseLine) string {
	if o.Files == 0 {
		return theme.Muted.Render("No notes in " + o.PeriodLabel)
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Summary") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%s\n", theme.Muted.Render("period:    "), o.PeriodLabel))
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("notes:     "), o.Files))
	sb.WriteString(fmt.Sprintf("%s%.0f min\n", theme.Muted.Render("total:     "), o.TotalMinutes))
	if o.TasksTotal > 0 {
		sb.WriteString(fmt.Sprintf("%s%d/%d\n", theme.Muted.Render("tasks:     "), o.TasksDone, o.TasksTotal))
	}

	if course != nil {
		sb.WriteString("\n" + theme.Title.Render(course.Name) + "\n\n")
		sb.WriteString(fmt.Sprintf("%s%.0f min\n", theme.Muted.Render("time:      "), course.Minutes))
		sb.WriteString(fmt.Sprintf("%s%d open, %d done, %d overdue\n", theme.Muted.Render("work:      "), course.Open, course.Done, course.Overdue))
		if course.Open+course.Done > 0 {
			sb.WriteString(fmt.Sprintf("%s%d%%\n", theme.Muted.Render("progress:  "), course.ProgressAvg))
		}
	}

	if len(o.Topics) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Top topics") + "\n")
		for _, t := range o.Topics {
			sb.WriteString(fmt.Sprintf("  %s ×%d\n", t.Name, t.Count))
		}
	}
	if len(o.Deadlines) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Deadlines") + "\n")
		for _, d := range o.Deadlines {
			sb.WriteString(fmt.Sprintf("  %s %s: %s (%.0f%%)\n", theme.Hot.Render(d.Due), d.Course, d.Title, d.Progress))
		}
	}
	if len(o.Gaps) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Gaps") + "\n")
		for _, g := range o.Gaps {
			sb.WriteString("  " + theme.Muted.Render(g) + "\n")
		}
	}
	return sb.String()
}
