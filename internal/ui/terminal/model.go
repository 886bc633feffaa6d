// Package terminal is a Bubble Tea front end for the Pomodoro timer.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 48
	flashDuration = 500 * time.Millisecond
)

type eventMsg timekeeper.Event

type eventsClosedMsg struct{}

type flashOffMsg struct{ id int }

// Model is the Bubble Tea model wrapping a TimeKeeper.
type Model struct {
	keeper   *timekeeper.TimeKeeper
	events   <-chan timekeeper.Event
	presets  model.Presets
	keys     KeyMap
	help     help.Model
	progress progress.Model
	state    timekeeper.State
	flash    bool
	flashID  int
	notice   string
	width    int
}

// New creates the model. events should come from keeper.Subscribe.
func New(keeper *timekeeper.TimeKeeper, events <-chan timekeeper.Event, presets model.Presets) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = defaultWidth
	return Model{
		keeper:   keeper,
		events:   events,
		presets:  presets,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: bar,
		state:    keeper.Snapshot(),
		width:    defaultWidth,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tea.SetWindowTitle(timekeeper.Title(m.state)))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 10), 80)
		return m, nil

	case eventMsg:
		m.state = m.keeper.Snapshot()
		cmds := []tea.Cmd{waitForEvent(m.events), tea.SetWindowTitle(timekeeper.Title(m.state))}
		switch msg.Type {
		case timekeeper.EventComplete:
			m.flash = true
			m.flashID++
			id := m.flashID
			cmds = append(cmds, tea.Tick(flashDuration, func(time.Time) tea.Msg {
				return flashOffMsg{id: id}
			}))
		case timekeeper.EventNotifyError:
			m.notice = "sound unavailable: " + msg.Message
		}
		return m, tea.Batch(cmds...)

	case flashOffMsg:
		if msg.id == m.flashID {
			m.flash = false
		}
		return m, nil

	case eventsClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.keeper.Toggle()
	case key.Matches(msg, m.keys.Reset):
		m.keeper.Reset()
	case key.Matches(msg, m.keys.Focus):
		m.notice = m.selectMode(model.ModeFocus)
	case key.Matches(msg, m.keys.ShortBreak):
		m.notice = m.selectMode(model.ModeShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.notice = m.selectMode(model.ModeLongBreak)
	default:
		return m, nil
	}
	m.state = m.keeper.Snapshot()
	return m, tea.SetWindowTitle(timekeeper.Title(m.state))
}

// selectMode returns a notice for the status line, empty on success.
func (m Model) selectMode(mode model.Mode) string {
	minutes := int(m.presets.Duration(mode) / time.Minute)
	if err := m.keeper.SelectPreset(minutes); err != nil {
		return err.Error()
	}
	return ""
}

// View implements tea.Model.
func (m Model) View() string {
	var tabs []string
	for _, mode := range []model.Mode{model.ModeFocus, model.ModeShortBreak, model.ModeLongBreak} {
		style := tabStyle
		if mode == m.state.Mode {
			style = activeTabStyle(mode)
		}
		tabs = append(tabs, style.Render(mode.Label()))
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	clockColor := modeColor(m.state.Mode)
	if m.flash {
		clockColor = flashColor
	}
	clock := clockStyle.
		Width(lipgloss.Width(tabRow)).
		Foreground(clockColor).
		Render(timekeeper.FormatClock(m.state.Remaining))

	percent := timekeeper.ProgressPercent(m.state.Total, m.state.Remaining) / 100

	var b strings.Builder
	b.WriteString(tabRow)
	b.WriteString("\n")
	b.WriteString(clock)
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(m.state.Status))
	b.WriteString("\n")
	b.WriteString(sessionStyle.Render(fmt.Sprintf("Session #%d · %d min focused", m.state.SessionCount, m.state.FocusMinutes)))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return frameStyle.Render(b.String())
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}
