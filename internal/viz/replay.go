package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/golfsim/internal/ballistics"
)

const (
	replayWidth  = 80
	replayHeight = 20
	frameRate    = time.Second / 30
)

type TickMsg time.Time

// Replay animates a finished trajectory. Each tick advances the playhead by
// the current speed in samples.
type Replay struct {
	name     string
	tr       *ballistics.Trajectory
	canvas   *Canvas
	scale    Scale
	points   []ballistics.Point
	playHead int
	speed    int
	running  bool
	theme    Theme
	done     bool
}

func NewReplay(name string, tr *ballistics.Trajectory) Replay {
	c := NewCanvas(replayWidth, replayHeight)
	maxX, maxY := 0.0, 0.0
	for _, s := range tr.Samples {
		maxX = math.Max(maxX, s.X)
		maxY = math.Max(maxY, s.Y)
	}
	return Replay{
		name:    name,
		tr:      tr,
		canvas:  c,
		scale:   c.Scale(maxX*1.02, maxY*1.1),
		points:  tr.Points(),
		speed:   max(1, tr.Len()/(5*30)),
		running: true,
		theme:   Themes[0],
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd {
	return tick()
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.done = false
			m.running = true
		case "[":
			m.running = false
			m.seek(-1)
		case "]":
			m.running = false
			m.seek(1)
		case "+", "=":
			m.speed *= 2
		case "-", "_":
			m.speed = max(1, m.speed/2)
		case "t":
			m.theme = nextTheme(m.theme)
		}
	case TickMsg:
		if m.running && !m.done {
			m.seek(m.speed)
			if m.playHead == m.tr.Len()-1 {
				m.done = true
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Replay) seek(delta int) {
	m.playHead += delta
	if m.playHead < 0 {
		m.playHead = 0
	}
	if last := m.tr.Len() - 1; m.playHead > last {
		m.playHead = max(last, 0)
	}
}

// Current is the sample under the playhead.
func (m Replay) Current() ballistics.Sample {
	if m.tr.Len() == 0 {
		return ballistics.Sample{}
	}
	return m.tr.Samples[m.playHead]
}

func (m Replay) View() string {
	m.canvas.Clear()
	if len(m.points) > 0 {
		m.canvas.DrawPath(m.points[:m.playHead+1], m.scale)
	}

	trail := lipgloss.NewStyle().Foreground(m.theme.Trail).Padding(1, 2)
	header := lipgloss.NewStyle().Foreground(m.theme.Header).Bold(true).MarginBottom(1)
	label := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(10)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)
	ball := lipgloss.NewStyle().Foreground(m.theme.Ball).Bold(true)

	cur := m.Current()
	status := "FLYING"
	switch {
	case m.done && m.tr.Landed():
		status = "LANDED"
	case m.done:
		status = strings.ToUpper(m.tr.Outcome.String())
	case !m.running:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(ball.Render(status) + "\n\n")
	s.WriteString(label.Render("t") + value.Render(fmt.Sprintf("%.2f s", cur.T)) + "\n")
	s.WriteString(label.Render("x") + value.Render(fmt.Sprintf("%.2f m", cur.X)) + "\n")
	s.WriteString(label.Render("y") + value.Render(fmt.Sprintf("%.2f m", cur.Y)) + "\n")
	s.WriteString(label.Render("speed") + value.Render(fmt.Sprintf("%.2f m/s", cur.Speed())) + "\n")
	s.WriteString(label.Render("frame") + value.Render(fmt.Sprintf("%d/%d x%d", m.playHead+1, m.tr.Len(), m.speed)) + "\n")
	s.WriteString(KeyHint.Render("\nSP:Pause R:Restart Q:Quit\n[ ]:Step +-:Speed T:Theme"))

	stats := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Muted).
		Padding(1, 2).
		Width(36).
		Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, trail.Render(m.canvas.String()), stats)
}

// RunReplay takes over the terminal until the user quits.
func RunReplay(name string, tr *ballistics.Trajectory) error {
	_, err := tea.NewProgram(NewReplay(name, tr), tea.WithAltScreen()).Run()
	return err
}
