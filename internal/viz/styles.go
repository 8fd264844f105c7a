package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/golfsim/internal/ballistics"
)

var (
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(16)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	StatusLanded = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Row renders one label/value line.
func Row(label, value string) string {
	return MetricLabel.Render(label) + MetricValue.Render(value)
}

// Summary renders the landing figures of one flight.
func Summary(name string, tr *ballistics.Trajectory) string {
	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(name)) + "\n")

	status := StatusLanded.Render(tr.Outcome.String())
	if !tr.Landed() {
		status = StatusFailed.Render(tr.Outcome.String())
	}
	s.WriteString(MetricLabel.Render("outcome") + status + "\n")
	s.WriteString(Row("forces", tr.Model.String()) + "\n")
	s.WriteString(Row("launch", fmt.Sprintf("%.1f m/s @ %.1f°", tr.Launch.Speed, tr.Launch.Degrees())) + "\n")
	s.WriteString(Row("samples", fmt.Sprintf("%d (dt=%g)", tr.Len(), tr.Dt)) + "\n")

	apex := tr.Apex()
	cross := tr.GroundCrossing()
	s.WriteString(Row("range", fmt.Sprintf("%.2f m (last sample %.2f m)", cross.X, tr.Range())) + "\n")
	s.WriteString(Row("apex", fmt.Sprintf("%.2f m at x=%.2f m", apex.Y, apex.X)) + "\n")
	s.WriteString(Row("flight time", fmt.Sprintf("%.2f s", tr.GroundCrossingTime())) + "\n")
	s.WriteString(Row("impact speed", fmt.Sprintf("%.2f m/s", tr.Landing().Speed())))

	if len(tr.Metrics) > 0 {
		keys := make([]string, 0, len(tr.Metrics))
		for k := range tr.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s.WriteString("\n" + Subtle.Render(Separator(40)))
		for _, k := range keys {
			s.WriteString("\n" + Row(k, fmt.Sprintf("%.4f", tr.Metrics[k])))
		}
	}
	return s.String()
}

// SparklineChart renders a one-line profile of values.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		norm := (v - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}

		c := chars[idx]
		if norm > 0.7 {
			result.WriteString(SparkHigh.Render(string(c)))
		} else if norm > 0.3 {
			result.WriteString(SparkMid.Render(string(c)))
		} else {
			result.WriteString(SparkLow.Render(string(c)))
		}
	}

	return result.String()
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return left + " ◆ " + right
}
