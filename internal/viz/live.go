package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partsim/internal/vecmath"
	"github.com/san-kum/partsim/internal/world"
)

const historyCapacity = 300

type TickMsg time.Time

// Model steps a world.World at a fixed dt and renders particle positions
// plus an energy trace. It has no camera, no 3D projection and no
// recording surface: those are outside the engine's rendering scope.
type Model struct {
	world *world.World
	names []string

	dt      vecmath.Real
	t       vecmath.Real
	running bool

	energyHistory []float64
	scenario      string
	theme         Theme
}

// NewModel constructs a live view over w, rendered with the named theme
// (falling back to the cyberpunk default for an unknown name). names must
// be in the same order as w.Particles().
func NewModel(w *world.World, names []string, dt vecmath.Real, scenario, themeName string) Model {
	return Model{
		world:         w,
		names:         names,
		dt:            dt,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		scenario:      scenario,
		theme:         GetTheme(themeName),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
		return m, nil
	case TickMsg:
		if m.running {
			m.world.RunPhysics(m.dt)
			m.t += m.dt
			m.energyHistory = append(m.energyHistory, float64(m.world.TotalEnergy()))
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(m.theme.Text)

	var b strings.Builder
	b.WriteString(GradientText(fmt.Sprintf("partsim - %s", m.scenario), m.theme.Primary, m.theme.Secondary))
	b.WriteString("\n")

	statusStyle, statusText := StatusRunning, "running"
	if !m.running {
		statusStyle, statusText = StatusPaused, "paused"
	}
	b.WriteString(labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.3f", m.t)))
	b.WriteString("   ")
	b.WriteString(labelStyle.Render("status") + statusStyle.Render(statusText))
	b.WriteString("   ")
	b.WriteString(labelStyle.Render("energy"))
	b.WriteString(SparklineChart(m.energyHistory, 24))
	b.WriteString("\n\n")

	var particles strings.Builder
	for i, p := range m.world.Particles() {
		name := p.Name
		if i < len(m.names) {
			name = m.names[i]
		}
		particles.WriteString(fmt.Sprintf("%-10s pos=(%7.3f, %7.3f, %7.3f)  vel=(%7.3f, %7.3f, %7.3f)\n",
			name, p.Pos.X, p.Pos.Y, p.Pos.Z, p.Vel.X, p.Vel.Y, p.Vel.Z))
	}
	b.WriteString(BoxWithTitle("particles", strings.TrimRight(particles.String(), "\n"), 72))
	b.WriteString("\n")
	b.WriteString(Separator(72))
	b.WriteString("\n")

	if len(m.energyHistory) > 1 {
		graph := asciigraph.Plot(m.energyHistory, asciigraph.Height(8), asciigraph.Caption("total energy"))
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Padding(1, 0).Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(KeyHint.Render("space: pause/resume   q: quit"))
	return b.String()
}
