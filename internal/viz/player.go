package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitsim/internal/nbody"
)

const (
	width       = 80
	height      = 24
	shortTrail  = 120
	maxSpeed    = 64
	frameRate   = 30
	energyWidth = 20
)

type TickMsg time.Time

// trailMode cycles full -> short -> none.
type trailMode int

const (
	trailFull trailMode = iota
	trailShort
	trailNone
)

func (t trailMode) steps() int {
	switch t {
	case trailShort:
		return shortTrail
	case trailNone:
		return 0
	}
	return FullTrail
}

func (t trailMode) String() string {
	return [...]string{"full", "short", "off"}[t]
}

// Player replays a finished run frame by frame. It never touches the
// integrator; all it sees is the history and, optionally, the energy of
// every step.
type Player struct {
	history  *nbody.History
	energies []float64
	canvas   *Canvas
	proj     Projection
	frame    int
	speed    int
	running  bool
	trail    trailMode
	labels   bool
	theme    Theme
	showHelp bool
}

// NewPlayer starts at the first frame with the default ±3 AU view.
// energies may be nil.
func NewPlayer(h *nbody.History, energies []float64) Player {
	c := NewCanvas(width, height)
	return Player{
		history:  h,
		energies: energies,
		canvas:   c,
		proj:     NewProjection(c, DefaultExtent),
		speed:    1,
		running:  true,
		labels:   true,
		theme:    ThemeClassic,
	}
}

// WithTheme returns p drawn in theme t.
func (p Player) WithTheme(t Theme) Player {
	p.theme = t
	return p
}

// FitView returns p with the view fitted to the whole run instead of the
// default ±3 AU.
func (p Player) FitView() Player {
	p.proj = FitProjection(p.canvas, p.history)
	return p
}

// Frame is the index of the step being shown.
func (p Player) Frame() int { return p.frame }

// Speed is the number of steps advanced per tick.
func (p Player) Speed() int { return p.speed }

func (p Player) Running() bool { return p.running }

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Init() tea.Cmd {
	return tick()
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			p.running = !p.running
		case "r":
			p.frame = 0
		case "[":
			p.seek(-10 * p.speed)
		case "]":
			p.seek(10 * p.speed)
		case "+", "=":
			p.speed = min(p.speed*2, maxSpeed)
		case "-", "_":
			p.speed = max(p.speed/2, 1)
		case "t":
			p.trail = (p.trail + 1) % 3
		case "l":
			p.labels = !p.labels
		case "c":
			p.theme = NextTheme(p.theme)
		case "z":
			p.proj.Zoom(0.8)
		case "Z":
			p.proj.Zoom(1.25)
		case "?":
			p.showHelp = !p.showHelp
		}
	case TickMsg:
		if p.running && p.history.Len() > 0 {
			p.frame = (p.frame + p.speed) % p.history.Len()
		}
		return p, tick()
	}
	return p, nil
}

func (p *Player) seek(delta int) {
	n := p.history.Len()
	if n == 0 {
		return
	}
	p.frame = max(0, min(p.frame+delta, n-1))
}

func (p Player) draw() {
	p.canvas.Clear()
	DrawFrame(p.canvas, p.history, p.frame, p.proj, p.trail.steps())
	if p.labels {
		DrawLabels(p.canvas, p.history, p.frame, p.proj)
	}
}

func (p Player) View() string {
	if p.history.Len() == 0 {
		return "no steps recorded\n"
	}
	p.draw()

	orbits := lipgloss.NewStyle().Foreground(p.theme.Orbits)
	canvasView := canvasStyle.Render(orbits.Render(p.canvas.String()))

	var s strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(p.theme.Title)
	s.WriteString(title.Render("ORBITSIM") + "\n")

	status := StatusRunning.Render(fmt.Sprintf("PLAYING x%d", p.speed))
	if !p.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	n := p.history.Len()
	t := p.history.Time(p.frame)
	s.WriteString(labelStyle.Render("Day") + valueStyle.Render(fmt.Sprintf("%.1f", t/nbody.DaySec)) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", p.frame+1, n)) + "\n")
	s.WriteString(ProgressBar(float64(p.frame+1)/float64(n), 28) + "\n\n")

	frame := p.history.Frame(p.frame)
	names := p.history.Names()
	star := frame[0]
	for i, name := range names {
		line := fmt.Sprintf("● %-6s", name)
		if i > 0 {
			line += fmt.Sprintf(" %6.3f AU", frame[i].Sub(star).Len()/nbody.AU)
		}
		s.WriteString(p.theme.BodyStyle(i).Render(line) + "\n")
	}

	if e := p.energyWindow(); len(e) > 1 {
		s.WriteString(graphStyle.Render(EnergyPlot(e, energyWidth, 4)) + "\n")
	}

	s.WriteString(labelStyle.Render("Trail") + valueStyle.Render(p.trail.String()) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(p.theme.Name) + "\n")
	s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Pause [ ]:Seek +/-:Speed\nT:Trail L:Labels C:Theme\nZ:Zoom ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if p.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

// energyWindow is the energy series up to the shown frame.
func (p Player) energyWindow() []float64 {
	if len(p.energies) == 0 {
		return nil
	}
	end := min(p.frame+1, len(p.energies))
	return p.energies[:end]
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from step 1      ║
║  [ ]      - Seek back/forward        ║
║  + -      - Double/halve speed       ║
║  T        - Trail: full/short/off    ║
║  L        - Toggle labels            ║
║  C        - Cycle colour themes      ║
║  z Z      - Zoom in/out              ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
