package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stargaze/pkg/config"
	"github.com/matzehuels/stargaze/pkg/pipeline"
	"github.com/matzehuels/stargaze/pkg/render"
	"github.com/matzehuels/stargaze/pkg/reveal"
	"github.com/matzehuels/stargaze/pkg/scene"
)

const (
	exploreFPS       = 30
	exploreRotate    = 5 * math.Pi / 180 // per key press
	exploreZoomIn    = 0.9
	exploreZoomOut   = 1 / exploreZoomIn
	exploreStars     = 250
	exploreRevealBar = 20
)

// exploreCommand creates the interactive viewer.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags sceneFlags

	cmd := &cobra.Command{
		Use:   "explore [dataset.json]",
		Short: "Orbit the constellation in the terminal",
		Long: `Explore opens an interactive view of the constellation. Rotate with the
arrow keys (or h/j/k/l), zoom with + and -, reset with r and quit with q.

The lines fade in as the view comes within reach of looking straight
down -Z, the way the scene was set up.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.apply(cmd, args)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), cfg, flags.metricsFile)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, cfg config.Config, metricsFile string) error {
	logger := loggerFromContext(ctx)
	defer enableMetrics(metricsFile, logger)()

	m, err := newExploreModel(ctx, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(exploreModel); ok {
		printInfo("Explored %d frames, peak reveal %.3f", fm.frames, fm.peak)
	}
	return nil
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/exploreFPS, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// exploreModel is the render-loop host: every tick advances the orbit one
// damped step, evaluates the reveal once and redraws.
type exploreModel struct {
	ctx    context.Context
	scene  *scene.Scene
	setup  config.Config
	orbit  *scene.Orbit
	stars  []scene.Star
	width  int
	height int
	reveal float64
	peak   float64
	frames int
}

func newExploreModel(ctx context.Context, cfg config.Config) (exploreModel, error) {
	points, err := cfg.Points()
	if err != nil {
		return exploreModel{}, err
	}
	s, err := pipeline.Build(ctx, points, pipeline.Options{
		Stride:   cfg.Stride,
		Policy:   cfg.Policy,
		Topology: cfg.Topology,
		Seed:     cfg.Seed,
		Camera:   cfg.CameraSetup(),
		Logger:   loggerFromContext(ctx),
	})
	if err != nil {
		return exploreModel{}, err
	}

	m := exploreModel{
		ctx:    ctx,
		scene:  s,
		setup:  cfg,
		orbit:  cfg.Orbit(),
		stars:  scene.Starfield(exploreStars, cfg.Seed),
		width:  80,
		height: 24,
	}
	m.step()
	return m, nil
}

func (m exploreModel) Init() tea.Cmd {
	return tick()
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.orbit.Rotate(-exploreRotate, 0)
		case "right", "l":
			m.orbit.Rotate(exploreRotate, 0)
		case "up", "k":
			m.orbit.Rotate(0, -exploreRotate)
		case "down", "j":
			m.orbit.Rotate(0, exploreRotate)
		case "+", "=":
			m.orbit.Zoom(exploreZoomIn)
		case "-", "_":
			m.orbit.Zoom(exploreZoomOut)
		case "r":
			m.orbit = m.setup.Orbit()
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 20)
		m.height = max(msg.Height-3, 5)
	case tickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

// step advances one frame. UpdateReveal runs exactly once per tick.
func (m *exploreModel) step() {
	m.orbit.Step()
	m.reveal = pipeline.Reveal(m.ctx, m.scene, m.orbit.Camera())
	m.peak = max(m.peak, m.reveal)
	m.frames++
}

// Cell kinds, drawn in increasing priority.
const (
	cellEmpty = iota
	cellStar
	cellEdge
	cellAnchor
)

var (
	exploreStarStyle   = lipgloss.NewStyle().Foreground(colorDim)
	exploreAnchorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	exploreEdgeStyles  = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("54")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("92")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("189")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
)

func (m exploreModel) View() string {
	var b strings.Builder

	cam := m.orbit.Camera()
	look := cam.LookDirection()
	b.WriteString(StyleTitle.Render("stargaze"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  look (%+.2f, %+.2f, %+.2f)  distance %.2f  ",
		look.X, look.Y, look.Z, m.orbit.Distance)))
	b.WriteString(revealBar(m.reveal))
	b.WriteString("\n")

	b.WriteString(m.canvas(cam))

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→/↑/↓ orbit  +/- zoom  r reset  q quit"))
	return b.String()
}

// canvas draws the scene on a character grid. Terminal cells are about
// twice as tall as wide, so the frame is composed at double height.
func (m exploreModel) canvas(cam scene.Camera) string {
	w, h := m.width, m.height
	grid := make([][]int, h)
	for i := range grid {
		grid[i] = make([]int, w)
	}
	put := func(x, y float64, kind int) {
		col, row := int(x), int(y/2)
		if col < 0 || col >= w || row < 0 || row >= h {
			return
		}
		grid[row][col] = max(grid[row][col], kind)
	}

	d := render.Compose(render.Frame{
		Scene:  m.scene,
		Camera: cam,
		Stars:  m.stars,
		Width:  w,
		Height: 2 * h,
	})
	for _, s := range d.Stars {
		put(s.X, s.Y, cellStar)
	}
	for _, l := range d.Lines {
		steps := int(max(math.Abs(l.X2-l.X1), math.Abs(l.Y2-l.Y1)/2)) + 1
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			put(l.X1+(l.X2-l.X1)*t, l.Y1+(l.Y2-l.Y1)*t, cellEdge)
		}
	}
	for _, a := range d.Anchors {
		put(a.X, a.Y, cellAnchor)
	}

	edgeStyle := exploreEdgeStyles[edgeLevel(d.Reveal)]
	var b strings.Builder
	for row, cells := range grid {
		if row > 0 {
			b.WriteString("\n")
		}
		for _, kind := range cells {
			switch kind {
			case cellStar:
				b.WriteString(exploreStarStyle.Render("."))
			case cellEdge:
				b.WriteString(edgeStyle.Render("·"))
			case cellAnchor:
				b.WriteString(exploreAnchorStyle.Render("*"))
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// edgeLevel maps a reveal intensity to an index in exploreEdgeStyles.
func edgeLevel(v float64) int {
	n := len(exploreEdgeStyles)
	i := int(v / reveal.Peak * float64(n))
	return max(0, min(n-1, i))
}

func revealBar(v float64) string {
	filled := int(math.Round(v / reveal.Peak * exploreRevealBar))
	filled = max(0, min(exploreRevealBar, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", exploreRevealBar-filled)
	return StyleDim.Render("reveal ") + StyleNumber.Render(bar) + StyleDim.Render(fmt.Sprintf(" %.3f", v))
}
