package viz

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/circlesim/internal/circles"
	"github.com/san-kum/circlesim/internal/sim"
)

const (
	canvasWidth  = 70
	canvasHeight = 22
	historyLen   = 120
	// Above this many circles outlines turn into center dots.
	outlineLimit = 256
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).MarginTop(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type frameMsg struct {
	stats sim.IterationStats
	ens   []circles.Circle
}

type doneMsg struct{ err error }

// channelObserver forwards iteration snapshots to the UI. Sends never
// block: when the UI lags, frames are dropped rather than stalling the
// workers.
type channelObserver struct {
	frames chan frameMsg
}

func (o channelObserver) OnIteration(stats sim.IterationStats, ens []circles.Circle) {
	select {
	case o.frames <- frameMsg{stats: stats, ens: circles.Clone(ens)}:
	default:
	}
}

// Model is the live view: the simulation runs on its own goroutines and
// streams snapshots in, the UI renders whatever arrived last.
type Model struct {
	cfg      sim.Config
	frames   chan frameMsg
	done     chan doneMsg
	cancel   context.CancelFunc
	canvas   *Canvas
	current  frameMsg
	history  []float64
	finished bool
	err      error
}

func NewModel(cfg sim.Config) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		cfg:    cfg,
		frames: make(chan frameMsg, 8),
		done:   make(chan doneMsg, 1),
		cancel: cancel,
		canvas: NewCanvas(canvasWidth, canvasHeight),
	}

	go func() {
		r := sim.New(cfg)
		r.AddObserver(channelObserver{frames: m.frames})
		_, err := r.Run(ctx)
		m.done <- doneMsg{err: err}
	}()

	return m
}

func (m Model) Init() tea.Cmd {
	return m.wait()
}

func (m Model) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames:
			return f
		case d := <-m.done:
			return d
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case frameMsg:
		m.current = msg
		m.history = append(m.history, float64(msg.stats.Overlaps))
		if len(m.history) > historyLen {
			m.history = m.history[1:]
		}
		return m, m.wait()
	case doneMsg:
		m.finished = true
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("circlesim: %d circles, %d workers", m.cfg.N, m.cfg.Workers))

	m.canvas.Clear()
	m.drawEnsemble(m.current.ens)

	var rows []string
	rows = append(rows, statRow("iteration", fmt.Sprintf("%d / %d", m.current.stats.Iteration, m.cfg.Iterations)))
	rows = append(rows, statRow("overlaps", fmt.Sprintf("%d", m.current.stats.Overlaps)))
	rows = append(rows, statRow("iter time", fmt.Sprintf("%.3f s", m.current.stats.Elapsed.Seconds())))

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history, asciigraph.Height(6), asciigraph.Width(36))
		rows = append(rows, graphStyle.Render(graph))
	}
	if m.finished {
		if m.err != nil {
			rows = append(rows, doneStyle.Render(fmt.Sprintf("stopped: %v", m.err)))
		} else {
			rows = append(rows, doneStyle.Render("done"))
		}
	}
	rows = append(rows, helpStyle.Render("q: quit"))

	sidebar := lipgloss.JoinVertical(lipgloss.Left, rows...)
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), "  ", sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func statRow(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) drawEnsemble(ens []circles.Circle) {
	f := m.cfg.Field
	if f.Width() <= 0 || f.Height() <= 0 {
		return
	}
	sx := float64(m.canvas.PixelWidth()-1) / f.Width()
	sy := float64(m.canvas.PixelHeight()-1) / f.Height()

	for _, c := range ens {
		px := int((c.X - f.XMin) * sx)
		py := int((f.YMax - c.Y) * sy) // screen y grows downward
		if len(ens) <= outlineLimit {
			r := int(c.R * sx)
			m.canvas.DrawCircle(px, py, r)
		} else {
			m.canvas.Set(px, py)
		}
	}
}
