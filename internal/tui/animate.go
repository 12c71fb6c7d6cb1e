// Package tui plays back a recorded trajectory as a terminal animation.
package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BjoB/gros/internal/trajectory"
	"github.com/BjoB/gros/internal/viz"
)

const (
	canvasWidth  = 70
	canvasHeight = 24
	frameDelay   = 50 * time.Millisecond

	// maxFrames caps the animation length for very dense datasets.
	maxFrames = 500
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	metricStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Italic(true)
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

type tickMsg time.Time

// Model animates a trajectory dataset frame by frame. The animation step
// size is a down-sampling cadence in proper-time seconds; zero shows every
// recorded point.
type Model struct {
	ds     *trajectory.Dataset
	frames []int // point indices shown per frame

	frame   int
	playing bool
}

// NewModel prepares the playback of ds, down-sampled to one frame per
// animStepSize seconds of proper time.
func NewModel(ds *trajectory.Dataset, animStepSize float64) Model {
	return Model{
		ds:      ds,
		frames:  frameIndices(ds, animStepSize),
		playing: true,
	}
}

// frameIndices selects the point indices to display, at most one per
// animStepSize of proper time and capped at maxFrames.
func frameIndices(ds *trajectory.Dataset, animStepSize float64) []int {
	points := ds.Points()
	if len(points) == 0 {
		return nil
	}

	indices := make([]int, 0, len(points))
	nextTau := points[0].Tau
	for i, p := range points {
		if p.Tau >= nextTau {
			indices = append(indices, i)
			nextTau = p.Tau + animStepSize
		}
	}
	if last := len(points) - 1; indices[len(indices)-1] != last {
		indices = append(indices, last)
	}

	if len(indices) > maxFrames {
		stride := (len(indices) + maxFrames - 1) / maxFrames
		kept := indices[:0]
		for i := 0; i < len(indices); i += stride {
			kept = append(kept, indices[i])
		}
		indices = kept
	}
	return indices
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameDelay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}
			return m, nil
		case "r":
			m.frame = 0
			m.playing = true
			return m, tick()
		}

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		if m.frame < len(m.frames)-1 {
			m.frame++
			return m, tick()
		}
		m.playing = false
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.frames) == 0 {
		return "no trajectory points\n" + keyStyle.Render("q: quit") + "\n"
	}

	upto := m.frames[m.frame]
	points := m.ds.Points()
	partial := trajectory.FromPoints(points[:upto+1], m.ds.Rs())

	view := titleStyle.Render("particle orbit in gravitational field") + "\n"
	view += viz.OrbitPlot(partial, canvasWidth, canvasHeight)

	current := points[upto]
	r := math.Sqrt(current.X*current.X + current.Y*current.Y + current.Z*current.Z)
	view += fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("tau[s]:"), metricStyle.Render(fmt.Sprintf("%-12.4g", current.Tau)),
		labelStyle.Render("t[s]:"), metricStyle.Render(fmt.Sprintf("%-12.4g", current.T)),
		labelStyle.Render("r[m]:"), metricStyle.Render(fmt.Sprintf("%-12.4g", r)),
	)

	if !m.playing && m.frame == len(m.frames)-1 {
		view += doneStyle.Render("playback finished") + "\n"
	}
	view += keyStyle.Render("space: pause/resume  r: restart  q: quit") + "\n"
	return view
}

// Run starts the animation program and blocks until it exits.
func Run(ds *trajectory.Dataset, animStepSize float64) error {
	p := tea.NewProgram(NewModel(ds, animStepSize))
	_, err := p.Run()
	return err
}
