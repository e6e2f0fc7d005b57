// Package viz renders an in-progress simulation run in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motorlab/internal/engine"
	"github.com/san-kum/motorlab/internal/motor"
	"github.com/san-kum/motorlab/internal/units"
)

const (
	graphWidth    = 80
	graphHeight   = 10
	historyWindow = 400
)

// stepsPerFrame trades animation smoothness against wall-clock duration:
// at 5 us steps and 30 fps this plays the 0.1 s horizon in about 3 s.
const stepsPerFrame = 200

type TickMsg time.Time

// Model steps one simulation run and plots its recent history.
type Model struct {
	eng    *engine.Engine
	inputs engine.Inputs
	run    *engine.Run

	last    engine.Sample
	speeds  []float64
	volts   []float64
	torques []float64

	running bool
	err     error
}

// NewModel starts a run for the live view. The motor and config are
// fixed for the lifetime of the view; r restarts with the same inputs.
func NewModel(p motor.Parameters, cfg engine.Config, in engine.Inputs) (Model, error) {
	eng := engine.New(p, cfg)
	run, err := eng.Start(in)
	if err != nil {
		return Model{}, err
	}
	return Model{
		eng:     eng,
		inputs:  in,
		run:     run,
		speeds:  make([]float64, 0, historyWindow),
		volts:   make([]float64, 0, historyWindow),
		torques: make([]float64, 0, historyWindow),
		running: true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			run, err := m.eng.Start(m.inputs)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.run = run
			m.speeds = m.speeds[:0]
			m.volts = m.volts[:0]
			m.torques = m.torques[:0]
			m.running = true
		}
	case TickMsg:
		if m.running && !m.run.Done() {
			for i := 0; i < stepsPerFrame && !m.run.Done(); i++ {
				m.last = m.run.Step()
			}
			tr := m.run.Trace()
			n := tr.Len()
			m.speeds = window(tr.SpeedRPM, n)
			m.volts = window(tr.Voltage, n)
			m.torques = window(tr.Torque, n)
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func window(seq []float64, n int) []float64 {
	if n > historyWindow {
		return seq[n-historyWindow : n]
	}
	return seq[:n]
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("motorlab live"))
	b.WriteString("\n")

	if len(m.speeds) >= 2 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.speeds,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("speed (RPM)"),
		)))
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.volts,
			asciigraph.Height(graphHeight/2),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("voltage (x100 V)"),
		)))
		b.WriteString("\n")
	}

	stats := []string{
		statRow("t", fmt.Sprintf("%8.4f s", m.last.Time)),
		statRow("speed", fmt.Sprintf("%8.1f RPM", units.RadPerSecToRPM(m.last.Speed))),
		statRow("current", fmt.Sprintf("%8.3f A", m.last.Current)),
		statRow("voltage", fmt.Sprintf("%8.3f V", m.last.Voltage)),
		statRow("torque cmd", fmt.Sprintf("%8.4f Nm", m.last.TorqueCmd)),
	}
	b.WriteString(statsStyle.Render(strings.Join(stats, "\n")))
	b.WriteString("\n")

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.run.Done() {
		status = "done"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("[%s]  space: pause  r: restart  q: quit", status)))
	b.WriteString("\n")

	return b.String()
}

func statRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
