package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qdjsim"
	"qdjsim/internal/catalog"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusSetup focus = iota
	focusQASM
)

// Model represents the TUI application state.
type Model struct {
	entries   []catalog.Entry
	menuIdx   int
	numQubits int
	shots     int

	circuit *qdjsim.Circuit
	counts  qdjsim.Counts
	verdict string
	errMsg  string

	qasmView viewport.Model
	focus    focus
	width    int
	height   int
}

func initialModel() Model {
	m := Model{
		entries:   catalog.Entries(),
		numQubits: 2,
		shots:     1024,
		qasmView:  viewport.New(40, 10),
	}
	m.runAlgorithm()
	return m
}

// runAlgorithm rebuilds the oracle and circuit for the current
// selection, resamples, and refreshes the QASM view.
func (m *Model) runAlgorithm() {
	m.errMsg = ""
	entry := m.entries[m.menuIdx]

	oracle, err := qdjsim.BuildOracle(entry.Make(m.numQubits), m.numQubits)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.circuit = qdjsim.BuildCircuit(oracle)
	m.qasmView.SetContent(m.circuit.ToQASM())

	counts, err := qdjsim.Run(oracle, m.shots, nil)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.counts = counts

	if counts[strings.Repeat("0", m.numQubits)] == counts.Total() {
		m.verdict = "constant"
	} else {
		m.verdict = "balanced"
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width-setupW-8, 24)
		m.qasmView.Width = qasmW
		m.qasmView.Height = max(msg.Height/2-6, 4)

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusSetup:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
			case "up", "k":
				if m.menuIdx > 0 {
					m.menuIdx--
					m.runAlgorithm()
				}
			case "down", "j":
				if m.menuIdx < len(m.entries)-1 {
					m.menuIdx++
					m.runAlgorithm()
				}
			case "+", "=":
				if m.numQubits < 6 {
					m.numQubits++
					m.runAlgorithm()
				}
			case "-":
				if m.numQubits > 1 {
					m.numQubits--
					m.runAlgorithm()
				}
			case "[":
				if m.shots > 64 {
					m.shots /= 2
					m.runAlgorithm()
				}
			case "]":
				if m.shots < 1<<16 {
					m.shots *= 2
					m.runAlgorithm()
				}
			case "enter", "r":
				// Resample with fresh randomness.
				m.runAlgorithm()
			}

		case focusQASM:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusSetup
			default:
				var cmd tea.Cmd
				m.qasmView, cmd = m.qasmView.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	rightW := max(m.width-setupW-4, 30)
	circuitH := max(m.height/2-2, 8)

	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		m.renderSetupPanel(setupW),
		m.renderResultsPanel(setupW),
	)
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCircuitPanel(rightW, circuitH),
		m.renderQASMPanel(rightW),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
}
