package main

import (
	"fmt"
	"slices"
	"strings"

	"qdjsim"
)

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate type.
func gateDisplayName(gateType string) string {
	if gateType == "MEASURE" {
		return "M"
	}
	return gateType
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *qdjsim.Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	isBarrier   bool
}

// cellAt returns rendering information for the cell at (step, qubit).
func cellAt(c *qdjsim.Circuit, step, qubit int) cellInfo {
	var info cellInfo

	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step != step {
			continue
		}
		if g.Type == "BARRIER" {
			info.isBarrier = true
			continue
		}
		if g.Target == qubit || slices.Contains(g.Controls, qubit) {
			info.gate = g
			if g.Type == "MCX" {
				info.isControl = slices.Contains(g.Controls, qubit)
				info.isTarget = g.Target == qubit
			}
		}

		// Vertical connections for multi-qubit gates.
		if len(g.Controls) > 0 {
			minQ, maxQ := g.Target, g.Target
			for _, ctrl := range g.Controls {
				minQ = min(minQ, ctrl)
				maxQ = max(maxQ, ctrl)
			}
			if qubit > minQ && qubit <= maxQ {
				info.vertAbove = true
			}
			if qubit >= minQ && qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}

// renderCell returns 3 lines (top, mid, bot) for a single cell, each
// exactly cellW visual characters wide.
func renderCell(info cellInfo) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.gate != nil && info.isControl:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil && info.isTarget:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render("⊕") + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.gate.Type), gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	return
}

// renderCircuitPanel renders the assembled Deutsch–Jozsa circuit grid.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Deutsch–Jozsa Circuit"))
	sb.WriteString("\n\n")

	if m.circuit == nil {
		sb.WriteString(dimStyle.Render("no circuit"))
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	availWidth := width - labelW - 4
	maxSteps := max(availWidth/cellW, 1)
	displaySteps := min(m.circuit.MaxSteps, maxSteps)

	// Step number header
	header := strings.Repeat(" ", labelW)
	for step := range displaySteps {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := range m.circuit.NumQubits {
		label := fmt.Sprintf("q[%d]", qubit)
		if qubit == m.circuit.NumQubits-1 {
			label = "anc"
		}
		topLine := strings.Repeat(" ", labelW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelW)

		for step := range displaySteps {
			top, mid, bot := renderCell(cellAt(m.circuit, step, qubit))
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	if displaySteps < m.circuit.MaxSteps {
		fmt.Fprintf(&sb, "\n%s", dimStyle.Render(fmt.Sprintf("… %d more step(s) not shown", m.circuit.MaxSteps-displaySteps)))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderSetupPanel renders the function picker and run parameters.
func (m Model) renderSetupPanel(width int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Oracle Function"))
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		line := fmt.Sprintf("%-8s", e.Name)
		if i == m.menuIdx {
			sb.WriteString(menuSelectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString(menuNormalStyle.Render("  " + line))
		}
		sb.WriteString(dimStyle.Render(e.Kind))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(m.entries[m.menuIdx].Summary))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Input qubits: %d   Shots: %d\n", m.numQubits, m.shots)

	if m.errMsg != "" {
		sb.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑↓ Function  +/- Qubits  [ ] Shots"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("⏎ Resample  Tab QASM  q Quit"))

	return setupStyle.Width(width).Render(sb.String())
}

// renderResultsPanel renders the sampled counts as a histogram.
func (m Model) renderResultsPanel(width int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Measurement Counts"))
	sb.WriteString("\n\n")

	if len(m.counts) == 0 {
		sb.WriteString(dimStyle.Render("no samples"))
		return resultsStyle.Width(width).Render(sb.String())
	}

	bitstrings := make([]string, 0, len(m.counts))
	maxCount := 0
	for b, n := range m.counts {
		bitstrings = append(bitstrings, b)
		maxCount = max(maxCount, n)
	}
	slices.Sort(bitstrings)

	total := m.counts.Total()
	barW := max(width-m.numQubits-18, 4)
	for _, b := range bitstrings {
		n := m.counts[b]
		filled := n * barW / maxCount
		sb.WriteString(b)
		sb.WriteString(" ")
		sb.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		fmt.Fprintf(&sb, " %d (%.1f%%)\n", n, 100*float64(n)/float64(total))
	}

	sb.WriteString("\n")
	sb.WriteString(verdictStyle.Render("verdict: " + m.verdict))

	return resultsStyle.Width(width).Render(sb.String())
}

// renderQASMPanel renders the scrollable OpenQASM view.
func (m Model) renderQASMPanel(width int) string {
	var sb strings.Builder

	title := "OpenQASM 2.0"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.qasmView.View())

	return qasmStyle.Width(width).Render(sb.String())
}
