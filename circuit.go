package qdjsim

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	multiQubitRegex = regexp.MustCompile(`^(\w+)\s+(q\[\d+\](?:\s*,\s*q\[\d+\])+);?$`)
	qubitRefRegex   = regexp.MustCompile(`q\[(\d+)\]`)
	measureRegex    = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*c\[(\d+)\];?$`)
	qregRegex       = regexp.MustCompile(`qreg\s+\w+\[(\d+)\]`)
	barrierRegex    = regexp.MustCompile(`^barrier\s+`)
)

// Gate represents one operation placed on the circuit timeline.
type Gate struct {
	Type     string // "H", "X", "MCX", "MEASURE" or "BARRIER"
	Target   int    // -1 for barriers, which span all qubits
	Controls []int  // control qubits, MCX only
	Step     int    // position in circuit timeline
}

// Circuit holds an ordered gate sequence over a fixed qubit register.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// AddGate appends a single-qubit gate or measurement to the circuit.
func (c *Circuit) AddGate(gateType string, target, step int) {
	c.Gates = append(c.Gates, Gate{
		Type:   gateType,
		Target: target,
		Step:   step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddMCX appends a multi-controlled X gate to the circuit.
func (c *Circuit) AddMCX(controls []int, target, step int) {
	c.Gates = append(c.Gates, Gate{
		Type:     "MCX",
		Target:   target,
		Controls: slices.Clone(controls),
		Step:     step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddBarrier appends a barrier spanning all qubits at the given step.
func (c *Circuit) AddBarrier(step int) {
	c.Gates = append(c.Gates, Gate{
		Type:   "BARRIER",
		Target: -1,
		Step:   step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// Ordered returns the gates sorted by step. Insertion order is kept
// within a step, so gates added in sequence execute in sequence.
func (c *Circuit) Ordered() []Gate {
	gates := make([]Gate, len(c.Gates))
	copy(gates, c.Gates)
	slices.SortStableFunc(gates, func(a, b Gate) int {
		return a.Step - b.Step
	})
	return gates
}

// Run executes every unitary gate in timeline order against a fresh
// state vector and returns the final state. MEASURE and BARRIER are
// markers for export and rendering; they do not transform amplitudes.
func (c *Circuit) Run() *StateVector {
	state := NewStateVector(max(c.NumQubits, 1))
	for _, gate := range c.Ordered() {
		switch gate.Type {
		case "H":
			state.ApplyH(gate.Target)
		case "X":
			state.ApplyX(gate.Target)
		case "MCX":
			state.ApplyMCX(gate.Controls, gate.Target)
		}
	}
	return state
}

// gateReferences reports whether the gate acts on the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	if g.Target == qubit {
		return true
	}
	return slices.Contains(g.Controls, qubit)
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// NumCbits returns the number of classical bits needed (derived from
// measurements). Returns 0 when no measurements exist.
func (c *Circuit) NumCbits() int {
	maxMeasureQubit := -1
	for _, gate := range c.Gates {
		if gate.Type == "MEASURE" {
			maxMeasureQubit = max(maxMeasureQubit, gate.Target)
		}
	}
	return maxMeasureQubit + 1
}

// ToQASM generates OpenQASM 2.0 output from the circuit. Controlled-X
// gates are written as cx/ccx when the control count allows and in the
// generic mcx form otherwise.
func (c *Circuit) ToQASM() string {
	maxQubit := -1
	maxMeasureQubit := -1
	for _, gate := range c.Gates {
		maxQubit = max(maxQubit, gate.Target)
		for _, ctrl := range gate.Controls {
			maxQubit = max(maxQubit, ctrl)
		}
		if gate.Type == "MEASURE" {
			maxMeasureQubit = max(maxMeasureQubit, gate.Target)
		}
	}

	numQubits := max(maxQubit+1, c.NumQubits, 1)
	numCbits := max(maxMeasureQubit+1, 1)

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for _, gate := range c.Ordered() {
		switch gate.Type {
		case "BARRIER":
			qubits := make([]string, numQubits)
			for q := range numQubits {
				qubits[q] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(qubits, ", "))
		case "MEASURE":
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", gate.Target, gate.Target)
		case "MCX":
			name := "mcx"
			switch len(gate.Controls) {
			case 1:
				name = "cx"
			case 2:
				name = "ccx"
			}
			fmt.Fprintf(&sb, "%s ", name)
			for _, ctrl := range gate.Controls {
				fmt.Fprintf(&sb, "q[%d], ", ctrl)
			}
			fmt.Fprintf(&sb, "q[%d];\n", gate.Target)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", strings.ToLower(gate.Type), gate.Target)
		}
	}

	return sb.String()
}

// ParseQASM parses QASM text and rebuilds the circuit from it. Only the
// gate set the simulator executes is recognized: h, x, cx, ccx, mcx,
// measure and barrier. Anything else is an error.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	step := 0

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 1 {
				n, _ := strconv.Atoi(matches[1])
				c.NumQubits = n
			}
			continue
		}
		if strings.HasPrefix(line, "creg") {
			continue
		}
		if barrierRegex.MatchString(line) {
			c.AddBarrier(step)
			step++
			continue
		}

		// Measurement: "measure q[0] -> c[0];"
		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			target, _ := strconv.Atoi(matches[1])
			c.AddGate("MEASURE", target, step)
			step++
			continue
		}

		// Controlled-X family: "cx q[0], q[1];", "ccx ...", "mcx ..."
		if matches := multiQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			refs := qubitRefRegex.FindAllStringSubmatch(matches[2], -1)
			qubits := make([]int, len(refs))
			for i, ref := range refs {
				qubits[i], _ = strconv.Atoi(ref[1])
			}
			switch gateType {
			case "CX", "CCX", "MCX":
				c.AddMCX(qubits[:len(qubits)-1], qubits[len(qubits)-1], step)
			default:
				return fmt.Errorf("qdjsim: unsupported gate %q", matches[1])
			}
			step++
			continue
		}

		// Single-qubit gates: h, x
		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[2])
			switch gateType {
			case "H", "X":
				c.AddGate(gateType, target, step)
			default:
				return fmt.Errorf("qdjsim: unsupported gate %q", matches[1])
			}
			step++
			continue
		}

		return fmt.Errorf("qdjsim: unrecognized QASM line %q", line)
	}

	return nil
}
