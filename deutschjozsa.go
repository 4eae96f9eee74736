package qdjsim

import (
	"fmt"
	"math/rand/v2"
)

// Counts maps measured input-register bitstrings to occurrence counts.
// Bitstrings read most-significant qubit first, so qubit 0 is the
// rightmost character.
type Counts map[string]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// FormatBitstring renders basis index x over width qubits, qubit 0
// rightmost.
func FormatBitstring(x, width int) string {
	return fmt.Sprintf("%0*b", width, x)
}

// BuildCircuit assembles the full Deutsch–Jozsa circuit for an oracle:
// ancilla prepared in |1⟩, Hadamards on every qubit, the oracle's gate
// sequence between barriers, Hadamards on the input register, and final
// measurements of the input qubits. The ancilla is never measured.
func BuildCircuit(oracle *Oracle) *Circuit {
	n := oracle.NumInputs
	c := &Circuit{NumQubits: n + 1}

	step := 0
	c.AddGate("X", n, step)
	step++
	for q := 0; q <= n; q++ {
		c.AddGate("H", q, step)
	}
	step++

	c.AddBarrier(step)
	step++
	for _, gate := range oracle.Gates {
		switch gate.Type {
		case "MCX":
			c.AddMCX(gate.Controls, gate.Target, step+gate.Step)
		default:
			c.AddGate(gate.Type, gate.Target, step+gate.Step)
		}
	}
	step += oracle.steps()
	c.AddBarrier(step)
	step++

	for q := 0; q < n; q++ {
		c.AddGate("H", q, step)
	}
	step++
	for q := 0; q < n; q++ {
		c.AddGate("MEASURE", q, step)
	}

	return c
}

// InputDistribution simulates the Deutsch–Jozsa circuit once and
// returns the exact probability of each input-register bitstring,
// indexed by basis value. The ancilla is traced out: the probability of
// input value b sums |amplitude|² over both ancilla states.
func InputDistribution(oracle *Oracle) []float64 {
	state := BuildCircuit(oracle).Run()
	n := oracle.NumInputs
	mask := 1<<n - 1
	probs := make([]float64, 1<<n)
	for i := range state.Amplitudes {
		probs[i&mask] += state.Probability(i)
	}
	return probs
}

// Run simulates the Deutsch–Jozsa circuit for the oracle once, then
// draws shots samples from the resulting marginal distribution over the
// input register. The distribution is fixed after the single
// simulation, so sampling never re-executes the circuit.
//
// A nil rng selects an auto-seeded generator; pass a seeded *rand.Rand
// for reproducible runs.
func Run(oracle *Oracle, shots int, rng *rand.Rand) (Counts, error) {
	if oracle == nil || oracle.NumInputs < 1 {
		return nil, fmt.Errorf("run: %w", ErrInvalidWidth)
	}
	if shots <= 0 {
		return nil, fmt.Errorf("run: %w, got %d", ErrInvalidShots, shots)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	probs := InputDistribution(oracle)
	counts := make(Counts)
	for shot := 0; shot < shots; shot++ {
		idx := sampleIndex(probs, rng)
		counts[FormatBitstring(idx, oracle.NumInputs)]++
	}
	return counts, nil
}

// sampleIndex draws one index from the categorical distribution probs.
func sampleIndex(probs []float64, rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return i
		}
	}
	// Round-off can leave the cumulative sum marginally below 1; the
	// tail belongs to the last outcome with any probability mass.
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return len(probs) - 1
}
