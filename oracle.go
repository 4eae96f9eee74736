package qdjsim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWidth reports an oracle requested over fewer than one
	// input qubit.
	ErrInvalidWidth = errors.New("input width must be at least 1")

	// ErrInvalidShots reports a non-positive shot count.
	ErrInvalidShots = errors.New("shot count must be positive")
)

// Predicate is a total classical Boolean function on [0, 2^n). The
// returned value is reduced mod 2, so any odd value counts as 1. An
// error from any evaluation aborts oracle synthesis.
type Predicate func(x int) (int, error)

// Oracle is the gate sequence implementing U_f |x⟩|y⟩ = |x⟩|y⊕f(x)⟩
// over NumInputs input qubits plus one ancilla at index NumInputs.
// It is immutable once built and can be replayed across runs.
type Oracle struct {
	NumInputs int
	Gates     []Gate
}

// steps returns the number of timeline steps the oracle occupies.
func (o *Oracle) steps() int {
	n := 0
	for _, g := range o.Gates {
		n = max(n, g.Step+1)
	}
	return n
}

// BuildOracle synthesizes the oracle for f over n input qubits.
//
// For every x with f(x) odd it emits Pauli-X gates on the input qubits
// whose bit in x is 0, one multi-controlled X from all inputs onto the
// ancilla, and the same X gates again to uncompute the encoding. The
// X layer makes the all-ones control condition match exactly |x⟩, so
// each term flips the ancilla for its own basis state only. A
// constant-0 f produces an empty gate sequence.
func BuildOracle(f Predicate, n int) (*Oracle, error) {
	if n < 1 {
		return nil, fmt.Errorf("build oracle: %w, got %d", ErrInvalidWidth, n)
	}

	controls := make([]int, n)
	for i := range controls {
		controls[i] = i
	}

	oracle := &Oracle{NumInputs: n}
	step := 0
	for x := 0; x < 1<<n; x++ {
		bit, err := f(x)
		if err != nil {
			return nil, fmt.Errorf("build oracle: evaluate f(%d): %w", x, err)
		}
		if bit%2 == 0 {
			continue
		}

		zeroBits := 0
		for i := 0; i < n; i++ {
			if (x>>i)&1 == 0 {
				oracle.Gates = append(oracle.Gates, Gate{Type: "X", Target: i, Step: step})
				zeroBits++
			}
		}
		if zeroBits > 0 {
			step++
		}

		mcx := Gate{Type: "MCX", Target: n, Step: step}
		mcx.Controls = append(mcx.Controls, controls...)
		oracle.Gates = append(oracle.Gates, mcx)
		step++

		for i := 0; i < n; i++ {
			if (x>>i)&1 == 0 {
				oracle.Gates = append(oracle.Gates, Gate{Type: "X", Target: i, Step: step})
			}
		}
		if zeroBits > 0 {
			step++
		}
	}

	return oracle, nil
}
