package qdjsim

import (
	"fmt"
	"math/cmplx"
)

type Complex = complex128

// StateVector is the dense amplitude vector of a qubit register.
//
// Qubit q occupies bit q of the basis index, so qubit 0 is the least
// significant bit. Bitstrings produced elsewhere in this package render
// the most significant qubit first, which puts qubit 0 rightmost.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns a register of numQubits qubits initialized to
// the all-zero basis state |0...0⟩.
func NewStateVector(numQubits int) *StateVector {
	if numQubits < 1 {
		panic(fmt.Sprintf("qdjsim: state vector needs at least 1 qubit, got %d", numQubits))
	}
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Amplitude returns the amplitude of basis state i. An index outside
// [0, 2^NumQubits) is a contract violation and panics.
func (s *StateVector) Amplitude(i int) Complex {
	if i < 0 || i >= len(s.Amplitudes) {
		panic(fmt.Sprintf("qdjsim: basis index %d out of range [0, %d)", i, len(s.Amplitudes)))
	}
	return s.Amplitudes[i]
}

// Probability returns the probability of observing basis state i.
func (s *StateVector) Probability(i int) float64 {
	amp := s.Amplitude(i)
	return real(amp * cmplx.Conj(amp))
}

// Norm returns the sum of squared amplitude magnitudes. Unitary gates
// keep it within floating-point tolerance of 1.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, amp := range s.Amplitudes {
		total += real(amp * cmplx.Conj(amp))
	}
	return total
}

func (s *StateVector) checkQubit(q int) {
	if q < 0 || q >= s.NumQubits {
		panic(fmt.Sprintf("qdjsim: qubit %d out of range [0, %d)", q, s.NumQubits))
	}
}
