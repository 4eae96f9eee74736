package qdjsim

import "math"

// ApplyH applies a Hadamard gate to qubit q in place.
//
// Each pair of basis indices differing only in bit q is visited exactly
// once, by iterating over the indices with bit q clear.
func (s *StateVector) ApplyH(q int) {
	s.checkQubit(q)
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a0 + a1)
			s.Amplitudes[j] = hFactor * (a0 - a1)
		}
	}
}

// ApplyX applies a Pauli-X (NOT) gate to qubit q in place.
func (s *StateVector) ApplyX(q int) {
	s.checkQubit(q)
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// ApplyMCX applies a multi-controlled X gate: the target qubit is
// flipped on every basis state whose control qubits are all 1, and no
// other amplitude is touched. With an empty control set it reduces to
// ApplyX. Pairs are processed once, from the side with the target bit
// clear.
func (s *StateVector) ApplyMCX(controls []int, target int) {
	s.checkQubit(target)
	ctrlMask := 0
	for _, c := range controls {
		s.checkQubit(c)
		if c == target {
			panic("qdjsim: MCX control and target overlap")
		}
		ctrlMask |= 1 << c
	}
	n := len(s.Amplitudes)
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&ctrlMask == ctrlMask && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}
