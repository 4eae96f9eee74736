package qdjsim

import (
	"fmt"
	"math/cmplx"
	"strings"
	"testing"
)

func TestDeutschJozsaQASMExport(t *testing.T) {
	// f(x) = lowest bit of x, over two input qubits.
	oracle, err := BuildOracle(func(x int) (int, error) { return x & 1, nil }, 2)
	if err != nil {
		t.Fatalf("BuildOracle error: %v", err)
	}

	qasm := BuildCircuit(oracle).ToQASM()
	fmt.Printf("Deutsch–Jozsa QASM output:\n%s\n", qasm)

	wants := []string{
		"OPENQASM 2.0;",
		"qreg q[3];",
		"creg c[2];",
		"x q[2];",
		"h q[0];",
		"barrier q[0], q[1], q[2];",
		"x q[1];",
		"ccx q[0], q[1], q[2];",
		"measure q[0] -> c[0];",
		"measure q[1] -> c[1];",
	}
	for _, want := range wants {
		if !strings.Contains(qasm, want) {
			t.Errorf("expected %q in QASM output, got:\n%s", want, qasm)
		}
	}
}

func TestSingleControlExportsAsCX(t *testing.T) {
	c := Circuit{NumQubits: 2}
	c.AddMCX([]int{0}, 1, 0)

	qasm := c.ToQASM()
	if !strings.Contains(qasm, "cx q[0], q[1];") {
		t.Errorf("expected 'cx q[0], q[1];' in QASM, got:\n%s", qasm)
	}
}

func TestManyControlsExportAsMCX(t *testing.T) {
	c := Circuit{NumQubits: 4}
	c.AddMCX([]int{0, 1, 2}, 3, 0)

	qasm := c.ToQASM()
	if !strings.Contains(qasm, "mcx q[0], q[1], q[2], q[3];") {
		t.Errorf("expected 'mcx q[0], q[1], q[2], q[3];' in QASM, got:\n%s", qasm)
	}
}

func TestRoundTripQASM(t *testing.T) {
	oracle, err := BuildOracle(parity, 2)
	if err != nil {
		t.Fatalf("BuildOracle error: %v", err)
	}
	c := BuildCircuit(oracle)

	qasm := c.ToQASM()
	c2 := Circuit{}
	if err := c2.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}

	if c2.NumQubits != c.NumQubits {
		t.Errorf("round-trip NumQubits: got %d, want %d", c2.NumQubits, c.NumQubits)
	}

	// The parsed circuit must execute the same gate sequence.
	got := c2.Ordered()
	want := c.Ordered()
	if len(got) != len(want) {
		t.Fatalf("round-trip gate count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type != want[i].Type || got[i].Target != want[i].Target {
			t.Errorf("gate %d: got %s q[%d], want %s q[%d]",
				i, got[i].Type, got[i].Target, want[i].Type, want[i].Target)
		}
	}

	// Both circuits must produce identical final states.
	s1 := c.Run()
	s2 := c2.Run()
	for i := range s1.Amplitudes {
		if cmplx.Abs(s1.Amplitudes[i]-s2.Amplitudes[i]) > 1e-12 {
			t.Errorf("basis %d: amplitudes diverge after round trip: %v vs %v",
				i, s1.Amplitudes[i], s2.Amplitudes[i])
		}
	}
}

func TestCircuitLookupHelpers(t *testing.T) {
	oracle, err := BuildOracle(parity, 2)
	if err != nil {
		t.Fatalf("BuildOracle error: %v", err)
	}
	c := BuildCircuit(oracle)

	if got := c.NumCbits(); got != 2 {
		t.Errorf("NumCbits: got %d, want 2", got)
	}

	// Step 0 holds the ancilla flip and nothing on the input qubits.
	if g := c.GetGateAt(0, 2); g == nil || g.Type != "X" {
		t.Errorf("GetGateAt(0, 2): got %+v, want X on ancilla", g)
	}
	if g := c.GetGateAt(0, 0); g != nil {
		t.Errorf("GetGateAt(0, 0): got %+v, want nil", g)
	}

	// An MCX is found from both its controls and its target.
	var mcx *Gate
	for i := range c.Gates {
		if c.Gates[i].Type == "MCX" {
			mcx = &c.Gates[i]
			break
		}
	}
	if mcx == nil {
		t.Fatal("no MCX gate in circuit")
	}
	for _, q := range []int{0, 1, 2} {
		if g := c.GetGateAt(mcx.Step, q); g == nil || g.Type != "MCX" {
			t.Errorf("GetGateAt(%d, %d): got %+v, want the MCX", mcx.Step, q, g)
		}
	}
}

func TestParseQASMRejectsUnsupportedGates(t *testing.T) {
	lines := []string{
		"rz(0.5) q[0];",
		"cz q[0], q[1];",
		"swap q[0], q[1];",
		"reset q[0];",
	}
	for _, line := range lines {
		qasm := "OPENQASM 2.0;\nqreg q[2];\ncreg c[2];\n" + line + "\n"
		c := Circuit{}
		if err := c.ParseQASM(qasm); err == nil {
			t.Errorf("expected error parsing %q, got none", line)
		}
	}
}

func TestParseQASMReadsRegisterWidth(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[5];
creg c[5];

h q[0];
x q[4];`

	c := Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if c.NumQubits != 5 {
		t.Errorf("NumQubits: got %d, want 5", c.NumQubits)
	}
	if len(c.Gates) != 2 {
		t.Errorf("gate count: got %d, want 2", len(c.Gates))
	}
}
