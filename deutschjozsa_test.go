package qdjsim

import (
	"math/bits"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// majority is balanced on 3 input bits and non-linear, so the final
// distribution spreads over several outcomes.
func majority(x int) (int, error) {
	if bits.OnesCount(uint(x)) >= 2 {
		return 1, nil
	}
	return 0, nil
}

func seededRNG(a, b uint64) *rand.Rand {
	return rand.New(rand.NewPCG(a, b))
}

func TestConstantZeroAlwaysAllZeros(t *testing.T) {
	oracle, err := BuildOracle(constantZero, 3)
	require.NoError(t, err)

	counts, err := Run(oracle, 1024, seededRNG(1, 2))
	require.NoError(t, err)
	assert.Equal(t, Counts{"000": 1024}, counts)
}

func TestConstantOneAlwaysAllZeros(t *testing.T) {
	oracle, err := BuildOracle(constantOne, 2)
	require.NoError(t, err)

	counts, err := Run(oracle, 512, seededRNG(3, 4))
	require.NoError(t, err)
	assert.Equal(t, Counts{"00": 512}, counts)
}

func TestParityBalancedNeverAllZero(t *testing.T) {
	oracle, err := BuildOracle(parity, 2)
	require.NoError(t, err)

	dist := InputDistribution(oracle)
	assert.InDelta(t, 0, dist[0], 1e-12, "all-zero outcome must have zero probability")

	// f(x) = x·(1,1) concentrates all mass on |11⟩.
	counts, err := Run(oracle, 500, seededRNG(5, 6))
	require.NoError(t, err)
	assert.Equal(t, Counts{"11": 500}, counts)
}

func TestIdentityOneQubit(t *testing.T) {
	identity := func(x int) (int, error) { return x, nil }
	oracle, err := BuildOracle(identity, 1)
	require.NoError(t, err)

	counts, err := Run(oracle, 1000, seededRNG(7, 8))
	require.NoError(t, err)
	assert.Equal(t, Counts{"1": 1000}, counts)
}

func TestShotConservation(t *testing.T) {
	oracle, err := BuildOracle(majority, 3)
	require.NoError(t, err)

	counts, err := Run(oracle, 137, seededRNG(9, 10))
	require.NoError(t, err)
	assert.Equal(t, 137, counts.Total())
	for bitstring, count := range counts {
		assert.Len(t, bitstring, 3)
		assert.Positive(t, count)
	}
}

func TestRunRejectsInvalidShots(t *testing.T) {
	oracle, err := BuildOracle(constantZero, 2)
	require.NoError(t, err)

	for _, shots := range []int{0, -3} {
		counts, err := Run(oracle, shots, nil)
		require.ErrorIs(t, err, ErrInvalidShots, "shots=%d", shots)
		assert.Nil(t, counts)
	}
}

func TestRunRejectsNilOracle(t *testing.T) {
	counts, err := Run(nil, 100, nil)
	require.ErrorIs(t, err, ErrInvalidWidth)
	assert.Nil(t, counts)
}

func TestRunDeterministicWithSeededSource(t *testing.T) {
	oracle, err := BuildOracle(majority, 3)
	require.NoError(t, err)

	first, err := Run(oracle, 2048, seededRNG(42, 43))
	require.NoError(t, err)
	second, err := Run(oracle, 2048, seededRNG(42, 43))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Greater(t, len(first), 1, "majority oracle spreads over several outcomes")
	assert.NotContains(t, first, "000", "balanced f never yields all zeros")
}

func TestInputDistributionSumsToOne(t *testing.T) {
	for _, f := range []Predicate{constantZero, constantOne, parity, majority} {
		oracle, err := BuildOracle(f, 3)
		require.NoError(t, err)

		total := 0.0
		for _, p := range InputDistribution(oracle) {
			total += p
		}
		assert.InDelta(t, 1.0, total, 1e-9)
	}
}

func TestBuildCircuitLayout(t *testing.T) {
	oracle, err := BuildOracle(parity, 2)
	require.NoError(t, err)

	c := BuildCircuit(oracle)
	assert.Equal(t, 3, c.NumQubits)

	byType := map[string]int{}
	for _, g := range c.Gates {
		byType[g.Type]++
	}
	// X on the ancilla plus the oracle's four encode/uncompute X gates.
	assert.Equal(t, 5, byType["X"])
	// H on all three qubits, then on the two input qubits again.
	assert.Equal(t, 5, byType["H"])
	assert.Equal(t, 2, byType["MCX"])
	assert.Equal(t, 2, byType["BARRIER"])
	assert.Equal(t, 2, byType["MEASURE"])

	// The ancilla flip comes first and measurements come last.
	ordered := c.Ordered()
	assert.Equal(t, "X", ordered[0].Type)
	assert.Equal(t, 2, ordered[0].Target)
	assert.Equal(t, "MEASURE", ordered[len(ordered)-1].Type)
}

func TestFormatBitstring(t *testing.T) {
	assert.Equal(t, "000", FormatBitstring(0, 3))
	assert.Equal(t, "101", FormatBitstring(5, 3))
	assert.Equal(t, "1", FormatBitstring(1, 1))
	assert.Equal(t, "0011", FormatBitstring(3, 4))
}
