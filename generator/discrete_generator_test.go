package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestDiscreteGeneratorSingleValue(t *testing.T) {
	dg := NewDiscreteGenerator(NewRandom(0))
	dg.AddValue(1.0, "READ")
	dg.AddValue(0.0, "UPDATE")
	for i := 0; i < 100; i++ {
		require.Equal(t, "READ", dg.NextString())
		require.Equal(t, "READ", dg.LastString())
	}
}

func TestDiscreteGeneratorFallsThroughToFirst(t *testing.T) {
	// Weights sum to 0.6: the remaining 0.4 of the draw mass must land on
	// the first value added, not panic or skew the declared weights.
	dg := NewDiscreteGenerator(NewRandom(7))
	dg.AddValue(0.3, "READ")
	dg.AddValue(0.3, "UPDATE")
	counts := make(map[string]int)
	total := 10000
	for i := 0; i < total; i++ {
		counts[dg.NextString()]++
	}
	require.Equal(t, total, counts["READ"]+counts["UPDATE"])
	// READ receives its 0.3 plus the 0.4 fall-through.
	require.True(t, counts["READ"] > counts["UPDATE"])
	require.True(t, counts["READ"] > total/2)
}

func TestDiscreteGeneratorOrderIndependentOfWeight(t *testing.T) {
	// The first value is the fall-through target even with zero weight.
	dg := NewDiscreteGenerator(NewRandom(3))
	dg.AddValue(0.0, "READ")
	dg.AddValue(0.2, "UPDATE")
	counts := make(map[string]int)
	for i := 0; i < 5000; i++ {
		counts[dg.NextString()]++
	}
	require.True(t, counts["READ"] > 0)
	require.True(t, counts["UPDATE"] > 0)
	require.True(t, counts["READ"] > counts["UPDATE"])
}

func TestDiscreteGeneratorEmptyPanics(t *testing.T) {
	dg := NewDiscreteGenerator(NewRandom(0))
	require.Panics(t, func() { dg.NextString() })
}
