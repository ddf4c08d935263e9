package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestConstantIntegerGenerator(t *testing.T) {
	value := int64(42)
	var g IntegerGenerator
	g = NewConstantIntegerGenerator(value)
	for i := 0; i < 10; i++ {
		require.Equal(t, value, g.NextInt())
		require.Equal(t, value, g.LastInt())
	}
	require.Equal(t, "42", g.NextString())
	require.Equal(t, "42", g.LastString())
	require.Equal(t, float64(value), g.Mean())
}
