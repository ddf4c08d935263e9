package generator

import (
	"strconv"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestUniformIntegerGenerator(t *testing.T) {
	lowerBound := int64(1000)
	upperBound := int64(2000)
	var g IntegerGenerator
	uig := NewUniformIntegerGenerator(lowerBound, upperBound, NewRandom(0))
	g = uig
	total := 10
	for i := 0; i < total; i++ {
		last := g.NextInt()
		require.True(t, last >= lowerBound && last <= upperBound)
		require.Equal(t, last, g.LastInt())
		str := g.NextString()
		v, err := strconv.ParseInt(str, 0, 64)
		require.Nil(t, err)
		require.True(t, v >= lowerBound && v <= upperBound)
		require.Equal(t, float64((lowerBound+upperBound)/2.0), g.Mean())
	}
}

func TestUniformIntegerGeneratorSeeded(t *testing.T) {
	lowerBound := int64(0)
	upperBound := int64(1 << 30)
	g1 := NewUniformIntegerGenerator(lowerBound, upperBound, NewRandom(42))
	g2 := NewUniformIntegerGenerator(lowerBound, upperBound, NewRandom(42))
	for i := 0; i < 20; i++ {
		require.Equal(t, g1.NextInt(), g2.NextInt())
	}
}
