package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestRandomAlphanumericString(t *testing.T) {
	length := int64(100)
	r := NewRandom(0)
	s1 := r.NextAlphanumericString(length)
	require.Equal(t, length, int64(len(s1)))
	s2 := r.NextAlphanumericString(length)
	require.Equal(t, length, int64(len(s2)))
	require.NotEqual(t, s1, s2)
	for _, c := range s1 {
		ok := (c >= '0' && c <= '9') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z')
		require.True(t, ok)
	}
}

func TestRandomSeeded(t *testing.T) {
	r1 := NewRandom(12345)
	r2 := NewRandom(12345)
	require.Equal(t, r1.NextAlphanumericString(32), r2.NextAlphanumericString(32))
	require.Equal(t, r1.NextFloat64(), r2.NextFloat64())
	require.Equal(t, r1.NextInt64(1000), r2.NextInt64(1000))
}
