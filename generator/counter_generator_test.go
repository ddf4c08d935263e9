package generator

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestCounterGenerator(t *testing.T) {
	value := int64(100)
	var g IntegerGenerator
	g = NewCounterGenerator(value)
	require.Equal(t, value-1, g.LastInt())
	for i := int64(0); i < 5; i++ {
		require.Equal(t, value+i, g.NextInt())
		require.Equal(t, value+i, g.LastInt())
	}
	for i := int64(5); i < 10; i++ {
		require.Equal(t, fmt.Sprintf("%d", value+i), g.NextString())
		require.Equal(t, fmt.Sprintf("%d", value+i), g.LastString())
	}
	require.Panics(t, func() { g.Mean() })
}

func TestCounterGeneratorConcurrentUniqueness(t *testing.T) {
	start := int64(1000)
	total := 100
	routines := 8
	g := NewCounterGenerator(start)
	results := make(chan int64, total*routines)
	var wg sync.WaitGroup
	for i := 0; i < routines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < total; j++ {
				results <- g.NextInt()
			}
		}()
	}
	wg.Wait()
	close(results)
	seen := make(map[int64]bool)
	for v := range results {
		require.True(t, v >= start)
		require.True(t, v < start+int64(total*routines))
		require.False(t, seen[v])
		seen[v] = true
	}
	require.Equal(t, total*routines, len(seen))
}
