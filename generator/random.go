package generator

import (
	"math/rand"
	"sync"
	"time"
)

const alphanumerics = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz"

// Random is an instance-scoped pseudo-random source shared by the
// generators of one workload. It is safe for concurrent use, so a single
// instance can feed every worker routine of a run. Pass seed 0 to seed
// from the clock; any other seed makes the sequence reproducible.
type Random struct {
	lock   sync.Mutex
	random *rand.Rand
}

func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{
		random: rand.New(rand.NewSource(seed)),
	}
}

// NextInt64 returns a uniform value in [0, n).
func (self *Random) NextInt64(n int64) int64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.random.Int63n(n)
}

// NextFloat64 returns a uniform value in [0.0, 1.0).
func (self *Random) NextFloat64() float64 {
	self.lock.Lock()
	defer self.lock.Unlock()
	return self.random.Float64()
}

// NextAlphanumericString returns a string of length characters drawn
// uniformly from [0-9A-Za-z].
func (self *Random) NextAlphanumericString(length int64) string {
	b := make([]byte, length)
	self.lock.Lock()
	for i := range b {
		b[i] = alphanumerics[self.random.Intn(len(alphanumerics))]
	}
	self.lock.Unlock()
	return string(b)
}
