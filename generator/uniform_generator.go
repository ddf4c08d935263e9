package generator

// UniformIntegerGenerator generates integers uniformly from an interval
// [lowerBound, upperBound], both bounds inclusive.
type UniformIntegerGenerator struct {
	*IntegerGeneratorBase
	lowerBound int64
	upperBound int64
	interval   int64
	random     *Random
}

func NewUniformIntegerGenerator(lowerBound, upperBound int64, random *Random) *UniformIntegerGenerator {
	return &UniformIntegerGenerator{
		IntegerGeneratorBase: NewIntegerGeneratorBase(lowerBound),
		lowerBound:           lowerBound,
		upperBound:           upperBound,
		interval:             upperBound - lowerBound + 1,
		random:               random,
	}
}

func (self *UniformIntegerGenerator) NextInt() int64 {
	ret := self.lowerBound + self.random.NextInt64(self.interval)
	self.SetLastInt(ret)
	return ret
}

func (self *UniformIntegerGenerator) NextString() string {
	return self.IntegerGeneratorBase.NextString(self)
}

func (self *UniformIntegerGenerator) Mean() float64 {
	return float64(self.lowerBound+self.upperBound) / 2.0
}
