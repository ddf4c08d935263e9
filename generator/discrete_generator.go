package generator

type Pair struct {
	Weight float64
	Value  string
}

// DiscreteGenerator generates a distribution by choosing from a discrete
// set of weighted values. Values are tested in the order they were added,
// and the weights are taken as absolute probabilities, not normalized: if
// the weights sum to less than 1, any draw beyond the cumulative sum falls
// through to the first value added. This makes the first value the
// implicit default of the distribution.
type DiscreteGenerator struct {
	values    []*Pair
	lastValue string
	random    *Random
}

func NewDiscreteGenerator(random *Random) *DiscreteGenerator {
	return &DiscreteGenerator{
		values: make([]*Pair, 0),
		random: random,
	}
}

func (self *DiscreteGenerator) NextString() string {
	if len(self.values) == 0 {
		panic("no values added to DiscreteGenerator")
	}
	value := self.random.NextFloat64()
	for _, p := range self.values {
		if value < p.Weight {
			self.lastValue = p.Value
			return p.Value
		}
		value -= p.Weight
	}
	// Excess probability mass falls through to the first value.
	self.lastValue = self.values[0].Value
	return self.lastValue
}

func (self *DiscreteGenerator) LastString() string {
	if len(self.lastValue) == 0 {
		self.lastValue = self.NextString()
	}
	return self.lastValue
}

func (self *DiscreteGenerator) AddValue(weight float64, value string) {
	self.values = append(self.values, &Pair{
		Weight: weight,
		Value:  value,
	})
}
