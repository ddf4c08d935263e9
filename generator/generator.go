package generator

import (
	"fmt"
)

func NewErrorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Generator generates a sequence of string values, following some
// distribution (uniform, sequential, discrete, ...).
type Generator interface {
	// NextString generates the next value in the distribution.
	NextString() string

	// LastString returns the previous value generated by NextString().
	// Calling it multiple times without an intervening NextString()
	// returns the same value.
	LastString() string
}

// IntegerGenerator is a generator capable of generating integers
// as well as strings.
type IntegerGenerator interface {
	Generator
	// NextInt returns the next value as an int. When overriding this method,
	// be sure to call SetLastInt() properly, or the LastInt() call
	// won't work.
	NextInt() int64
	LastInt() int64

	Mean() float64
}

// IntegerGeneratorBase is a parent class for all IntegerGenerator subclasses.
type IntegerGeneratorBase struct {
	lastInt int64
}

func NewIntegerGeneratorBase(last int64) *IntegerGeneratorBase {
	return &IntegerGeneratorBase{
		lastInt: last,
	}
}

// SetLastInt sets the last value to be generated.
// IntegerGenerator subclasses must use this call to properly set the last
// int value, or the LastString() and LastInt() calls won't work.
func (self *IntegerGeneratorBase) SetLastInt(value int64) {
	self.lastInt = value
}

// NextString generates the next string in the distribution.
func (self *IntegerGeneratorBase) NextString(g IntegerGenerator) string {
	return fmt.Sprintf("%d", g.NextInt())
}

func (self *IntegerGeneratorBase) LastInt() int64 {
	return self.lastInt
}

func (self *IntegerGeneratorBase) LastString() string {
	return fmt.Sprintf("%d", self.LastInt())
}
