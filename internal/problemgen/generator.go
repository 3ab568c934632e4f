package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Bounds for each operation. Ranges are [0, max) unless noted.
const (
	AdditionMax       = 100
	SubtractionMax    = 100
	MultiplicationMax = 12

	// DivisorMin and DivisorMax bound the divisor, both inclusive.
	DivisorMin = 1
	DivisorMax = 11

	// QuotientMax bounds the quotient, inclusive.
	QuotientMax = 9
)

// ErrInvalidOperation is matched by errors.Is on every InvalidOperationError.
var ErrInvalidOperation = errors.New("invalid operation")

// InvalidOperationError reports an operation value outside the closed set.
// It signals a programming error; the UI can never produce one.
type InvalidOperationError struct {
	Op Operation
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation: %d", int(e.Op))
}

func (e *InvalidOperationError) Unwrap() error { return ErrInvalidOperation }

// Source is a uniform random integer source. IntN returns a value in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Generator produces exercises from a random source.
type Generator struct {
	src Source
}

// New returns a Generator drawing from src. A nil src uses a time-seeded
// PCG source.
func New(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{src: src}
}

// Generate draws an exercise for op.
func (g *Generator) Generate(op Operation) (Exercise, error) {
	switch op {
	case Addition:
		a := g.src.IntN(AdditionMax)
		b := g.src.IntN(AdditionMax)
		return Exercise{A: a, B: b, Op: op, Answer: a + b}, nil

	case Subtraction:
		a := g.src.IntN(SubtractionMax)
		b := g.src.IntN(a + 1)
		return Exercise{A: a, B: b, Op: op, Answer: a - b}, nil

	case Multiplication:
		a := g.src.IntN(MultiplicationMax)
		b := g.src.IntN(MultiplicationMax)
		return Exercise{A: a, B: b, Op: op, Answer: a * b}, nil

	case Division:
		// Built backwards from divisor and quotient so the division is exact.
		divisor := g.src.IntN(DivisorMax-DivisorMin+1) + DivisorMin
		quotient := g.src.IntN(QuotientMax + 1)
		return Exercise{A: divisor * quotient, B: divisor, Op: op, Answer: quotient}, nil
	}

	return Exercise{}, &InvalidOperationError{Op: op}
}
