package problemgen

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Operation is one of the four arithmetic kinds that can be drilled.
type Operation int

const (
	Addition Operation = iota
	Subtraction
	Multiplication
	Division
)

// Operations lists every valid operation in menu order.
var Operations = []Operation{Addition, Subtraction, Multiplication, Division}

// Valid reports whether op belongs to the closed operation set.
func (op Operation) Valid() bool {
	return op >= Addition && op <= Division
}

// Symbol returns the symbol displayed between the operands.
func (op Operation) Symbol() string {
	switch op {
	case Addition:
		return "+"
	case Subtraction:
		return "-"
	case Multiplication:
		return "×"
	case Division:
		return "÷"
	}
	return "?"
}

// Key returns the lowercase identifier used in config files, flags and the
// attempt journal.
func (op Operation) Key() string {
	switch op {
	case Addition:
		return "addition"
	case Subtraction:
		return "subtraction"
	case Multiplication:
		return "multiplication"
	case Division:
		return "division"
	}
	return fmt.Sprintf("operation(%d)", int(op))
}

// Name returns the display name, e.g. "Multiplication".
func (op Operation) Name() string {
	return cases.Title(language.English).String(op.Key())
}

func (op Operation) String() string {
	return op.Key()
}

// ParseOperation accepts a symbol, a name or a short alias.
//
//	"+", "add", "addition"                  -> Addition
//	"-", "sub", "subtraction"               -> Subtraction
//	"x", "*", "×", "mul", "multiplication"  -> Multiplication
//	"/", "÷", "div", "division"             -> Division
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add", "addition", "plus":
		return Addition, nil
	case "-", "sub", "subtract", "subtraction", "minus":
		return Subtraction, nil
	case "x", "*", "×", "mul", "multiply", "multiplication", "times":
		return Multiplication, nil
	case "/", "÷", "div", "divide", "division":
		return Division, nil
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// Exercise is one generated problem with its precomputed answer.
// Exercises are values; a new exercise replaces the old one.
type Exercise struct {
	// A is the left operand (the dividend for division).
	A int

	// B is the right operand (the divisor for division, never zero).
	B int

	Op Operation

	// Answer is the exact, non-negative result of A Op B.
	Answer int
}

// Text renders the exercise for display, e.g. "28 ÷ 4 = ?".
func (e Exercise) Text() string {
	return fmt.Sprintf("%d %s %d = ?", e.A, e.Op.Symbol(), e.B)
}
