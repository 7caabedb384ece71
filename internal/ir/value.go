package ir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FloatEpsilon bounds equality comparisons between float literals.
const FloatEpsilon = 1e-10

// Value is an instruction operand. The variant set is closed: a register,
// an integer or float literal, a named variable, or a named global.
type Value interface {
	irValue()
	String() string
}

// Register is a virtual register, rendered as %N.
type Register struct {
	N int
}

// Integer is an integer literal operand.
type Integer struct {
	V int64
}

// Float is a floating-point literal operand.
type Float struct {
	V float64
}

// Variable is a named local operand, rendered as %name.
type Variable struct {
	Name string
}

// Global is a named global operand, rendered as @name.
type Global struct {
	Name string
}

func (Register) irValue() {}
func (Integer) irValue()  {}
func (Float) irValue()    {}
func (Variable) irValue() {}
func (Global) irValue()   {}

func (r Register) String() string { return fmt.Sprintf("%%%d", r.N) }
func (i Integer) String() string  { return strconv.FormatInt(i.V, 10) }
func (f Float) String() string    { return formatFloat(f.V) }
func (v Variable) String() string { return "%" + v.Name }
func (g Global) String() string   { return "@" + g.Name }

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Integral floats keep a decimal point so the text stays a float literal.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Equal reports structural equality of two operands. Float literals
// compare within FloatEpsilon.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Register:
		bv, ok := b.(Register)
		return ok && av.N == bv.N
	case Integer:
		bv, ok := b.(Integer)
		return ok && av.V == bv.V
	case Float:
		bv, ok := b.(Float)
		return ok && math.Abs(av.V-bv.V) < FloatEpsilon
	case Variable:
		bv, ok := b.(Variable)
		return ok && av.Name == bv.Name
	case Global:
		bv, ok := b.(Global)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}
