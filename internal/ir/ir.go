// Package ir defines the control-flow-graph intermediate representation
// consumed by the optimizer and the lowering backend.
package ir

import "github.com/codeyousef/SeenLang-sub001/internal/target"

// Module is the IR root for a single compilation unit.
type Module struct {
	Name      string
	Target    target.Target
	Functions []*Function
}

// Function is a named, parameterized code unit with a labeled block graph.
type Function struct {
	Name   string
	Params []Param
	Return Type
	Blocks []*BasicBlock
}

// Param describes a function parameter.
type Param struct {
	Name string
	Type Type
}

// BasicBlock is a straight-line instruction sequence with a single entry.
// Control leaves only at the end of the block.
type BasicBlock struct {
	Label        string
	Instructions []Instruction
}

// Type is the scalar type of an IR value.
type Type int

const (
	I1 Type = iota
	I8
	I16
	I32
	I64
	F32
	F64
	Ptr
	Void
)

func (t Type) String() string {
	switch t {
	case I1:
		return "i1"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "float"
	case F64:
		return "double"
	case Ptr:
		return "i8*"
	case Void:
		return "void"
	default:
		return "i32"
	}
}

// Bits returns the width of the type in bits, 0 for void.
func (t Type) Bits() int {
	switch t {
	case I1:
		return 1
	case I8:
		return 8
	case I16:
		return 16
	case I32, F32:
		return 32
	case I64, F64:
		return 64
	case Ptr:
		return 64
	default:
		return 0
	}
}

// Align returns the natural alignment of the type in bytes.
func (t Type) Align() int {
	switch t {
	case I1, I8:
		return 1
	case I16:
		return 2
	case I32, F32:
		return 4
	case I64, F64, Ptr:
		return 8
	default:
		return 1
	}
}

// IsFloat reports whether the type is a floating-point type.
func (t Type) IsFloat() bool {
	return t == F32 || t == F64
}

// Block returns the block with the given label, or nil.
func (f *Function) Block(label string) *BasicBlock {
	for _, b := range f.Blocks {
		if b.Label == label {
			return b
		}
	}
	return nil
}

// Append adds an instruction to the end of the block.
func (b *BasicBlock) Append(instrs ...Instruction) {
	b.Instructions = append(b.Instructions, instrs...)
}
