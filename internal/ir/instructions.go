package ir

// Instruction is the base interface for IR instructions.
type Instruction interface {
	irInstr()
}

// BinaryOp enumerates the architecture-neutral binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	And
	Or
	Xor
	Shl
	Shr
	Sar
)

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Shl:
		return "shl"
	case Shr:
		return "shr"
	case Sar:
		return "sar"
	default:
		return "?"
	}
}

// UnaryOp enumerates the architecture-neutral unary operators.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
)

func (op UnaryOp) String() string {
	if op == Neg {
		return "neg"
	}
	return "not"
}

// CompareOp enumerates comparison predicates. Comparisons produce an
// integer 0/1 result, never a distinct boolean value.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
	ULt
	ULe
	UGt
	UGe
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "eq"
	case Ne:
		return "ne"
	case Lt:
		return "slt"
	case Le:
		return "sle"
	case Gt:
		return "sgt"
	case Ge:
		return "sge"
	case ULt:
		return "ult"
	case ULe:
		return "ule"
	case UGt:
		return "ugt"
	case UGe:
		return "uge"
	default:
		return "?"
	}
}

// Binary performs a binary operation.
type Binary struct {
	Op    BinaryOp
	Left  Value
	Right Value
	Dest  Value
	Type  Type
}

// Unary performs a unary operation.
type Unary struct {
	Op      UnaryOp
	Operand Value
	Dest    Value
	Type    Type
}

// Move copies a value into a destination.
type Move struct {
	Src  Value
	Dest Value
	Type Type
}

// Compare evaluates a predicate and writes 0 or 1 to the destination.
type Compare struct {
	Op    CompareOp
	Left  Value
	Right Value
	Dest  Value
	Type  Type
}

// Load reads a value through a pointer operand.
type Load struct {
	Addr Value
	Dest Value
	Type Type
}

// Store writes a value through a pointer operand.
type Store struct {
	Addr Value
	Src  Value
	Type Type
}

// Call invokes a named function. Dest is nil for void calls.
type Call struct {
	Callee string
	Args   []Value
	Dest   Value
	Type   Type
}

// Print emits a value through the runtime print intrinsic.
type Print struct {
	Operand Value
	Type    Type
}

// Return leaves the function. Value is nil for void returns.
type Return struct {
	Value Value
	Type  Type
}

// Jump transfers control unconditionally to a labeled block.
type Jump struct {
	Target string
}

// Branch transfers control to Then when the condition is nonzero,
// otherwise to Else.
type Branch struct {
	Cond Value
	Then string
	Else string
}

// Phi merges values from predecessor blocks.
type Phi struct {
	Dest     Value
	Type     Type
	Incoming []PhiIncoming
}

// PhiIncoming pairs an incoming value with its predecessor label.
type PhiIncoming struct {
	Value Value
	Block string
}

// Alloca reserves stack storage for a value of Type.
type Alloca struct {
	Dest Value
	Type Type
}

// Nop does nothing and is removed at O1 and above.
type Nop struct{}

func (*Binary) irInstr()  {}
func (*Unary) irInstr()   {}
func (*Move) irInstr()    {}
func (*Compare) irInstr() {}
func (*Load) irInstr()    {}
func (*Store) irInstr()   {}
func (*Call) irInstr()    {}
func (*Print) irInstr()   {}
func (*Return) irInstr()  {}
func (*Jump) irInstr()    {}
func (*Branch) irInstr()  {}
func (*Phi) irInstr()     {}
func (*Alloca) irInstr()  {}
func (*Nop) irInstr()     {}
