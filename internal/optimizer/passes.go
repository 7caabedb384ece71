package optimizer

import (
	"fmt"
	"math"

	"github.com/codeyousef/SeenLang-sub001/internal/ir"
)

// constantFolding rewrites binary, unary and compare instructions with
// literal operands into moves of the computed result. Division and modulo
// by a literal zero are left unfolded.
func constantFolding(fn *ir.Function, stats *Stats) {
	for _, block := range fn.Blocks {
		for idx, instr := range block.Instructions {
			switch i := instr.(type) {
			case *ir.Binary:
				if folded, ok := foldBinary(i); ok {
					block.Instructions[idx] = folded
					stats.ConstantFoldingOps++
				}
			case *ir.Unary:
				if folded, ok := foldUnary(i); ok {
					block.Instructions[idx] = folded
					stats.ConstantFoldingOps++
				}
			case *ir.Compare:
				if folded, ok := foldCompare(i); ok {
					block.Instructions[idx] = folded
					stats.ConstantFoldingOps++
				}
			}
		}
	}
}

func foldBinary(i *ir.Binary) (ir.Instruction, bool) {
	if l, lok := i.Left.(ir.Integer); lok {
		if r, rok := i.Right.(ir.Integer); rok {
			v, ok := foldIntOp(i.Op, l.V, r.V)
			if !ok {
				return nil, false
			}
			return &ir.Move{Src: ir.Integer{V: v}, Dest: i.Dest, Type: i.Type}, true
		}
	}
	if l, lok := i.Left.(ir.Float); lok {
		if r, rok := i.Right.(ir.Float); rok {
			v, ok := foldFloatOp(i.Op, l.V, r.V)
			if !ok {
				return nil, false
			}
			return &ir.Move{Src: ir.Float{V: v}, Dest: i.Dest, Type: i.Type}, true
		}
	}
	return nil, false
}

func foldIntOp(op ir.BinaryOp, l, r int64) (int64, bool) {
	switch op {
	case ir.Add:
		return l + r, true
	case ir.Sub:
		return l - r, true
	case ir.Mul:
		return l * r, true
	case ir.Div:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case ir.Mod:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case ir.And:
		return l & r, true
	case ir.Or:
		return l | r, true
	case ir.Xor:
		return l ^ r, true
	case ir.Shl:
		return l << uint64(r), true
	case ir.Shr:
		return int64(uint64(l) >> uint64(r)), true
	case ir.Sar:
		return l >> uint64(r), true
	default:
		return 0, false
	}
}

func foldFloatOp(op ir.BinaryOp, l, r float64) (float64, bool) {
	switch op {
	case ir.Add:
		return l + r, true
	case ir.Sub:
		return l - r, true
	case ir.Mul:
		return l * r, true
	case ir.Div:
		if math.Abs(r) < ir.FloatEpsilon {
			return 0, false
		}
		return l / r, true
	default:
		return 0, false
	}
}

func foldUnary(i *ir.Unary) (ir.Instruction, bool) {
	switch v := i.Operand.(type) {
	case ir.Integer:
		switch i.Op {
		case ir.Neg:
			return &ir.Move{Src: ir.Integer{V: -v.V}, Dest: i.Dest, Type: i.Type}, true
		case ir.Not:
			return &ir.Move{Src: ir.Integer{V: ^v.V}, Dest: i.Dest, Type: i.Type}, true
		}
	case ir.Float:
		if i.Op == ir.Neg {
			return &ir.Move{Src: ir.Float{V: -v.V}, Dest: i.Dest, Type: i.Type}, true
		}
	}
	return nil, false
}

func foldCompare(i *ir.Compare) (ir.Instruction, bool) {
	if l, lok := i.Left.(ir.Integer); lok {
		if r, rok := i.Right.(ir.Integer); rok {
			return &ir.Move{Src: boolValue(compareInt(i.Op, l.V, r.V)), Dest: i.Dest, Type: i.Type}, true
		}
	}
	if l, lok := i.Left.(ir.Float); lok {
		if r, rok := i.Right.(ir.Float); rok {
			return &ir.Move{Src: boolValue(compareFloat(i.Op, l.V, r.V)), Dest: i.Dest, Type: i.Type}, true
		}
	}
	return nil, false
}

func boolValue(b bool) ir.Value {
	if b {
		return ir.Integer{V: 1}
	}
	return ir.Integer{V: 0}
}

func compareInt(op ir.CompareOp, l, r int64) bool {
	switch op {
	case ir.Eq:
		return l == r
	case ir.Ne:
		return l != r
	case ir.Lt:
		return l < r
	case ir.Le:
		return l <= r
	case ir.Gt:
		return l > r
	case ir.Ge:
		return l >= r
	case ir.ULt:
		return uint64(l) < uint64(r)
	case ir.ULe:
		return uint64(l) <= uint64(r)
	case ir.UGt:
		return uint64(l) > uint64(r)
	case ir.UGe:
		return uint64(l) >= uint64(r)
	default:
		return false
	}
}

// compareFloat folds float predicates. Equality uses an epsilon so folded
// results match runtime float comparison semantics.
func compareFloat(op ir.CompareOp, l, r float64) bool {
	switch op {
	case ir.Eq:
		return math.Abs(l-r) < ir.FloatEpsilon
	case ir.Ne:
		return math.Abs(l-r) >= ir.FloatEpsilon
	case ir.Lt:
		return l < r
	case ir.Le:
		return l <= r
	case ir.Gt:
		return l > r
	case ir.Ge:
		return l >= r
	default:
		return false
	}
}

// redundantMoveElimination deletes moves whose source equals their
// destination.
func redundantMoveElimination(fn *ir.Function, stats *Stats) {
	for _, block := range fn.Blocks {
		kept := block.Instructions[:0]
		for _, instr := range block.Instructions {
			if m, ok := instr.(*ir.Move); ok && ir.Equal(m.Src, m.Dest) {
				stats.RedundantMovesEliminated++
				stats.InstructionsEliminated++
				continue
			}
			kept = append(kept, instr)
		}
		block.Instructions = kept
	}
}

// nopElimination removes explicit no-op instructions.
func nopElimination(fn *ir.Function, stats *Stats) {
	for _, block := range fn.Blocks {
		kept := block.Instructions[:0]
		for _, instr := range block.Instructions {
			if _, ok := instr.(*ir.Nop); ok {
				stats.InstructionsEliminated++
				continue
			}
			kept = append(kept, instr)
		}
		block.Instructions = kept
	}
}

// deadCodeElimination drops non-side-effecting instructions whose result
// no instruction in the function references.
func deadCodeElimination(fn *ir.Function, stats *Stats) {
	used := make(map[string]bool)
	for _, block := range fn.Blocks {
		for _, instr := range block.Instructions {
			for _, v := range operands(instr) {
				used[v.String()] = true
			}
		}
	}

	for _, block := range fn.Blocks {
		kept := block.Instructions[:0]
		for _, instr := range block.Instructions {
			dest := destination(instr)
			if dest != nil && !used[dest.String()] && !hasSideEffects(instr) {
				stats.InstructionsEliminated++
				continue
			}
			kept = append(kept, instr)
		}
		block.Instructions = kept
	}
}

// strengthReduction rewrites multiply and divide by a power-of-two
// literal into shifts.
func strengthReduction(fn *ir.Function, stats *Stats) {
	for _, block := range fn.Blocks {
		for idx, instr := range block.Instructions {
			b, ok := instr.(*ir.Binary)
			if !ok || b.Type.IsFloat() {
				continue
			}
			r, ok := b.Right.(ir.Integer)
			if !ok || !isPowerOfTwo(r.V) {
				continue
			}
			shift := ir.Integer{V: log2(r.V)}
			switch b.Op {
			case ir.Mul:
				block.Instructions[idx] = &ir.Binary{Op: ir.Shl, Left: b.Left, Right: shift, Dest: b.Dest, Type: b.Type}
			case ir.Div:
				block.Instructions[idx] = &ir.Binary{Op: ir.Shr, Left: b.Left, Right: shift, Dest: b.Dest, Type: b.Type}
			}
		}
	}
}

func isPowerOfTwo(n int64) bool {
	return n > 0 && n&(n-1) == 0
}

func log2(n int64) int64 {
	var k int64
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}

// commonSubexpressionElimination memoizes (op, left, right) keys within a
// block and replaces repeats with a move from the first result. The memo
// clears at every side-effecting instruction.
func commonSubexpressionElimination(fn *ir.Function, stats *Stats) {
	for _, block := range fn.Blocks {
		memo := make(map[string]ir.Value)
		for idx, instr := range block.Instructions {
			if hasSideEffects(instr) {
				memo = make(map[string]ir.Value)
				continue
			}
			var key string
			var dest ir.Value
			switch i := instr.(type) {
			case *ir.Binary:
				key = fmt.Sprintf("%s:%s:%s", i.Op, i.Left, i.Right)
				dest = i.Dest
			case *ir.Unary:
				key = fmt.Sprintf("%s:%s", i.Op, i.Operand)
				dest = i.Dest
			case *ir.Compare:
				key = fmt.Sprintf("cmp.%s:%s:%s", i.Op, i.Left, i.Right)
				dest = i.Dest
			default:
				continue
			}
			if prior, ok := memo[key]; ok {
				block.Instructions[idx] = &ir.Move{Src: prior, Dest: dest, Type: typeOf(instr)}
			} else {
				memo[key] = dest
			}
		}
	}
}

// loopOptimization is a reserved pipeline stage. It currently performs no
// rewrites but still appears in the pass log.
func loopOptimization(fn *ir.Function, stats *Stats) {}

func typeOf(instr ir.Instruction) ir.Type {
	switch i := instr.(type) {
	case *ir.Binary:
		return i.Type
	case *ir.Unary:
		return i.Type
	case *ir.Compare:
		return i.Type
	default:
		return ir.I32
	}
}
