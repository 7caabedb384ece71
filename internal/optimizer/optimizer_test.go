package optimizer

import (
	"testing"

	"github.com/codeyousef/SeenLang-sub001/internal/ir"
)

// Helper to wrap instructions in a single-block function module.
func moduleWith(instrs ...ir.Instruction) *ir.Module {
	return &ir.Module{
		Name: "test",
		Functions: []*ir.Function{{
			Name:   "f",
			Return: ir.I32,
			Blocks: []*ir.BasicBlock{{Label: "entry", Instructions: instrs}},
		}},
	}
}

func entryInstrs(t *testing.T, m *ir.Module) []ir.Instruction {
	t.Helper()
	return m.Functions[0].Blocks[0].Instructions
}

func TestConstantFoldingAdd(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Add, Left: ir.Integer{V: 5}, Right: ir.Integer{V: 3}, Dest: ir.Register{N: 1}, Type: ir.I32},
	)

	stats := Optimize(m, 1)

	if stats.ConstantFoldingOps != 1 {
		t.Errorf("ConstantFoldingOps = %d, want 1", stats.ConstantFoldingOps)
	}
	instrs := entryInstrs(t, m)
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	mv, ok := instrs[0].(*ir.Move)
	if !ok {
		t.Fatalf("instruction is %T, want *ir.Move", instrs[0])
	}
	if !ir.Equal(mv.Src, ir.Integer{V: 8}) {
		t.Errorf("move source = %s, want 8", mv.Src)
	}
	if !ir.Equal(mv.Dest, ir.Register{N: 1}) {
		t.Errorf("move destination = %s, want %%1", mv.Dest)
	}
}

func TestConstantFoldingIdempotent(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Mul, Left: ir.Integer{V: 6}, Right: ir.Integer{V: 7}, Dest: ir.Register{N: 1}, Type: ir.I32},
		&ir.Return{Value: ir.Register{N: 1}, Type: ir.I32},
	)

	first := Optimize(m, 1)
	if first.ConstantFoldingOps != 1 {
		t.Fatalf("first run folded %d, want 1", first.ConstantFoldingOps)
	}

	// A second run over fully folded code changes nothing.
	second := Optimize(m, 1)
	if second.ConstantFoldingOps != 0 || second.InstructionsEliminated != 0 {
		t.Errorf("second run: folds=%d eliminated=%d, want 0, 0",
			second.ConstantFoldingOps, second.InstructionsEliminated)
	}
}

func TestDivisionByZeroNotFolded(t *testing.T) {
	div := &ir.Binary{Op: ir.Div, Left: ir.Integer{V: 10}, Right: ir.Integer{V: 0}, Dest: ir.Register{N: 1}, Type: ir.I32}
	mod := &ir.Binary{Op: ir.Mod, Left: ir.Integer{V: 10}, Right: ir.Integer{V: 0}, Dest: ir.Register{N: 2}, Type: ir.I32}
	m := moduleWith(div, mod,
		&ir.Print{Operand: ir.Register{N: 1}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 2}, Type: ir.I32},
	)

	stats := Optimize(m, 1)

	if stats.ConstantFoldingOps != 0 {
		t.Errorf("folded %d division-by-zero ops", stats.ConstantFoldingOps)
	}
	instrs := entryInstrs(t, m)
	if instrs[0] != ir.Instruction(div) || instrs[1] != ir.Instruction(mod) {
		t.Error("division by literal zero was rewritten")
	}
}

func TestFloatFolding(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Add, Left: ir.Float{V: 1.5}, Right: ir.Float{V: 2.5}, Dest: ir.Register{N: 1}, Type: ir.F64},
		&ir.Return{Value: ir.Register{N: 1}, Type: ir.F64},
	)

	stats := Optimize(m, 1)

	if stats.ConstantFoldingOps != 1 {
		t.Fatalf("ConstantFoldingOps = %d, want 1", stats.ConstantFoldingOps)
	}
	mv := entryInstrs(t, m)[0].(*ir.Move)
	if !ir.Equal(mv.Src, ir.Float{V: 4.0}) {
		t.Errorf("move source = %s, want 4.0", mv.Src)
	}
}

func TestFloatCompareUsesEpsilon(t *testing.T) {
	// 0.1+0.2 differs from 0.3 by less than the epsilon, so equality
	// folds to true.
	m := moduleWith(
		&ir.Compare{Op: ir.Eq, Left: ir.Float{V: 0.1 + 0.2}, Right: ir.Float{V: 0.3}, Dest: ir.Register{N: 1}, Type: ir.F64},
		&ir.Return{Value: ir.Register{N: 1}, Type: ir.I32},
	)

	Optimize(m, 1)

	mv, ok := entryInstrs(t, m)[0].(*ir.Move)
	if !ok {
		t.Fatalf("compare not folded: %T", entryInstrs(t, m)[0])
	}
	if !ir.Equal(mv.Src, ir.Integer{V: 1}) {
		t.Errorf("folded result = %s, want 1", mv.Src)
	}
}

func TestRedundantMoveElimination(t *testing.T) {
	m := moduleWith(
		&ir.Move{Src: ir.Register{N: 1}, Dest: ir.Register{N: 1}, Type: ir.I32},
		&ir.Move{Src: ir.Register{N: 1}, Dest: ir.Register{N: 2}, Type: ir.I32},
		&ir.Return{Value: ir.Register{N: 2}, Type: ir.I32},
	)

	stats := Optimize(m, 1)

	if stats.RedundantMovesEliminated != 1 {
		t.Errorf("RedundantMovesEliminated = %d, want 1", stats.RedundantMovesEliminated)
	}
	instrs := entryInstrs(t, m)
	if len(instrs) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instrs))
	}
	if mv, ok := instrs[0].(*ir.Move); !ok || !ir.Equal(mv.Dest, ir.Register{N: 2}) {
		t.Error("useful move did not survive")
	}
}

func TestNopElimination(t *testing.T) {
	m := moduleWith(&ir.Nop{}, &ir.Return{Type: ir.Void})

	stats := Optimize(m, 1)

	if stats.InstructionsEliminated != 1 {
		t.Errorf("InstructionsEliminated = %d, want 1", stats.InstructionsEliminated)
	}
	if len(entryInstrs(t, m)) != 1 {
		t.Errorf("nop survived")
	}
}

func TestDeadCodeElimination(t *testing.T) {
	m := moduleWith(
		// Dead: result never referenced.
		&ir.Binary{Op: ir.Add, Left: ir.Register{N: 1}, Right: ir.Register{N: 2}, Dest: ir.Register{N: 3}, Type: ir.I32},
		// Live: feeds the return.
		&ir.Binary{Op: ir.Mul, Left: ir.Register{N: 1}, Right: ir.Register{N: 2}, Dest: ir.Register{N: 4}, Type: ir.I32},
		&ir.Return{Value: ir.Register{N: 4}, Type: ir.I32},
	)

	stats := Optimize(m, 2)

	if stats.InstructionsEliminated != 1 {
		t.Errorf("InstructionsEliminated = %d, want 1", stats.InstructionsEliminated)
	}
	for _, instr := range entryInstrs(t, m) {
		if b, ok := instr.(*ir.Binary); ok && ir.Equal(b.Dest, ir.Register{N: 3}) {
			t.Error("dead instruction survived")
		}
	}
}

func TestSideEffectsSurviveDCE(t *testing.T) {
	store := &ir.Store{Addr: ir.Register{N: 1}, Src: ir.Register{N: 2}, Type: ir.I32}
	call := &ir.Call{Callee: "opaque", Args: nil, Dest: ir.Register{N: 9}, Type: ir.I32}
	print := &ir.Print{Operand: ir.Register{N: 2}, Type: ir.I32}
	alloca := &ir.Alloca{Dest: ir.Register{N: 8}, Type: ir.I32}
	m := moduleWith(store, call, print, alloca, &ir.Return{Type: ir.Void})

	stats := Optimize(m, 2)

	if stats.InstructionsEliminated != 0 {
		t.Errorf("eliminated %d side-effecting instructions", stats.InstructionsEliminated)
	}
	if len(entryInstrs(t, m)) != 5 {
		t.Errorf("got %d instructions, want 5", len(entryInstrs(t, m)))
	}
}

func TestStrengthReductionMultiply(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Mul, Left: ir.Register{N: 1}, Right: ir.Integer{V: 8}, Dest: ir.Register{N: 2}, Type: ir.I32},
		&ir.Return{Value: ir.Register{N: 2}, Type: ir.I32},
	)

	Optimize(m, 2)

	b, ok := entryInstrs(t, m)[0].(*ir.Binary)
	if !ok {
		t.Fatalf("instruction is %T, want *ir.Binary", entryInstrs(t, m)[0])
	}
	if b.Op != ir.Shl {
		t.Errorf("op = %s, want shl", b.Op)
	}
	if !ir.Equal(b.Right, ir.Integer{V: 3}) {
		t.Errorf("shift amount = %s, want 3", b.Right)
	}
	if !ir.Equal(b.Left, ir.Register{N: 1}) {
		t.Errorf("left operand = %s, want %%1", b.Left)
	}
}

func TestStrengthReductionDivide(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Div, Left: ir.Register{N: 1}, Right: ir.Integer{V: 16}, Dest: ir.Register{N: 2}, Type: ir.I32},
		&ir.Return{Value: ir.Register{N: 2}, Type: ir.I32},
	)

	Optimize(m, 2)

	b := entryInstrs(t, m)[0].(*ir.Binary)
	if b.Op != ir.Shr || !ir.Equal(b.Right, ir.Integer{V: 4}) {
		t.Errorf("got %s by %s, want shr by 4", b.Op, b.Right)
	}
}

func TestStrengthReductionNonPowerOfTwoUntouched(t *testing.T) {
	for _, n := range []int64{3, 6, 7, 12, 100, 0, -8} {
		m := moduleWith(
			&ir.Binary{Op: ir.Mul, Left: ir.Register{N: 1}, Right: ir.Integer{V: n}, Dest: ir.Register{N: 2}, Type: ir.I32},
			&ir.Return{Value: ir.Register{N: 2}, Type: ir.I32},
		)

		Optimize(m, 2)

		b := entryInstrs(t, m)[0].(*ir.Binary)
		if b.Op != ir.Mul {
			t.Errorf("multiply by %d was rewritten to %s", n, b.Op)
		}
	}
}

func TestShiftEquivalence(t *testing.T) {
	// The rewrite is only sound if shifting really matches multiplying.
	for k := int64(0); k < 32; k++ {
		for _, x := range []int64{0, 1, -1, 3, -5, 12345, -99999} {
			if x*(1<<uint(k)) != x<<uint(k) {
				t.Fatalf("x=%d k=%d: multiply and shift disagree", x, k)
			}
		}
	}
}

func TestCSEReplacesRepeat(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Add, Left: ir.Register{N: 1}, Right: ir.Register{N: 2}, Dest: ir.Register{N: 3}, Type: ir.I32},
		&ir.Binary{Op: ir.Add, Left: ir.Register{N: 1}, Right: ir.Register{N: 2}, Dest: ir.Register{N: 4}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 3}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 4}, Type: ir.I32},
		&ir.Return{Type: ir.Void},
	)

	Optimize(m, 3)

	instrs := entryInstrs(t, m)
	mv, ok := instrs[1].(*ir.Move)
	if !ok {
		t.Fatalf("repeat is %T, want *ir.Move", instrs[1])
	}
	if !ir.Equal(mv.Src, ir.Register{N: 3}) || !ir.Equal(mv.Dest, ir.Register{N: 4}) {
		t.Errorf("got move %s -> %s, want %%3 -> %%4", mv.Src, mv.Dest)
	}
}

func TestCSEReplacesRepeatedUnary(t *testing.T) {
	m := moduleWith(
		&ir.Unary{Op: ir.Neg, Operand: ir.Register{N: 1}, Dest: ir.Register{N: 2}, Type: ir.I32},
		&ir.Unary{Op: ir.Neg, Operand: ir.Register{N: 1}, Dest: ir.Register{N: 3}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 2}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 3}, Type: ir.I32},
		&ir.Return{Type: ir.Void},
	)

	Optimize(m, 3)

	instrs := entryInstrs(t, m)
	mv, ok := instrs[1].(*ir.Move)
	if !ok {
		t.Fatalf("repeat is %T, want *ir.Move", instrs[1])
	}
	if !ir.Equal(mv.Src, ir.Register{N: 2}) || !ir.Equal(mv.Dest, ir.Register{N: 3}) {
		t.Errorf("got move %s -> %s, want %%2 -> %%3", mv.Src, mv.Dest)
	}
	if mv.Type != ir.I32 {
		t.Errorf("move type = %s, want i32", mv.Type)
	}
}

func TestCSEDistinguishesUnaryOps(t *testing.T) {
	// Neg and Not of the same operand share nothing.
	m := moduleWith(
		&ir.Unary{Op: ir.Neg, Operand: ir.Register{N: 1}, Dest: ir.Register{N: 2}, Type: ir.I32},
		&ir.Unary{Op: ir.Not, Operand: ir.Register{N: 1}, Dest: ir.Register{N: 3}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 2}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 3}, Type: ir.I32},
		&ir.Return{Type: ir.Void},
	)

	Optimize(m, 3)

	if _, ok := entryInstrs(t, m)[1].(*ir.Unary); !ok {
		t.Error("distinct unary operation was memoized away")
	}
}

func TestCSEMemoClearsAtSideEffect(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Add, Left: ir.Register{N: 1}, Right: ir.Register{N: 2}, Dest: ir.Register{N: 3}, Type: ir.I32},
		&ir.Call{Callee: "opaque", Args: nil, Dest: ir.Register{N: 9}, Type: ir.I32},
		&ir.Binary{Op: ir.Add, Left: ir.Register{N: 1}, Right: ir.Register{N: 2}, Dest: ir.Register{N: 4}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 3}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 4}, Type: ir.I32},
		&ir.Print{Operand: ir.Register{N: 9}, Type: ir.I32},
		&ir.Return{Type: ir.Void},
	)

	Optimize(m, 3)

	if _, ok := entryInstrs(t, m)[2].(*ir.Binary); !ok {
		t.Error("expression after a call was memoized across the side effect")
	}
}

func TestLevelZeroRunsNothing(t *testing.T) {
	m := moduleWith(
		&ir.Binary{Op: ir.Add, Left: ir.Integer{V: 5}, Right: ir.Integer{V: 3}, Dest: ir.Register{N: 1}, Type: ir.I32},
	)

	stats := Optimize(m, 0)

	if len(stats.PassesRun) != 0 {
		t.Errorf("passes run at O0: %v", stats.PassesRun)
	}
	if _, ok := entryInstrs(t, m)[0].(*ir.Binary); !ok {
		t.Error("module mutated at O0")
	}
}

func TestLevelClamping(t *testing.T) {
	m3 := moduleWith(&ir.Return{Type: ir.Void})
	m9 := moduleWith(&ir.Return{Type: ir.Void})

	at3 := Optimize(m3, 3)
	at9 := Optimize(m9, 9)

	if len(at3.PassesRun) != len(at9.PassesRun) {
		t.Errorf("level 9 ran %d passes, level 3 ran %d", len(at9.PassesRun), len(at3.PassesRun))
	}
}

func TestPassLog(t *testing.T) {
	tests := []struct {
		level int
		want  []string
	}{
		{1, []string{"constant_folding", "redundant_move_elimination", "nop_elimination"}},
		{2, []string{"constant_folding", "redundant_move_elimination", "nop_elimination",
			"dead_code_elimination", "strength_reduction"}},
		{3, []string{"constant_folding", "redundant_move_elimination", "nop_elimination",
			"dead_code_elimination", "strength_reduction",
			"common_subexpression_elimination", "loop_optimization"}},
	}

	for _, tt := range tests {
		m := moduleWith(&ir.Return{Type: ir.Void})
		stats := Optimize(m, tt.level)
		if len(stats.PassesRun) != len(tt.want) {
			t.Fatalf("O%d: passes = %v, want %v", tt.level, stats.PassesRun, tt.want)
		}
		for i, name := range tt.want {
			if stats.PassesRun[i] != name {
				t.Errorf("O%d: pass %d = %q, want %q", tt.level, i, stats.PassesRun[i], name)
			}
		}
	}
}

func TestOptimizeNeverFails(t *testing.T) {
	// Unrecognized shapes are skipped, nil modules tolerated.
	Optimize(nil, 3)

	m := moduleWith(
		&ir.Binary{Op: ir.Add, Left: ir.Variable{Name: "x"}, Right: ir.Global{Name: "g"}, Dest: ir.Register{N: 1}, Type: ir.I32},
		&ir.Return{Value: ir.Register{N: 1}, Type: ir.I32},
	)
	stats := Optimize(m, 3)
	if stats.ConstantFoldingOps != 0 {
		t.Errorf("folded non-literal operands")
	}
}
