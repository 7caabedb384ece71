// Package codegen lowers optimized IR modules to textual LLVM-style IR
// for the configured target, including the vectorized lowering of the
// reactive stream operators.
package codegen

import (
	"fmt"
	"strings"

	"github.com/codeyousef/SeenLang-sub001/internal/ir"
	"github.com/codeyousef/SeenLang-sub001/internal/target"
)

// Generator lowers one module per invocation. The counter threads through
// a single Generate call to name synthetic labels, so the generator is
// re-entrant across values but a single Generator is not safe for
// concurrent use.
type Generator struct {
	target    target.Target
	buf       strings.Builder
	counter   int
	debugInfo bool
	callConv  string
}

// New returns a generator for the given target.
func New(t target.Target) *Generator {
	return &Generator{target: t}
}

// EnableDebugInfo toggles emission of the debug metadata block. Off by
// default.
func (g *Generator) EnableDebugInfo(on bool) {
	g.debugInfo = on
}

// SetCallingConvention sets the convention applied to function
// definitions. The default convention ("C" or empty) adds nothing.
func (g *Generator) SetCallingConvention(cc string) {
	g.callConv = cc
}

// Generate lowers the module to a complete textual document. Output is
// all-or-nothing: any lowering error discards the partial text.
func (g *Generator) Generate(m *ir.Module) (string, error) {
	g.buf.Reset()
	g.counter = 0

	if err := g.writeHeader(m.Name); err != nil {
		return "", err
	}

	for _, fn := range m.Functions {
		g.buf.WriteString("\n")
		if err := g.writeFunction(fn); err != nil {
			return "", err
		}
	}

	if g.debugInfo {
		g.writeDebugInfo(m)
	}

	return g.buf.String(), nil
}

// writeDebugInfo appends the compile-unit metadata and one subprogram
// entry per function. Identifiers start past the module-flag block.
func (g *Generator) writeDebugInfo(m *ir.Module) {
	g.buf.WriteString("\n!llvm.dbg.cu = !{!9}\n")
	g.buf.WriteString("!9 = distinct !DICompileUnit(language: DW_LANG_C99, file: !10, producer: \"seen\", isOptimized: true, emissionKind: FullDebug)\n")
	fmt.Fprintf(&g.buf, "!10 = !DIFile(filename: \"%s.seen\", directory: \".\")\n", m.Name)
	for n, fn := range m.Functions {
		fmt.Fprintf(&g.buf, "!%d = distinct !DISubprogram(name: \"%s\", scope: !10, file: !10, unit: !9)\n", 11+n, fn.Name)
	}
}

func (g *Generator) writeHeader(name string) error {
	fmt.Fprintf(&g.buf, "; Module: %s\n", name)
	fmt.Fprintf(&g.buf, "target triple = \"%s\"\n", g.target.Triple())
	fmt.Fprintf(&g.buf, "target datalayout = \"%s\"\n", g.target.DataLayout())

	if !g.target.IsRiscV() {
		return nil
	}

	ext := g.target.Ext()
	if err := ext.Validate(); err != nil {
		return err
	}
	isa, err := ext.ISAString(g.target.XLen())
	if err != nil {
		return err
	}
	cpu, err := ext.CPU(g.target.XLen())
	if err != nil {
		return err
	}

	g.buf.WriteString("\n!llvm.module.flags = !{!0, !1, !2}\n")
	fmt.Fprintf(&g.buf, "!0 = !{i32 1, !\"riscv-isa\", !\"%s\"}\n", isa)
	fmt.Fprintf(&g.buf, "!1 = !{i32 1, !\"target-cpu\", !\"%s\"}\n", cpu)
	fmt.Fprintf(&g.buf, "!2 = !{i32 1, !\"target-features\", !\"%s\"}\n", ext.FeatureString())
	return nil
}

func (g *Generator) writeFunction(fn *ir.Function) error {
	linkage := "internal "
	if fn.Name == "main" {
		linkage = ""
	}
	cc := ""
	if g.callConv != "" && g.callConv != "C" {
		cc = g.callConv + " "
	}

	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, fmt.Sprintf("%s %%%s", p.Type, p.Name))
	}
	fmt.Fprintf(&g.buf, "define %s%s%s @%s(%s) {\n", linkage, cc, fn.Return, fn.Name, strings.Join(params, ", "))

	for _, block := range fn.Blocks {
		fmt.Fprintf(&g.buf, "%s:\n", block.Label)
		for _, instr := range block.Instructions {
			if err := g.writeInstr(instr); err != nil {
				return err
			}
		}
	}

	g.buf.WriteString("}\n")
	return nil
}

// line writes one indented instruction line.
func (g *Generator) line(format string, args ...any) {
	fmt.Fprintf(&g.buf, "  "+format+"\n", args...)
}

// label writes an unindented block label.
func (g *Generator) label(name string) {
	fmt.Fprintf(&g.buf, "%s:\n", name)
}

// nextLabel mints a synthetic fallthrough label.
func (g *Generator) nextLabel() string {
	g.counter++
	return fmt.Sprintf("next.%d", g.counter)
}

func (g *Generator) writeInstr(instr ir.Instruction) error {
	switch i := instr.(type) {
	case *ir.Binary:
		return g.writeBinary(i)
	case *ir.Unary:
		return g.writeUnary(i)
	case *ir.Move:
		g.line("%s = %s %s 0, %s", i.Dest, addOp(i.Type), i.Type, i.Src)
		return nil
	case *ir.Compare:
		return g.writeCompare(i)
	case *ir.Load:
		g.line("%s = load %s, %s* %s, align %d", i.Dest, i.Type, i.Type, i.Addr, i.Type.Align())
		return nil
	case *ir.Store:
		g.line("store %s %s, %s* %s, align %d", i.Type, i.Src, i.Type, i.Addr, i.Type.Align())
		return nil
	case *ir.Call:
		return g.writeCall(i)
	case *ir.Print:
		g.line("call void @__seen_print(%s %s)", i.Type, i.Operand)
		return nil
	case *ir.Return:
		if i.Value == nil {
			g.line("ret void")
		} else {
			g.line("ret %s %s", i.Type, i.Value)
		}
		return nil
	case *ir.Jump:
		g.line("br label %%%s", i.Target)
		return nil
	case *ir.Branch:
		g.line("%%br.cond = icmp ne i32 %s, 0", i.Cond)
		g.line("br i1 %%br.cond, label %%%s, label %%%s", i.Then, i.Else)
		return nil
	case *ir.Phi:
		return g.writePhi(i)
	case *ir.Alloca:
		g.line("%s = alloca %s, align %d", i.Dest, i.Type, i.Type.Align())
		return nil
	case *ir.Nop:
		return nil
	default:
		if g.target.IsRiscV() {
			return g.writeRiscV(instr)
		}
		return &WellFormednessError{Message: fmt.Sprintf("unsupported instruction %T for target %s", instr, g.target.Arch)}
	}
}

func (g *Generator) writeBinary(i *ir.Binary) error {
	op, ok := binaryOpcode(i.Op, i.Type)
	if !ok {
		return &WellFormednessError{Message: fmt.Sprintf("unsupported binary operator %s on %s", i.Op, i.Type)}
	}
	g.line("%s = %s %s %s, %s", i.Dest, op, i.Type, i.Left, i.Right)
	return nil
}

func binaryOpcode(op ir.BinaryOp, t ir.Type) (string, bool) {
	if t.IsFloat() {
		switch op {
		case ir.Add:
			return "fadd", true
		case ir.Sub:
			return "fsub", true
		case ir.Mul:
			return "fmul", true
		case ir.Div:
			return "fdiv", true
		case ir.Mod:
			return "frem", true
		default:
			return "", false
		}
	}
	switch op {
	case ir.Add:
		return "add", true
	case ir.Sub:
		return "sub", true
	case ir.Mul:
		return "mul", true
	case ir.Div:
		return "sdiv", true
	case ir.Mod:
		return "srem", true
	case ir.And:
		return "and", true
	case ir.Or:
		return "or", true
	case ir.Xor:
		return "xor", true
	case ir.Shl:
		return "shl", true
	case ir.Shr:
		return "lshr", true
	case ir.Sar:
		return "ashr", true
	default:
		return "", false
	}
}

func addOp(t ir.Type) string {
	if t.IsFloat() {
		return "fadd"
	}
	return "add"
}

func (g *Generator) writeUnary(i *ir.Unary) error {
	switch i.Op {
	case ir.Neg:
		if i.Type.IsFloat() {
			g.line("%s = fneg %s %s", i.Dest, i.Type, i.Operand)
		} else {
			g.line("%s = sub %s 0, %s", i.Dest, i.Type, i.Operand)
		}
		return nil
	case ir.Not:
		g.line("%s = xor %s %s, -1", i.Dest, i.Type, i.Operand)
		return nil
	default:
		return &WellFormednessError{Message: fmt.Sprintf("unsupported unary operator %s", i.Op)}
	}
}

// writeCompare assigns the i1 comparison result directly. Consumers of a
// comparison result treat any nonzero value as true.
func (g *Generator) writeCompare(i *ir.Compare) error {
	if i.Type.IsFloat() {
		pred, ok := floatPredicate(i.Op)
		if !ok {
			return &WellFormednessError{Message: fmt.Sprintf("unsupported float predicate %s", i.Op)}
		}
		g.line("%s = fcmp %s %s %s, %s", i.Dest, pred, i.Type, i.Left, i.Right)
		return nil
	}
	g.line("%s = icmp %s %s %s, %s", i.Dest, i.Op, i.Type, i.Left, i.Right)
	return nil
}

func floatPredicate(op ir.CompareOp) (string, bool) {
	switch op {
	case ir.Eq:
		return "oeq", true
	case ir.Ne:
		return "one", true
	case ir.Lt:
		return "olt", true
	case ir.Le:
		return "ole", true
	case ir.Gt:
		return "ogt", true
	case ir.Ge:
		return "oge", true
	default:
		return "", false
	}
}

func (g *Generator) writeCall(i *ir.Call) error {
	args := make([]string, 0, len(i.Args))
	for _, a := range i.Args {
		args = append(args, fmt.Sprintf("%s %s", argType(a, i.Type), a))
	}
	if i.Dest == nil || i.Type == ir.Void {
		g.line("call void @%s(%s)", i.Callee, strings.Join(args, ", "))
	} else {
		g.line("%s = call %s @%s(%s)", i.Dest, i.Type, i.Callee, strings.Join(args, ", "))
	}
	return nil
}

// argType picks the textual type of a call argument. Float literals keep
// their own width; everything else follows the call's type.
func argType(v ir.Value, callType ir.Type) ir.Type {
	if _, ok := v.(ir.Float); ok {
		return ir.F64
	}
	if callType == ir.Void {
		return ir.I32
	}
	return callType
}

func (g *Generator) writePhi(i *ir.Phi) error {
	if len(i.Incoming) == 0 {
		return &WellFormednessError{Message: "phi with no incoming values"}
	}
	parts := make([]string, 0, len(i.Incoming))
	for _, in := range i.Incoming {
		parts = append(parts, fmt.Sprintf("[%s, %%%s]", in.Value, in.Block))
	}
	g.line("%s = phi %s %s", i.Dest, i.Type, strings.Join(parts, ", "))
	return nil
}
