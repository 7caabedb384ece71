package ir

import (
	"fmt"
	"strings"
)

// FormatModule returns a readable text representation of the IR module,
// used for debug dumps and test diagnostics.
func FormatModule(mod *Module) string {
	if mod == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", mod.Name)

	for _, fn := range mod.Functions {
		b.WriteString("\n")
		writeFunction(&b, fn)
	}

	return b.String()
}

func writeFunction(b *strings.Builder, fn *Function) {
	if fn == nil {
		return
	}

	fmt.Fprintf(b, "fn %s(", fn.Name)
	for i, param := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %s", param.Name, param.Type)
	}
	fmt.Fprintf(b, ") -> %s {\n", fn.Return)

	for _, block := range fn.Blocks {
		writeBlock(b, block)
	}

	b.WriteString("}\n")
}

func writeBlock(b *strings.Builder, block *BasicBlock) {
	if block == nil {
		return
	}

	fmt.Fprintf(b, "  %s:\n", block.Label)
	for _, instr := range block.Instructions {
		fmt.Fprintf(b, "    %s\n", FormatInstr(instr))
	}
}

// FormatInstr returns a one-line text form of an instruction.
func FormatInstr(instr Instruction) string {
	switch i := instr.(type) {
	case *Binary:
		return fmt.Sprintf("%s = %s %s %s, %s", i.Dest, i.Op, i.Type, i.Left, i.Right)
	case *Unary:
		return fmt.Sprintf("%s = %s %s %s", i.Dest, i.Op, i.Type, i.Operand)
	case *Move:
		return fmt.Sprintf("%s = move %s %s", i.Dest, i.Type, i.Src)
	case *Compare:
		return fmt.Sprintf("%s = cmp %s %s %s, %s", i.Dest, i.Op, i.Type, i.Left, i.Right)
	case *Load:
		return fmt.Sprintf("%s = load %s %s", i.Dest, i.Type, i.Addr)
	case *Store:
		return fmt.Sprintf("store %s %s, %s", i.Type, i.Src, i.Addr)
	case *Call:
		if i.Dest != nil {
			return fmt.Sprintf("%s = call %s(%s) : %s", i.Dest, i.Callee, formatValues(i.Args), i.Type)
		}
		return fmt.Sprintf("call %s(%s)", i.Callee, formatValues(i.Args))
	case *Print:
		return fmt.Sprintf("print %s %s", i.Type, i.Operand)
	case *Return:
		if i.Value != nil {
			return fmt.Sprintf("ret %s %s", i.Type, i.Value)
		}
		return "ret"
	case *Jump:
		return fmt.Sprintf("jump %s", i.Target)
	case *Branch:
		return fmt.Sprintf("branch %s, %s, %s", i.Cond, i.Then, i.Else)
	case *Phi:
		return fmt.Sprintf("%s = phi %s %s", i.Dest, i.Type, formatIncoming(i.Incoming))
	case *Alloca:
		return fmt.Sprintf("%s = alloca %s", i.Dest, i.Type)
	case *Nop:
		return "nop"
	default:
		// RISC-V typed forms render through their Go struct dump; precise
		// mnemonics only matter in the lowered output.
		return fmt.Sprintf("%T%+v", instr, instr)
	}
}

func formatValues(values []Value) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, ", ")
}

func formatIncoming(incoming []PhiIncoming) string {
	if len(incoming) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(incoming))
	for _, in := range incoming {
		parts = append(parts, fmt.Sprintf("%s: %s", in.Block, in.Value))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
