package optimizer

import "github.com/codeyousef/SeenLang-sub001/internal/ir"

// destination returns the value an instruction defines, or nil.
func destination(instr ir.Instruction) ir.Value {
	switch i := instr.(type) {
	case *ir.Binary:
		return i.Dest
	case *ir.Unary:
		return i.Dest
	case *ir.Move:
		return i.Dest
	case *ir.Compare:
		return i.Dest
	case *ir.Load:
		return i.Dest
	case *ir.Call:
		return i.Dest
	case *ir.Phi:
		return i.Dest
	case *ir.Alloca:
		return i.Dest
	case *ir.RVReg:
		return i.Rd
	case *ir.RVImm:
		return i.Rd
	case *ir.RVLoad:
		return i.Rd
	case *ir.RVLui:
		return i.Rd
	case *ir.RVAuipc:
		return i.Rd
	case *ir.RVFLoad:
		return i.Rd
	case *ir.RVFReg:
		return i.Rd
	case *ir.RVFUn:
		return i.Rd
	case *ir.RVFCmp:
		return i.Rd
	case *ir.RVCLi:
		return i.Rd
	case *ir.RVCMv:
		return i.Rd
	default:
		return nil
	}
}

// operands returns every value an instruction reads.
func operands(instr ir.Instruction) []ir.Value {
	switch i := instr.(type) {
	case *ir.Binary:
		return []ir.Value{i.Left, i.Right}
	case *ir.Unary:
		return []ir.Value{i.Operand}
	case *ir.Move:
		return []ir.Value{i.Src}
	case *ir.Compare:
		return []ir.Value{i.Left, i.Right}
	case *ir.Load:
		return []ir.Value{i.Addr}
	case *ir.Store:
		return []ir.Value{i.Addr, i.Src}
	case *ir.Call:
		return i.Args
	case *ir.Print:
		return []ir.Value{i.Operand}
	case *ir.Return:
		if i.Value != nil {
			return []ir.Value{i.Value}
		}
		return nil
	case *ir.Branch:
		return []ir.Value{i.Cond}
	case *ir.Phi:
		vals := make([]ir.Value, 0, len(i.Incoming))
		for _, in := range i.Incoming {
			vals = append(vals, in.Value)
		}
		return vals
	case *ir.RVReg:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVImm:
		return []ir.Value{i.Rs1}
	case *ir.RVLoad:
		return []ir.Value{i.Rs1}
	case *ir.RVStore:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVBranch:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVJalr:
		return []ir.Value{i.Rs1}
	case *ir.RVLrW:
		return []ir.Value{i.Rs1}
	case *ir.RVScW:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVAmo:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVFLoad:
		return []ir.Value{i.Rs1}
	case *ir.RVFStore:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVFReg:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVFUn:
		return []ir.Value{i.Rs1}
	case *ir.RVFCmp:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVCsr:
		return []ir.Value{i.Rs1}
	case *ir.RVCMv:
		return []ir.Value{i.Rs}
	case *ir.RVCAdd:
		return []ir.Value{i.Rd, i.Rs}
	case *ir.RVCAddi:
		return []ir.Value{i.Rd}
	case *ir.RVCLw:
		return []ir.Value{i.Rs1}
	case *ir.RVCSw:
		return []ir.Value{i.Rs1, i.Rs2}
	case *ir.RVCBeqz:
		return []ir.Value{i.Rs1}
	default:
		return nil
	}
}

// hasSideEffects reports whether an instruction must survive dead-code
// elimination regardless of whether its result is used: memory writes,
// calls, printing, allocation, returns, and every control transfer.
func hasSideEffects(instr ir.Instruction) bool {
	switch instr.(type) {
	case *ir.Store, *ir.Call, *ir.Print, *ir.Return, *ir.Jump, *ir.Branch, *ir.Alloca:
		return true
	case *ir.RVStore, *ir.RVBranch, *ir.RVJal, *ir.RVJalr,
		*ir.RVLrW, *ir.RVScW, *ir.RVAmo, *ir.RVFStore,
		*ir.RVEcall, *ir.RVEbreak, *ir.RVFence, *ir.RVFenceI,
		*ir.RVCsr, *ir.RVCsrImm,
		*ir.RVCSw, *ir.RVCJ, *ir.RVCBeqz:
		return true
	default:
		return false
	}
}
