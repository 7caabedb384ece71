package codegen

import (
	"fmt"

	"github.com/codeyousef/SeenLang-sub001/internal/ir"
)

// RISC-V integer instructions lower at i32 on every register width; only
// the LD/SD memory path and the W-form sign extensions touch i64.
// Blockaddress expressions anchor on the @main symbol regardless of the
// enclosing function.

func (g *Generator) writeRiscV(instr ir.Instruction) error {
	switch i := instr.(type) {
	case *ir.RVReg:
		return g.writeRVReg(i)
	case *ir.RVImm:
		return g.writeRVImm(i)
	case *ir.RVLoad:
		return g.writeRVLoad(i)
	case *ir.RVStore:
		return g.writeRVStore(i)
	case *ir.RVBranch:
		name, pred := branchPredicate(i.Op)
		g.line("%%%s.cond = icmp %s i32 %s, %s", name, pred, i.Rs1, i.Rs2)
		next := g.nextLabel()
		g.line("br i1 %%%s.cond, label %%%s, label %%%s", name, i.Target, next)
		g.label(next)
		return nil
	case *ir.RVLui:
		g.line("%s = add i32 0, %d", i.Rd, i.Imm<<12)
		return nil
	case *ir.RVAuipc:
		g.line("%s = add i32 ptrtoint (i8* blockaddress(@main, %%entry) to i32), %d", i.Rd, i.Imm<<12)
		return nil
	case *ir.RVJal:
		if i.Rd != nil {
			// The link register holds the continuation address.
			g.line("%s = ptrtoint i8* blockaddress(@main, %%return) to i32", i.Rd)
		}
		g.line("br label %%%s", i.Target)
		return nil
	case *ir.RVJalr:
		if i.Rd != nil {
			g.line("%s = ptrtoint i8* blockaddress(@main, %%return) to i32", i.Rd)
		}
		g.line("%%jalr.addr = add i32 %s, %d", i.Rs1, i.Offset)
		g.line("indirectbr i8* inttoptr (i32 %%jalr.addr to i8*), []")
		return nil
	case *ir.RVLrW:
		g.line("%s.ptr = inttoptr i32 %s to i32*", i.Rd, i.Rs1)
		g.line("%s = load atomic i32, i32* %s.ptr seq_cst, align 4", i.Rd, i.Rd)
		return nil
	case *ir.RVScW:
		// Store-conditional is approximated as an unconditional atomic
		// store; the flag always reports success.
		g.line("%s.ptr = inttoptr i32 %s to i32*", i.Rd, i.Rs1)
		g.line("store atomic i32 %s, i32* %s.ptr seq_cst, align 4", i.Rs2, i.Rd)
		g.line("%s = add i32 0, 0", i.Rd)
		return nil
	case *ir.RVAmo:
		// Ordering bits collapse to sequential consistency.
		g.line("%s.ptr = inttoptr i32 %s to i32*", i.Rd, i.Rs1)
		g.line("%s = atomicrmw %s i32* %s.ptr, i32 %s seq_cst", i.Rd, amoOpcode(i.Op), i.Rd, i.Rs2)
		return nil
	case *ir.RVFLoad:
		ty, align := "float", 4
		if i.Double {
			ty, align = "double", 8
		}
		g.line("%s.addr = add i32 %s, %d", i.Rd, i.Rs1, i.Offset)
		g.line("%s.ptr = inttoptr i32 %s.addr to %s*", i.Rd, i.Rd, ty)
		g.line("%s = load %s, %s* %s.ptr, align %d", i.Rd, ty, ty, i.Rd, align)
		return nil
	case *ir.RVFStore:
		prefix, ty, align := "fsw", "float", 4
		if i.Double {
			prefix, ty, align = "fsd", "double", 8
		}
		g.line("%%%s.addr = add i32 %s, %d", prefix, i.Rs1, i.Offset)
		g.line("%%%s.ptr = inttoptr i32 %%%s.addr to %s*", prefix, prefix, ty)
		g.line("store %s %s, %s* %%%s.ptr, align %d", ty, i.Rs2, ty, prefix, align)
		return nil
	case *ir.RVFReg:
		op, ty := fregOpcode(i.Op)
		g.line("%s = %s %s %s, %s", i.Rd, op, ty, i.Rs1, i.Rs2)
		return nil
	case *ir.RVFUn:
		return g.writeRVFUn(i)
	case *ir.RVFCmp:
		pred, ty := fcmpPredicate(i.Op)
		g.line("%s.cmp = fcmp %s %s %s, %s", i.Rd, pred, ty, i.Rs1, i.Rs2)
		g.line("%s = zext i1 %s.cmp to i32", i.Rd, i.Rd)
		return nil
	case *ir.RVEcall:
		g.line("call void @__riscv_ecall()")
		return nil
	case *ir.RVEbreak:
		g.line("call void @llvm.debugtrap()")
		return nil
	case *ir.RVFence:
		g.line("fence seq_cst, seq_cst")
		return nil
	case *ir.RVFenceI:
		g.line("call void @llvm.instruction.fence()")
		return nil
	case *ir.RVCsr:
		g.line("%s = call i32 @%s(i32 %d, i32 %s)", i.Rd, csrIntrinsic(i.Op), i.CSR, i.Rs1)
		return nil
	case *ir.RVCsrImm:
		// Immediate CSR forms pass the immediate as the value argument.
		g.line("%s = call i32 @%s(i32 %d, i32 %d)", i.Rd, csrIntrinsic(i.Op), i.CSR, i.Imm)
		return nil
	case *ir.RVCLi:
		g.line("%s = add i32 0, %d", i.Rd, i.Imm)
		return nil
	case *ir.RVCMv:
		g.line("%s = add i32 0, %s", i.Rd, i.Rs)
		return nil
	case *ir.RVCAdd:
		g.line("%s = add i32 %s, %s", i.Rd, i.Rd, i.Rs)
		return nil
	case *ir.RVCAddi:
		g.line("%s = add i32 %s, %d", i.Rd, i.Rd, i.Imm)
		return nil
	case *ir.RVCLw:
		return g.writeRVLoad(&ir.RVLoad{Op: ir.RVLw, Rd: i.Rd, Rs1: i.Rs1, Offset: i.Offset})
	case *ir.RVCSw:
		return g.writeRVStore(&ir.RVStore{Op: ir.RVSw, Rs1: i.Rs1, Rs2: i.Rs2, Offset: i.Offset})
	case *ir.RVCJ:
		g.line("br label %%%s", i.Target)
		return nil
	case *ir.RVCBeqz:
		g.line("%%beqz.cond = icmp eq i32 %s, 0", i.Rs1)
		next := g.nextLabel()
		g.line("br i1 %%beqz.cond, label %%%s, label %%%s", i.Target, next)
		g.label(next)
		return nil
	default:
		return &WellFormednessError{Message: fmt.Sprintf("unsupported instruction %T for target %s", instr, g.target.Arch)}
	}
}

func (g *Generator) writeRVReg(i *ir.RVReg) error {
	switch i.Op {
	case ir.RVAdd, ir.RVSub, ir.RVSll, ir.RVXor, ir.RVSrl, ir.RVSra, ir.RVOr, ir.RVAnd,
		ir.RVMul, ir.RVDiv, ir.RVDivu, ir.RVRem, ir.RVRemu:
		g.line("%s = %s i32 %s, %s", i.Rd, aluOpcode(i.Op), i.Rs1, i.Rs2)
		return nil
	case ir.RVSlt, ir.RVSltu:
		pred := "slt"
		if i.Op == ir.RVSltu {
			pred = "ult"
		}
		g.line("%s = icmp %s i32 %s, %s", i.Rd, pred, i.Rs1, i.Rs2)
		return nil
	case ir.RVMulh, ir.RVMulhu:
		return g.writeHighMultiply(i)
	case ir.RVAddw, ir.RVSubw, ir.RVSllw, ir.RVSrlw, ir.RVSraw, ir.RVMulw,
		ir.RVDivw, ir.RVDivuw, ir.RVRemw, ir.RVRemuw:
		if g.target.XLen() != 64 {
			return &WellFormednessError{Message: "word-width instruction on a 32-bit target"}
		}
		g.line("%s.tmp = %s i32 %s, %s", i.Rd, wordOpcode(i.Op), i.Rs1, i.Rs2)
		g.line("%s = sext i32 %s.tmp to i64", i.Rd, i.Rd)
		return nil
	default:
		return &WellFormednessError{Message: fmt.Sprintf("unsupported register opcode %d", i.Op)}
	}
}

// writeHighMultiply widens both operands to i64, multiplies, shifts right
// by 32 and truncates. There is no native high-multiply primitive in the
// output form.
func (g *Generator) writeHighMultiply(i *ir.RVReg) error {
	ext := "sext"
	if i.Op == ir.RVMulhu {
		ext = "zext"
	}
	g.line("%s.ext1 = %s i32 %s to i64", i.Rd, ext, i.Rs1)
	g.line("%s.ext2 = %s i32 %s to i64", i.Rd, ext, i.Rs2)
	g.line("%s.full = mul i64 %s.ext1, %s.ext2", i.Rd, i.Rd, i.Rd)
	g.line("%s.shifted = lshr i64 %s.full, 32", i.Rd, i.Rd)
	g.line("%s = trunc i64 %s.shifted to i32", i.Rd, i.Rd)
	return nil
}

func (g *Generator) writeRVImm(i *ir.RVImm) error {
	switch i.Op {
	case ir.RVAddi, ir.RVXori, ir.RVOri, ir.RVAndi, ir.RVSlli, ir.RVSrli, ir.RVSrai:
		g.line("%s = %s i32 %s, %d", i.Rd, immOpcode(i.Op), i.Rs1, i.Imm)
		return nil
	case ir.RVSlti, ir.RVSltiu:
		pred := "slt"
		if i.Op == ir.RVSltiu {
			pred = "ult"
		}
		g.line("%s = icmp %s i32 %s, %d", i.Rd, pred, i.Rs1, i.Imm)
		return nil
	case ir.RVAddiw, ir.RVSlliw, ir.RVSrliw, ir.RVSraiw:
		if g.target.XLen() != 64 {
			return &WellFormednessError{Message: "word-width instruction on a 32-bit target"}
		}
		g.line("%s.tmp = %s i32 %s, %d", i.Rd, wordImmOpcode(i.Op), i.Rs1, i.Imm)
		g.line("%s = sext i32 %s.tmp to i64", i.Rd, i.Rd)
		return nil
	default:
		return &WellFormednessError{Message: fmt.Sprintf("unsupported immediate opcode %d", i.Op)}
	}
}

func (g *Generator) writeRVLoad(i *ir.RVLoad) error {
	if i.Op == ir.RVLd || i.Op == ir.RVLwu {
		if g.target.XLen() != 64 {
			return &WellFormednessError{Message: "64-bit load on a 32-bit target"}
		}
	}

	// Doubleword is the only access working in i64 address arithmetic.
	if i.Op == ir.RVLd {
		g.line("%s.addr = add i64 %s, %d", i.Rd, i.Rs1, i.Offset)
		g.line("%s.ptr = inttoptr i64 %s.addr to i64*", i.Rd, i.Rd)
		g.line("%s = load i64, i64* %s.ptr, align 8", i.Rd, i.Rd)
		return nil
	}

	memTy, suffix, align := loadShape(i.Op)
	g.line("%s.addr = add i32 %s, %d", i.Rd, i.Rs1, i.Offset)
	g.line("%s.ptr = inttoptr i32 %s.addr to %s*", i.Rd, i.Rd, memTy)

	if i.Op == ir.RVLw {
		g.line("%s = load i32, i32* %s.ptr, align 4", i.Rd, i.Rd)
		return nil
	}

	// Narrow loads extend, sign or zero per the opcode; LWU widens the
	// word to i64.
	ext, destTy := "sext", "i32"
	if i.Op == ir.RVLbu || i.Op == ir.RVLhu || i.Op == ir.RVLwu {
		ext = "zext"
	}
	if i.Op == ir.RVLwu {
		destTy = "i64"
	}
	g.line("%s.%s = load %s, %s* %s.ptr, align %d", i.Rd, suffix, memTy, memTy, i.Rd, align)
	g.line("%s = %s %s %s.%s to %s", i.Rd, ext, memTy, i.Rd, suffix, destTy)
	return nil
}

func loadShape(op ir.RVLoadOp) (memTy, suffix string, align int) {
	switch op {
	case ir.RVLb, ir.RVLbu:
		return "i8", "byte", 1
	case ir.RVLh, ir.RVLhu:
		return "i16", "half", 2
	default:
		return "i32", "word", 4
	}
}

func (g *Generator) writeRVStore(i *ir.RVStore) error {
	if i.Op == ir.RVSd {
		if g.target.XLen() != 64 {
			return &WellFormednessError{Message: "64-bit store on a 32-bit target"}
		}
		g.line("%%sd.addr = add i64 %s, %d", i.Rs1, i.Offset)
		g.line("%%sd.ptr = inttoptr i64 %%sd.addr to i64*")
		g.line("store i64 %s, i64* %%sd.ptr, align 8", i.Rs2)
		return nil
	}

	prefix, memTy, suffix, align := storeShape(i.Op)
	g.line("%%%s.addr = add i32 %s, %d", prefix, i.Rs1, i.Offset)
	g.line("%%%s.ptr = inttoptr i32 %%%s.addr to %s*", prefix, prefix, memTy)

	if i.Op == ir.RVSw {
		g.line("store i32 %s, i32* %%sw.ptr, align 4", i.Rs2)
		return nil
	}
	g.line("%%%s.%s = trunc i32 %s to %s", prefix, suffix, i.Rs2, memTy)
	g.line("store %s %%%s.%s, %s* %%%s.ptr, align %d", memTy, prefix, suffix, memTy, prefix, align)
	return nil
}

func storeShape(op ir.RVStoreOp) (prefix, memTy, suffix string, align int) {
	switch op {
	case ir.RVSb:
		return "sb", "i8", "byte", 1
	case ir.RVSh:
		return "sh", "i16", "half", 2
	default:
		return "sw", "i32", "word", 4
	}
}

func (g *Generator) writeRVFUn(i *ir.RVFUn) error {
	switch i.Op {
	case ir.RVFsqrtS:
		g.line("%s = call float @llvm.sqrt.f32(float %s)", i.Rd, i.Rs1)
	case ir.RVFsqrtD:
		g.line("%s = call double @llvm.sqrt.f64(double %s)", i.Rd, i.Rs1)
	case ir.RVFcvtSD:
		g.line("%s = fptrunc double %s to float", i.Rd, i.Rs1)
	case ir.RVFcvtDS:
		g.line("%s = fpext float %s to double", i.Rd, i.Rs1)
	case ir.RVFcvtWS:
		g.line("%s = fptosi float %s to i32", i.Rd, i.Rs1)
	case ir.RVFcvtWD:
		g.line("%s = fptosi double %s to i32", i.Rd, i.Rs1)
	case ir.RVFcvtSW:
		g.line("%s = sitofp i32 %s to float", i.Rd, i.Rs1)
	case ir.RVFcvtDW:
		g.line("%s = sitofp i32 %s to double", i.Rd, i.Rs1)
	default:
		return &WellFormednessError{Message: fmt.Sprintf("unsupported float opcode %d", i.Op)}
	}
	return nil
}

func aluOpcode(op ir.RVRegOp) string {
	switch op {
	case ir.RVAdd:
		return "add"
	case ir.RVSub:
		return "sub"
	case ir.RVSll:
		return "shl"
	case ir.RVXor:
		return "xor"
	case ir.RVSrl:
		return "lshr"
	case ir.RVSra:
		return "ashr"
	case ir.RVOr:
		return "or"
	case ir.RVAnd:
		return "and"
	case ir.RVMul:
		return "mul"
	case ir.RVDiv:
		return "sdiv"
	case ir.RVDivu:
		return "udiv"
	case ir.RVRem:
		return "srem"
	default:
		return "urem"
	}
}

func wordOpcode(op ir.RVRegOp) string {
	switch op {
	case ir.RVAddw:
		return "add"
	case ir.RVSubw:
		return "sub"
	case ir.RVSllw:
		return "shl"
	case ir.RVSrlw:
		return "lshr"
	case ir.RVSraw:
		return "ashr"
	case ir.RVMulw:
		return "mul"
	case ir.RVDivw:
		return "sdiv"
	case ir.RVDivuw:
		return "udiv"
	case ir.RVRemw:
		return "srem"
	default:
		return "urem"
	}
}

func immOpcode(op ir.RVImmOp) string {
	switch op {
	case ir.RVAddi:
		return "add"
	case ir.RVXori:
		return "xor"
	case ir.RVOri:
		return "or"
	case ir.RVAndi:
		return "and"
	case ir.RVSlli:
		return "shl"
	case ir.RVSrli:
		return "lshr"
	default:
		return "ashr"
	}
}

func wordImmOpcode(op ir.RVImmOp) string {
	switch op {
	case ir.RVAddiw:
		return "add"
	case ir.RVSlliw:
		return "shl"
	case ir.RVSrliw:
		return "lshr"
	default:
		return "ashr"
	}
}

func branchPredicate(op ir.RVBranchOp) (name, pred string) {
	switch op {
	case ir.RVBeq:
		return "eq", "eq"
	case ir.RVBne:
		return "ne", "ne"
	case ir.RVBlt:
		return "lt", "slt"
	case ir.RVBge:
		return "ge", "sge"
	case ir.RVBltu:
		return "ltu", "ult"
	default:
		return "geu", "uge"
	}
}

func amoOpcode(op ir.RVAmoOp) string {
	switch op {
	case ir.RVAmoSwap:
		return "xchg"
	case ir.RVAmoAdd:
		return "add"
	case ir.RVAmoXor:
		return "xor"
	case ir.RVAmoAnd:
		return "and"
	case ir.RVAmoOr:
		return "or"
	case ir.RVAmoMin:
		return "min"
	case ir.RVAmoMax:
		return "max"
	case ir.RVAmoMinu:
		return "umin"
	default:
		return "umax"
	}
}

func fregOpcode(op ir.RVFRegOp) (opcode, ty string) {
	switch op {
	case ir.RVFaddS:
		return "fadd", "float"
	case ir.RVFsubS:
		return "fsub", "float"
	case ir.RVFmulS:
		return "fmul", "float"
	case ir.RVFdivS:
		return "fdiv", "float"
	case ir.RVFaddD:
		return "fadd", "double"
	case ir.RVFsubD:
		return "fsub", "double"
	case ir.RVFmulD:
		return "fmul", "double"
	default:
		return "fdiv", "double"
	}
}

func fcmpPredicate(op ir.RVFCmpOp) (pred, ty string) {
	switch op {
	case ir.RVFeqS:
		return "oeq", "float"
	case ir.RVFltS:
		return "olt", "float"
	case ir.RVFleS:
		return "ole", "float"
	case ir.RVFeqD:
		return "oeq", "double"
	case ir.RVFltD:
		return "olt", "double"
	default:
		return "ole", "double"
	}
}

func csrIntrinsic(op ir.RVCsrOp) string {
	switch op {
	case ir.RVCsrrw:
		return "__riscv_csrrw"
	case ir.RVCsrrs:
		return "__riscv_csrrs"
	default:
		return "__riscv_csrrc"
	}
}
