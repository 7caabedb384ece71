package ir

// RISC-V typed instruction forms, grouped by encoding shape. These appear
// in IR produced for RISC-V targets and lower through the same backend as
// the architecture-neutral instructions.

// RVRegOp enumerates register-register opcodes, including the M-extension
// multiply/divide family and the RV64 word-width (W-suffixed) forms.
type RVRegOp int

const (
	RVAdd RVRegOp = iota
	RVSub
	RVSll
	RVSlt
	RVSltu
	RVXor
	RVSrl
	RVSra
	RVOr
	RVAnd
	RVMul
	RVMulh
	RVMulhu
	RVDiv
	RVDivu
	RVRem
	RVRemu
	RVAddw
	RVSubw
	RVSllw
	RVSrlw
	RVSraw
	RVMulw
	RVDivw
	RVDivuw
	RVRemw
	RVRemuw
)

// RVImmOp enumerates register-immediate opcodes.
type RVImmOp int

const (
	RVAddi RVImmOp = iota
	RVSlti
	RVSltiu
	RVXori
	RVOri
	RVAndi
	RVSlli
	RVSrli
	RVSrai
	RVAddiw
	RVSlliw
	RVSrliw
	RVSraiw
)

// RVLoadOp enumerates load opcodes. Sub-word loads sign-extend unless the
// unsigned form is used.
type RVLoadOp int

const (
	RVLb RVLoadOp = iota
	RVLh
	RVLw
	RVLbu
	RVLhu
	RVLwu
	RVLd
)

// RVStoreOp enumerates store opcodes. Sub-word stores truncate.
type RVStoreOp int

const (
	RVSb RVStoreOp = iota
	RVSh
	RVSw
	RVSd
)

// RVBranchOp enumerates conditional branch opcodes. The not-taken path
// falls through to the next instruction.
type RVBranchOp int

const (
	RVBeq RVBranchOp = iota
	RVBne
	RVBlt
	RVBge
	RVBltu
	RVBgeu
)

// RVAmoOp enumerates A-extension read-modify-write opcodes.
type RVAmoOp int

const (
	RVAmoSwap RVAmoOp = iota
	RVAmoAdd
	RVAmoXor
	RVAmoAnd
	RVAmoOr
	RVAmoMin
	RVAmoMax
	RVAmoMinu
	RVAmoMaxu
)

// RVFRegOp enumerates F/D-extension arithmetic opcodes.
type RVFRegOp int

const (
	RVFaddS RVFRegOp = iota
	RVFsubS
	RVFmulS
	RVFdivS
	RVFaddD
	RVFsubD
	RVFmulD
	RVFdivD
)

// RVFUnOp enumerates single-operand float opcodes: square root and the
// conversion family.
type RVFUnOp int

const (
	RVFsqrtS RVFUnOp = iota
	RVFsqrtD
	RVFcvtSD // double to float
	RVFcvtDS // float to double
	RVFcvtWS // float to i32
	RVFcvtWD // double to i32
	RVFcvtSW // i32 to float
	RVFcvtDW // i32 to double
)

// RVFCmpOp enumerates float comparison opcodes. Results are 0/1 integers.
type RVFCmpOp int

const (
	RVFeqS RVFCmpOp = iota
	RVFltS
	RVFleS
	RVFeqD
	RVFltD
	RVFleD
)

// RVCsrOp enumerates CSR access opcodes.
type RVCsrOp int

const (
	RVCsrrw RVCsrOp = iota
	RVCsrrs
	RVCsrrc
)

// RVReg is a register-register instruction.
type RVReg struct {
	Op  RVRegOp
	Rd  Value
	Rs1 Value
	Rs2 Value
}

// RVImm is a register-immediate instruction.
type RVImm struct {
	Op  RVImmOp
	Rd  Value
	Rs1 Value
	Imm int64
}

// RVLoad reads memory at Rs1+Offset.
type RVLoad struct {
	Op     RVLoadOp
	Rd     Value
	Rs1    Value
	Offset int64
}

// RVStore writes Rs2 to memory at Rs1+Offset.
type RVStore struct {
	Op     RVStoreOp
	Rs1    Value
	Rs2    Value
	Offset int64
}

// RVBranch compares Rs1 with Rs2 and transfers to Target when taken.
type RVBranch struct {
	Op     RVBranchOp
	Rs1    Value
	Rs2    Value
	Target string
}

// RVLui loads Imm shifted left by twelve into Rd.
type RVLui struct {
	Rd  Value
	Imm int64
}

// RVAuipc adds Imm shifted left by twelve to the current code address.
type RVAuipc struct {
	Rd  Value
	Imm int64
}

// RVJal links the continuation address into Rd and jumps to Target.
type RVJal struct {
	Rd     Value
	Target string
}

// RVJalr jumps indirectly through Rs1+Offset.
type RVJalr struct {
	Rd     Value
	Rs1    Value
	Offset int64
}

// RVLrW is a load-reserved word.
type RVLrW struct {
	Rd  Value
	Rs1 Value
}

// RVScW is a store-conditional word. Rd receives the success flag.
type RVScW struct {
	Rd  Value
	Rs1 Value
	Rs2 Value
}

// RVAmo is an atomic read-modify-write on the word at Rs1.
type RVAmo struct {
	Op  RVAmoOp
	Rd  Value
	Rs1 Value
	Rs2 Value
}

// RVFLoad reads a float (FLW) or double (FLD) at Rs1+Offset.
type RVFLoad struct {
	Double bool
	Rd     Value
	Rs1    Value
	Offset int64
}

// RVFStore writes a float (FSW) or double (FSD) to Rs1+Offset.
type RVFStore struct {
	Double bool
	Rs1    Value
	Rs2    Value
	Offset int64
}

// RVFReg is a float register-register arithmetic instruction.
type RVFReg struct {
	Op  RVFRegOp
	Rd  Value
	Rs1 Value
	Rs2 Value
}

// RVFUn is a single-operand float instruction.
type RVFUn struct {
	Op  RVFUnOp
	Rd  Value
	Rs1 Value
}

// RVFCmp is a float comparison writing 0/1 to Rd.
type RVFCmp struct {
	Op  RVFCmpOp
	Rd  Value
	Rs1 Value
	Rs2 Value
}

// RVEcall traps into the execution environment.
type RVEcall struct{}

// RVEbreak transfers to a debugger.
type RVEbreak struct{}

// RVFence orders memory accesses.
type RVFence struct{}

// RVFenceI synchronizes the instruction stream.
type RVFenceI struct{}

// RVCsr accesses a control and status register with a register source.
type RVCsr struct {
	Op  RVCsrOp
	Rd  Value
	CSR int64
	Rs1 Value
}

// RVCsrImm accesses a control and status register with an immediate source.
type RVCsrImm struct {
	Op  RVCsrOp
	Rd  Value
	CSR int64
	Imm int64
}

// Compressed-extension forms. Each lowers identically to its expansion.

// RVCLi is c.li: load immediate.
type RVCLi struct {
	Rd  Value
	Imm int64
}

// RVCMv is c.mv: register copy.
type RVCMv struct {
	Rd Value
	Rs Value
}

// RVCAdd is c.add: Rd = Rd + Rs.
type RVCAdd struct {
	Rd Value
	Rs Value
}

// RVCAddi is c.addi: Rd = Rd + Imm.
type RVCAddi struct {
	Rd  Value
	Imm int64
}

// RVCLw is c.lw: word load.
type RVCLw struct {
	Rd     Value
	Rs1    Value
	Offset int64
}

// RVCSw is c.sw: word store.
type RVCSw struct {
	Rs1    Value
	Rs2    Value
	Offset int64
}

// RVCJ is c.j: unconditional jump.
type RVCJ struct {
	Target string
}

// RVCBeqz is c.beqz: branch when Rs1 is zero.
type RVCBeqz struct {
	Rs1    Value
	Target string
}

func (*RVReg) irInstr()    {}
func (*RVImm) irInstr()    {}
func (*RVLoad) irInstr()   {}
func (*RVStore) irInstr()  {}
func (*RVBranch) irInstr() {}
func (*RVLui) irInstr()    {}
func (*RVAuipc) irInstr()  {}
func (*RVJal) irInstr()    {}
func (*RVJalr) irInstr()   {}
func (*RVLrW) irInstr()    {}
func (*RVScW) irInstr()    {}
func (*RVAmo) irInstr()    {}
func (*RVFLoad) irInstr()  {}
func (*RVFStore) irInstr() {}
func (*RVFReg) irInstr()   {}
func (*RVFUn) irInstr()    {}
func (*RVFCmp) irInstr()   {}
func (*RVEcall) irInstr()  {}
func (*RVEbreak) irInstr() {}
func (*RVFence) irInstr()  {}
func (*RVFenceI) irInstr() {}
func (*RVCsr) irInstr()    {}
func (*RVCsrImm) irInstr() {}
func (*RVCLi) irInstr()    {}
func (*RVCMv) irInstr()    {}
func (*RVCAdd) irInstr()   {}
func (*RVCAddi) irInstr()  {}
func (*RVCLw) irInstr()    {}
func (*RVCSw) irInstr()    {}
func (*RVCJ) irInstr()     {}
func (*RVCBeqz) irInstr()  {}
