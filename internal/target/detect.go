package target

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// DetectHost returns a best-effort target for the machine the backend is
// running on. On RISC-V hosts the compressed and vector flags come from
// the kernel's feature probe; M, A, F and D are mandated by the Linux
// platform spec and assumed present.
func DetectHost() Target {
	switch runtime.GOARCH {
	case "riscv64":
		ext := DefaultExtensions()
		ext.C = cpu.RISCV64.HasC
		ext.V = cpu.RISCV64.HasV
		t := Linux(RiscV64)
		t.Extensions = &ext
		return t
	case "wasm":
		return Target{Arch: Wasm32}
	default:
		return Linux(X8664)
	}
}
