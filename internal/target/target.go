// Package target describes code-generation targets: architecture, ABI
// strings, and the RISC-V standard extension set.
package target

import "fmt"

// Architecture enumerates the supported code-generation architectures.
type Architecture int

const (
	X8664 Architecture = iota
	RiscV32
	RiscV64
	Wasm32
)

func (a Architecture) String() string {
	switch a {
	case X8664:
		return "x86_64"
	case RiscV32:
		return "riscv32"
	case RiscV64:
		return "riscv64"
	case Wasm32:
		return "wasm32"
	default:
		return "unknown"
	}
}

// ConfigError reports an invalid target configuration, such as an
// unsupported register width or extension combination.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// Target is an immutable architecture plus ABI description.
type Target struct {
	Arch Architecture
	OS   string // "linux" or "none"
	Env  string // "gnu", empty for bare metal
	// Extensions applies to RISC-V targets only; nil selects the
	// default RV64GC-style profile.
	Extensions *RiscVExtensions
}

// Linux returns a hosted Linux target for the architecture.
func Linux(arch Architecture) Target {
	if arch == Wasm32 {
		return Target{Arch: Wasm32}
	}
	return Target{Arch: arch, OS: "linux", Env: "gnu"}
}

// BareMetal returns a freestanding target for the architecture.
func BareMetal(arch Architecture) Target {
	return Target{Arch: arch, OS: "none"}
}

// IsRiscV reports whether the target is a RISC-V architecture.
func (t Target) IsRiscV() bool {
	return t.Arch == RiscV32 || t.Arch == RiscV64
}

// XLen returns the integer register width in bits.
func (t Target) XLen() int {
	switch t.Arch {
	case RiscV32, Wasm32:
		return 32
	default:
		return 64
	}
}

// Ext returns the effective RISC-V extension set. Non-RISC-V targets get
// the zero set; RISC-V targets without explicit extensions get the
// default general-purpose profile.
func (t Target) Ext() RiscVExtensions {
	if !t.IsRiscV() {
		return RiscVExtensions{}
	}
	if t.Extensions == nil {
		return DefaultExtensions()
	}
	return *t.Extensions
}

// Triple returns the target triple string. Bare-metal RISC-V triples keep
// the trailing dash of the empty environment component.
func (t Target) Triple() string {
	if t.Arch == Wasm32 {
		return "wasm32-unknown-unknown"
	}
	return fmt.Sprintf("%s-unknown-%s-%s", t.Arch, t.OS, t.Env)
}

// DataLayout returns the data-layout string for the architecture.
func (t Target) DataLayout() string {
	switch t.Arch {
	case RiscV64:
		return "e-m:e-p:64:64-i64:64-i128:128-n64-S128"
	case RiscV32:
		return "e-m:e-p:32:32-i64:64-n32-S128"
	case X8664:
		return "e-m:e-p270:32:32-p271:32:32-p272:64:64-i64:64-f80:128-n8:16:32:64-S128"
	case Wasm32:
		return "e-m:e-p:32:32-p10:8:8-p20:8:8-i64:64-n32:64-S128"
	default:
		return ""
	}
}
