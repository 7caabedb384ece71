package target

import (
	"fmt"
	"strings"
)

// RiscVExtensions holds the enabled standard extension flags. The base
// integer set I is always present and carries no flag.
type RiscVExtensions struct {
	M bool // integer multiply/divide
	A bool // atomics
	F bool // single-precision float
	D bool // double-precision float
	C bool // compressed encodings
	V bool // vector
}

// DefaultExtensions returns the general-purpose profile used when a
// RISC-V target carries no explicit extension set (RV64GC-style: M, A,
// F, D, C on, V off).
func DefaultExtensions() RiscVExtensions {
	return RiscVExtensions{M: true, A: true, F: true, D: true, C: true}
}

// Validate checks internal consistency of the extension set.
func (e RiscVExtensions) Validate() error {
	if e.D && !e.F {
		return &ConfigError{Message: "D extension requires F extension"}
	}
	return nil
}

// ISAString returns the canonical ISA string for the extension set at the
// given register width, e.g. "rv64imafdc".
func (e RiscVExtensions) ISAString(xlen int) (string, error) {
	if xlen != 32 && xlen != 64 {
		return "", &ConfigError{Message: fmt.Sprintf("unsupported RISC-V register width: %d", xlen)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "rv%di", xlen)
	for _, ext := range []struct {
		letter string
		on     bool
	}{
		{"m", e.M},
		{"a", e.A},
		{"f", e.F},
		{"d", e.D},
		{"c", e.C},
		{"v", e.V},
	} {
		if ext.on {
			b.WriteString(ext.letter)
		}
	}
	return b.String(), nil
}

// CPU returns the processor model for the extension set. Selection
// priority: vector, then double-float, then multiply/divide, then the
// base integer set.
func (e RiscVExtensions) CPU(xlen int) (string, error) {
	if xlen != 32 && xlen != 64 {
		return "", &ConfigError{Message: fmt.Sprintf("unsupported RISC-V register width: %d", xlen)}
	}

	switch {
	case e.V:
		if xlen == 64 {
			return "sifive-x280", nil
		}
		return "generic-rv32", nil
	case e.D:
		return fmt.Sprintf("generic-rv%d", xlen), nil
	case e.M:
		return fmt.Sprintf("rocket-rv%d", xlen), nil
	default:
		return fmt.Sprintf("generic-rv%d", xlen), nil
	}
}

// FeatureString returns the feature-flag string with both polarities for
// every extension, in the fixed order m, a, f, d, c, v. Downstream
// consumers never need a default.
func (e RiscVExtensions) FeatureString() string {
	parts := make([]string, 0, 6)
	for _, ext := range []struct {
		letter string
		on     bool
	}{
		{"m", e.M},
		{"a", e.A},
		{"f", e.F},
		{"d", e.D},
		{"c", e.C},
		{"v", e.V},
	} {
		if ext.on {
			parts = append(parts, "+"+ext.letter)
		} else {
			parts = append(parts, "-"+ext.letter)
		}
	}
	return strings.Join(parts, ",")
}

// ParseISA parses an ISA string such as "rv64imafdc" into a register
// width and extension set. The base set I must be present.
func ParseISA(s string) (int, RiscVExtensions, error) {
	var ext RiscVExtensions

	lower := strings.ToLower(strings.TrimSpace(s))
	var xlen int
	switch {
	case strings.HasPrefix(lower, "rv32"):
		xlen = 32
	case strings.HasPrefix(lower, "rv64"):
		xlen = 64
	default:
		return 0, ext, &ConfigError{Message: fmt.Sprintf("invalid ISA string: %q", s)}
	}

	rest := lower[4:]
	if !strings.HasPrefix(rest, "i") && !strings.HasPrefix(rest, "g") {
		return 0, ext, &ConfigError{Message: fmt.Sprintf("ISA string missing base integer set: %q", s)}
	}

	for _, c := range rest {
		switch c {
		case 'i':
			// base set, implicit
		case 'g':
			// G abbreviates IMAFD
			ext.M, ext.A, ext.F, ext.D = true, true, true, true
		case 'm':
			ext.M = true
		case 'a':
			ext.A = true
		case 'f':
			ext.F = true
		case 'd':
			ext.D = true
		case 'c':
			ext.C = true
		case 'v':
			ext.V = true
		default:
			return 0, ext, &ConfigError{Message: fmt.Sprintf("unknown extension letter %q in %q", string(c), s)}
		}
	}

	if err := ext.Validate(); err != nil {
		return 0, ext, err
	}
	return xlen, ext, nil
}
