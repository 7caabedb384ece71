// Package config loads backend configuration from a TOML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/xyproto/env/v2"

	"github.com/codeyousef/SeenLang-sub001/internal/target"
)

// Config is the resolved backend configuration.
type Config struct {
	Arch       string
	OS         string
	Extensions string // ISA string ("rv64imafdc") or extension letters ("mafdc")
	OptLevel   int
	OutputPath string
	Verbose    bool
}

type fileConfig struct {
	Target struct {
		Arch       string `toml:"arch"`
		OS         string `toml:"os"`
		Extensions string `toml:"extensions"`
	} `toml:"target"`
	Optimize struct {
		Level int `toml:"level"`
	} `toml:"optimize"`
	Output struct {
		Path string `toml:"path"`
	} `toml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{
		Arch:       "riscv64",
		OS:         "linux",
		OptLevel:   2,
		OutputPath: "out.ll",
	}
	return applyEnv(cfg)
}

// Load reads a TOML configuration file and applies environment overrides
// on top of it.
func Load(path string) (Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	var fc fileConfig
	if err := tree.Unmarshal(&fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := Default()
	if fc.Target.Arch != "" {
		cfg.Arch = fc.Target.Arch
	}
	if fc.Target.OS != "" {
		cfg.OS = fc.Target.OS
	}
	if fc.Target.Extensions != "" {
		cfg.Extensions = fc.Target.Extensions
	}
	if fc.Optimize.Level != 0 {
		cfg.OptLevel = fc.Optimize.Level
	}
	if fc.Output.Path != "" {
		cfg.OutputPath = fc.Output.Path
	}
	return applyEnv(cfg), nil
}

// applyEnv layers SEEN_* environment variables over the configuration.
func applyEnv(cfg Config) Config {
	cfg.Arch = env.Str("SEEN_TARGET", cfg.Arch)
	cfg.OS = env.Str("SEEN_TARGET_OS", cfg.OS)
	cfg.Extensions = env.Str("SEEN_RISCV_EXT", cfg.Extensions)
	cfg.OptLevel = env.Int("SEEN_OPT_LEVEL", cfg.OptLevel)
	cfg.OutputPath = env.Str("SEEN_OUTPUT", cfg.OutputPath)
	cfg.Verbose = env.Bool("SEEN_VERBOSE")
	return cfg
}

// ResolveTarget converts the textual configuration into a target value.
// The pseudo-architecture "host" probes the running machine; configured
// extensions still override the probed ones.
func (c Config) ResolveTarget() (target.Target, error) {
	var arch target.Architecture
	switch strings.ToLower(c.Arch) {
	case "host":
		t := target.DetectHost()
		if c.Extensions != "" {
			ext, err := parseExtensions(c.Extensions, t)
			if err != nil {
				return target.Target{}, err
			}
			t.Extensions = &ext
		}
		return t, nil
	case "x86_64", "amd64":
		arch = target.X8664
	case "riscv32":
		arch = target.RiscV32
	case "riscv64":
		arch = target.RiscV64
	case "wasm32":
		arch = target.Wasm32
	default:
		return target.Target{}, &target.ConfigError{Message: fmt.Sprintf("unknown architecture: %q", c.Arch)}
	}

	t := target.Linux(arch)
	if c.OS == "none" {
		t = target.BareMetal(arch)
	}

	if c.Extensions != "" {
		ext, err := parseExtensions(c.Extensions, t)
		if err != nil {
			return target.Target{}, err
		}
		t.Extensions = &ext
	}
	return t, nil
}

// parseExtensions accepts either a full ISA string ("rv64imafdc") or bare
// extension letters ("mafdc").
func parseExtensions(s string, t target.Target) (target.RiscVExtensions, error) {
	if !t.IsRiscV() {
		return target.RiscVExtensions{}, &target.ConfigError{
			Message: fmt.Sprintf("extensions configured for non-RISC-V architecture %s", t.Arch),
		}
	}
	if strings.HasPrefix(strings.ToLower(s), "rv") {
		xlen, ext, err := target.ParseISA(s)
		if err != nil {
			return target.RiscVExtensions{}, err
		}
		if xlen != t.XLen() {
			return target.RiscVExtensions{}, &target.ConfigError{
				Message: fmt.Sprintf("ISA string %q does not match %s", s, t.Arch),
			}
		}
		return ext, nil
	}

	var ext target.RiscVExtensions
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'i':
			// implicit
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
			return target.RiscVExtensions{}, &target.ConfigError{
				Message: fmt.Sprintf("unknown extension letter %q", string(c)),
			}
		}
	}
	if err := ext.Validate(); err != nil {
		return target.RiscVExtensions{}, err
	}
	return ext, nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
