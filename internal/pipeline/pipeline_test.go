package pipeline

import (
	"strings"
	"testing"

	"github.com/codeyousef/SeenLang-sub001/internal/config"
	"github.com/codeyousef/SeenLang-sub001/internal/ir"
)

func demoModule() *ir.Module {
	return &ir.Module{
		Name: "demo",
		Functions: []*ir.Function{{
			Name:   "main",
			Return: ir.I32,
			Blocks: []*ir.BasicBlock{{
				Label: "entry",
				Instructions: []ir.Instruction{
					&ir.Binary{Op: ir.Add, Left: ir.Integer{V: 5}, Right: ir.Integer{V: 3}, Dest: ir.Register{N: 1}, Type: ir.I32},
					&ir.Binary{Op: ir.Mul, Left: ir.Register{N: 1}, Right: ir.Integer{V: 8}, Dest: ir.Register{N: 2}, Type: ir.I32},
					&ir.Return{Value: ir.Register{N: 2}, Type: ir.I32},
				},
			}},
		}},
	}
}

func TestRunOptimizesAndLowers(t *testing.T) {
	cfg := config.Config{Arch: "riscv64", OptLevel: 2}

	result, err := Run(cfg, demoModule())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Stats.ConstantFoldingOps != 1 {
		t.Errorf("ConstantFoldingOps = %d, want 1", result.Stats.ConstantFoldingOps)
	}
	for _, want := range []string{
		"; Module: demo",
		`target triple = "riscv64-unknown-linux-gnu"`,
		"define i32 @main() {",
		// 5+3 folds to 8, the multiply by 8 reduces to a shift.
		"%1 = add i32 0, 8",
		"%2 = shl i32 %1, 3",
		"ret i32 %2",
	} {
		if !strings.Contains(result.Output, want) {
			t.Errorf("output missing %q\n%s", want, result.Output)
		}
	}
}

func TestRunAtO0LeavesModuleAlone(t *testing.T) {
	cfg := config.Config{Arch: "x86_64", OptLevel: 0}

	result, err := Run(cfg, demoModule())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Stats.PassesRun) != 0 {
		t.Errorf("passes run at O0: %v", result.Stats.PassesRun)
	}
	if !strings.Contains(result.Output, "%1 = add i32 5, 3") {
		t.Error("unoptimized add missing from O0 output")
	}
}

func TestRunInvalidTarget(t *testing.T) {
	cfg := config.Config{Arch: "sparc", OptLevel: 2}

	if _, err := Run(cfg, demoModule()); err == nil {
		t.Fatal("expected config error")
	}
}

func TestRunReactive(t *testing.T) {
	cfg := config.Config{Arch: "riscv64", Extensions: "mafdcv"}

	kernels, err := RunReactive(cfg, []string{"map", "reduce"})
	if err != nil {
		t.Fatalf("RunReactive() error: %v", err)
	}
	if len(kernels) != 2 {
		t.Fatalf("got %d kernels, want 2", len(kernels))
	}
	if !strings.Contains(kernels["map"], "@vector_map_i32") {
		t.Error("map kernel missing")
	}
	if !strings.Contains(kernels["reduce"], "@vector_reduce_sum_i32") {
		t.Error("reduce kernel missing")
	}
}

func TestRunReactiveWithoutVector(t *testing.T) {
	cfg := config.Config{Arch: "riscv64", Extensions: "mafdc"}

	if _, err := RunReactive(cfg, []string{"map"}); err == nil {
		t.Fatal("expected capability error")
	}
}
