// Package optimizer applies semantics-preserving passes to IR modules,
// selected by optimization level O0 through O3.
package optimizer

import "github.com/codeyousef/SeenLang-sub001/internal/ir"

// Stats records what a single Optimize invocation changed.
type Stats struct {
	InstructionsEliminated   int
	ConstantFoldingOps       int
	RedundantMovesEliminated int
	PassesRun                []string
}

// Optimize mutates every function of the module in place and returns pass
// statistics. It never fails: passes are conservative and leave
// unrecognized patterns untouched. Levels above 3 clamp to 3; level 0
// and below run nothing.
func Optimize(m *ir.Module, level int) Stats {
	if level > 3 {
		level = 3
	}

	var stats Stats
	if m == nil || level <= 0 {
		return stats
	}

	type pass struct {
		name string
		run  func(*ir.Function, *Stats)
	}

	passes := []pass{
		{"constant_folding", constantFolding},
		{"redundant_move_elimination", redundantMoveElimination},
		{"nop_elimination", nopElimination},
	}
	if level >= 2 {
		passes = append(passes,
			pass{"dead_code_elimination", deadCodeElimination},
			pass{"strength_reduction", strengthReduction},
		)
	}
	if level >= 3 {
		passes = append(passes,
			pass{"common_subexpression_elimination", commonSubexpressionElimination},
			pass{"loop_optimization", loopOptimization},
		)
	}

	for _, p := range passes {
		for _, fn := range m.Functions {
			p.run(fn, &stats)
		}
		stats.PassesRun = append(stats.PassesRun, p.name)
	}

	return stats
}
