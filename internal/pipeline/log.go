package pipeline

import (
	"github.com/pterm/pterm"

	"github.com/codeyousef/SeenLang-sub001/internal/optimizer"
)

// logger wraps the pterm printers used for phase progress. All output is
// advisory; the pipeline's results travel through return values.
type logger struct {
	verbose bool
}

func (l logger) phase(name string) {
	if l.verbose {
		pterm.Info.Printfln("phase: %s", name)
	}
}

func (l logger) stats(s optimizer.Stats) {
	if !l.verbose {
		return
	}
	pterm.Debug.Printfln("passes run: %v", s.PassesRun)
	pterm.Debug.Printfln("instructions eliminated: %d", s.InstructionsEliminated)
	pterm.Debug.Printfln("constants folded: %d", s.ConstantFoldingOps)
	pterm.Debug.Printfln("redundant moves removed: %d", s.RedundantMovesEliminated)
}

func (l logger) done(module string, bytes int) {
	if l.verbose {
		pterm.Success.Printfln("lowered %s (%d bytes)", module, bytes)
	}
}

func (l logger) fail(err error) {
	pterm.Error.Printfln("lowering failed: %v", err)
}
