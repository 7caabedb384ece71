// Package pipeline sequences the backend phases: target resolution,
// optimization, and lowering.
package pipeline

import (
	"fmt"

	"github.com/codeyousef/SeenLang-sub001/internal/codegen"
	"github.com/codeyousef/SeenLang-sub001/internal/config"
	"github.com/codeyousef/SeenLang-sub001/internal/ir"
	"github.com/codeyousef/SeenLang-sub001/internal/optimizer"
)

// Result carries the lowered document and the optimizer statistics of a
// single pipeline run.
type Result struct {
	Output string
	Stats  optimizer.Stats
}

// Run optimizes the module at the configured level and lowers it for the
// configured target. The module's target field is overwritten from the
// configuration before lowering.
func Run(cfg config.Config, m *ir.Module) (Result, error) {
	log := logger{verbose: cfg.Verbose}

	t, err := cfg.ResolveTarget()
	if err != nil {
		log.fail(err)
		return Result{}, err
	}
	m.Target = t

	log.phase("optimize")
	stats := optimizer.Optimize(m, cfg.OptLevel)
	log.stats(stats)

	log.phase("codegen")
	gen := codegen.New(t)
	out, err := gen.Generate(m)
	if err != nil {
		log.fail(err)
		return Result{}, fmt.Errorf("lower module %s: %w", m.Name, err)
	}

	log.done(m.Name, len(out))
	return Result{Output: out, Stats: stats}, nil
}

// RunReactive lowers the named reactive operators to vectorized kernels
// for the configured target. Kernels are returned keyed by operator.
func RunReactive(cfg config.Config, operators []string) (map[string]string, error) {
	log := logger{verbose: cfg.Verbose}

	t, err := cfg.ResolveTarget()
	if err != nil {
		log.fail(err)
		return nil, err
	}

	gen := codegen.New(t)
	kernels := make(map[string]string, len(operators))
	for _, op := range operators {
		log.phase("reactive " + op)
		text, err := gen.GenerateVectorReactive(op)
		if err != nil {
			log.fail(err)
			return nil, fmt.Errorf("lower reactive %s: %w", op, err)
		}
		kernels[op] = text
	}
	return kernels, nil
}
