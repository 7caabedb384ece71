package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/codeyousef/SeenLang-sub001/internal/config"
	"github.com/codeyousef/SeenLang-sub001/internal/ir"
	"github.com/codeyousef/SeenLang-sub001/internal/pipeline"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to backend.toml")
	reactive := flag.String("reactive", "", "Comma-separated reactive operators to lower (map,filter,reduce,scan,zip,merge)")
	selftest := flag.Bool("selftest", false, "Lower a built-in demo module")
	verbose := flag.Bool("verbose", false, "Enable phase logging")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Parse()

	if *showVersion {
		fmt.Printf("seenc backend version %s\n", version)
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *verbose {
		cfg.Verbose = true
	}

	switch {
	case *reactive != "":
		kernels, err := pipeline.RunReactive(cfg, strings.Split(*reactive, ","))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for op, text := range kernels {
			path := fmt.Sprintf("reactive_%s.ll", op)
			if err := os.WriteFile(path, []byte(text), 0644); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	case *selftest:
		result, err := pipeline.Run(cfg, demoModule())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := os.WriteFile(cfg.OutputPath, []byte(result.Output), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "Usage: seenc-backend [options]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}
}

// demoModule builds a small module exercising arithmetic, folding
// candidates and a call, used by -selftest.
func demoModule() *ir.Module {
	helper := &ir.Function{
		Name:   "helper",
		Params: []ir.Param{{Name: "a", Type: ir.I32}, {Name: "b", Type: ir.I32}},
		Return: ir.I32,
		Blocks: []*ir.BasicBlock{{
			Label: "entry",
			Instructions: []ir.Instruction{
				&ir.Binary{Op: ir.Add, Left: ir.Variable{Name: "a"}, Right: ir.Variable{Name: "b"}, Dest: ir.Register{N: 1}, Type: ir.I32},
				&ir.Return{Value: ir.Register{N: 1}, Type: ir.I32},
			},
		}},
	}

	main := &ir.Function{
		Name:   "main",
		Return: ir.I32,
		Blocks: []*ir.BasicBlock{{
			Label: "entry",
			Instructions: []ir.Instruction{
				&ir.Binary{Op: ir.Add, Left: ir.Integer{V: 5}, Right: ir.Integer{V: 3}, Dest: ir.Register{N: 1}, Type: ir.I32},
				&ir.Binary{Op: ir.Mul, Left: ir.Register{N: 1}, Right: ir.Integer{V: 8}, Dest: ir.Register{N: 2}, Type: ir.I32},
				&ir.Call{Callee: "helper", Args: []ir.Value{ir.Integer{V: 10}, ir.Integer{V: 20}}, Dest: ir.Register{N: 3}, Type: ir.I32},
				&ir.Return{Value: ir.Register{N: 3}, Type: ir.I32},
			},
		}},
	}

	return &ir.Module{Name: "selftest", Functions: []*ir.Function{helper, main}}
}
