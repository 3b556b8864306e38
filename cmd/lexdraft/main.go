package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/lexdraft/internal/config"
	"git.home.luguber.info/inful/lexdraft/internal/daemon"
	"git.home.luguber.info/inful/lexdraft/internal/plugin"
	"git.home.luguber.info/inful/lexdraft/internal/process"
	"git.home.luguber.info/inful/lexdraft/internal/util/sets"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Process struct {
		Input      string   `arg:"" help:"Source document path"`
		Output     string   `short:"o" help:"Output file (default: stdout)"`
		Metadata   string   `short:"m" help:"Write exported metadata as YAML to this file"`
		Transforms []string `short:"t" help:"Transforms to enable" default:"header-numbering,cross-references"`
		Mode       string   `help:"Validation mode: strict, warn, or silent (default: environment-derived)"`
		NoReset    bool     `help:"Keep deeper level counters running across sibling groups"`
	} `cmd:"" help:"Process a drafting document into its resolved form"`

	Validate struct {
		Transforms []string `short:"t" help:"Transforms to enable" default:"header-numbering,cross-references"`
		Mode       string   `help:"Validation mode: strict, warn, or silent"`
	} `cmd:"" help:"Build and validate the transform pipeline without processing a document"`

	Transforms struct{} `cmd:"" help:"List registered transforms"`

	Watch struct {
		Input      string        `arg:"" help:"Source document path"`
		Output     string        `short:"o" required:"" help:"Output file"`
		Metadata   string        `short:"m" help:"Write exported metadata as YAML to this file"`
		Transforms []string      `short:"t" help:"Transforms to enable" default:"header-numbering,cross-references"`
		Debounce   time.Duration `help:"Change debounce window" default:"300ms"`
		NoReset    bool          `help:"Keep deeper level counters running across sibling groups"`
	} `cmd:"" help:"Reprocess the document whenever it changes on disk"`
}

func main() {
	kctx := kong.Parse(&CLI)

	// Best effort; a missing .env file is not an error.
	_ = config.LoadEnvFile()

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	var err error
	switch kctx.Command() {
	case "process <input>":
		err = runProcess()
	case "validate":
		err = runValidate()
	case "transforms":
		err = runTransforms()
	case "watch <input>":
		err = runWatch()
	default:
		err = fmt.Errorf("unknown command: %s", kctx.Command())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runProcess() error {
	opts := config.Options{
		EnabledTransforms: CLI.Process.Transforms,
		ValidationMode:    config.NormalizeValidationMode(CLI.Process.Mode),
		NoReset:           CLI.Process.NoReset,
		Debug:             CLI.Verbose,
	}

	source, err := os.ReadFile(CLI.Process.Input)
	if err != nil {
		return err
	}

	result, err := process.NewProcessor().Run(context.Background(), source, opts)
	if err != nil {
		return err
	}

	return writeResult(result, CLI.Process.Output, CLI.Process.Metadata)
}

func runValidate() error {
	opts := config.Options{
		EnabledTransforms: CLI.Validate.Transforms,
		ValidationMode:    config.NormalizeValidationMode(CLI.Validate.Mode),
	}

	pl, err := process.NewProcessor().BuildPipeline(opts)
	if pl != nil {
		fmt.Printf("Mode: %s\n", pl.Mode)
		fmt.Printf("Order:\n")
		for _, phase := range plugin.Phases() {
			for _, name := range pl.ByPhase[phase] {
				fmt.Printf("  %-22s %s\n", name, phase)
			}
		}
		fmt.Printf("Capabilities: %v\n", sets.SortedStrings(pl.Capabilities))
		for _, w := range pl.Validation.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		for _, e := range pl.Validation.Errors {
			fmt.Printf("Error: %s\n", e)
		}
	}
	return err
}

func runTransforms() error {
	registry := plugin.NewBuiltinRegistry()
	for _, name := range registry.Names() {
		m, _ := registry.Get(name)
		required := ""
		if m.Required {
			required = " (required)"
		}
		fmt.Printf("%-22s %-20s %s%s\n", m.Name, m.Phase, m.Description, required)
		if len(m.Provides) > 0 {
			fmt.Printf("%-22s   provides: %v\n", "", m.Provides)
		}
		if len(m.Requires) > 0 {
			fmt.Printf("%-22s   requires: %v\n", "", m.Requires)
		}
		if len(m.Conflicts) > 0 {
			fmt.Printf("%-22s   conflicts: %v\n", "", m.Conflicts)
		}
	}
	return nil
}

func runWatch() error {
	opts := config.Options{
		EnabledTransforms: CLI.Watch.Transforms,
		NoReset:           CLI.Watch.NoReset,
		Debug:             CLI.Verbose,
	}

	processor := process.NewProcessor()
	reprocess := func(ctx context.Context) error {
		source, err := os.ReadFile(CLI.Watch.Input)
		if err != nil {
			return err
		}
		result, err := processor.Run(ctx, source, opts)
		if err != nil {
			return err
		}
		return writeResult(result, CLI.Watch.Output, CLI.Watch.Metadata)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Process once up front so the output exists before the first change.
	if err := reprocess(ctx); err != nil {
		slog.Error("initial processing failed", "error", err)
	}

	watcher := daemon.NewWatcher(CLI.Watch.Input, CLI.Watch.Debounce, reprocess)
	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func writeResult(result *process.Result, outputPath, metadataPath string) error {
	if outputPath == "" {
		if _, err := os.Stdout.Write(result.Output); err != nil {
			return err
		}
	} else if err := os.WriteFile(outputPath, result.Output, 0o644); err != nil {
		return err
	}

	if metadataPath != "" {
		data, err := yaml.Marshal(result.Exported)
		if err != nil {
			return err
		}
		if err := os.WriteFile(metadataPath, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
