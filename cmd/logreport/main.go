package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/logreport/internal/cli"
	"github.com/vburojevic/logreport/internal/config"
)

const description = `Summarize web-server access logs as Markdown, AsciiDoc, text or JSON.

Examples:
  logreport access.log
  logreport 'logs/**/*.log' 2024-01-24T00:00:00+01:00 - adoc
  logreport https://example.com/access.log - - json --top 5`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var c cli.CLI

	exited := false
	exitCode := cli.ExitOK
	parser, err := kong.New(&c,
		kong.Name("logreport"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error [%s]: %v\n", cli.CodeInternal, err)
		return cli.ExitFailure
	}

	ctx, err := parser.Parse(args)
	if exited {
		// --help and friends
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error [%s]: %v\n", cli.CodeInvalidArgument, err)
		fmt.Fprintln(stderr, "Hint: Run `logreport --help` for usage")
		return cli.ExitUsage
	}

	cfg, err := loadConfig(c.ConfigFile, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error [%s]: config: %v\n", cli.CodeInvalidArgument, err)
		return cli.ExitUsage
	}

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg, stdout, stderr)
	defer func() { _ = globals.Logger.Sync() }()
	// Record which flags were explicitly provided so commands can distinguish
	// CLI overrides from config defaults.
	for _, p := range ctx.Path {
		if p.Flag != nil {
			globals.FlagsSet[p.Flag.Name] = true
		}
	}
	if globals.ConfigFile == "" {
		globals.ConfigFile = config.ConfigFile()
	}

	return cli.ExitCode(ctx.Run(globals))
}

// loadConfig reads an explicit --config file, or searches the standard
// locations. A broken file found by the search falls back to defaults.
func loadConfig(path string, stderr io.Writer) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
			cfg = config.Default()
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(errors.New("invalid configuration"), err)
	}
	return cfg, nil
}
