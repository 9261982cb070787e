package cli

import (
	"encoding/json"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/logreport/internal/config"
	"github.com/vburojevic/logreport/internal/logging"
)

// CLI is the root command structure for logreport
type CLI struct {
	// Global flags
	Verbose    bool   `short:"v" help:"Show debug diagnostics on stderr"`
	ConfigFile string `name:"config" type:"path" placeholder:"FILE" help:"Config file (default: search .logreport.yaml, ~/.logreport.yaml, ~/.config/logreport/config.yaml)"`

	// Commands
	Report     ReportCmd     `cmd:"" default:"withargs" help:"Build a report from access-log lines (default command)"`
	Config     ConfigCmd     `cmd:"" help:"Show configuration"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`
	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`
}

// Globals holds shared state for all commands
type Globals struct {
	Verbose    bool
	Stdout     io.Writer
	Stderr     io.Writer
	Config     *config.Config
	ConfigFile string
	Logger     *zap.Logger

	// Flags given explicitly on the command line, by long name
	FlagsSet map[string]bool
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config, stdout, stderr io.Writer) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Verbose:    cli.Verbose || cfg.Verbose,
		Stdout:     stdout,
		Stderr:     stderr,
		Config:     cfg,
		ConfigFile: cli.ConfigFile,
		FlagsSet:   map[string]bool{},
	}
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}
	g.Logger = logging.New(g.Stderr, g.Verbose)
	return g
}

// FlagProvided reports whether a flag was set explicitly
func (g *Globals) FlagProvided(name string) bool {
	return g.FlagsSet[name]
}

// Debug logs a debug message if verbose mode is enabled
func (g *Globals) Debug(msg string, fields ...zap.Field) {
	if g.Logger != nil {
		g.Logger.Debug(msg, fields...)
	}
}

// VersionCmd shows version information
type VersionCmd struct {
	JSON bool `help:"Output as JSON"`
}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if v.JSON {
		return json.NewEncoder(globals.Stdout).Encode(map[string]string{
			"type":    "version",
			"version": Version,
			"commit":  Commit,
		})
	}
	_, err := io.WriteString(globals.Stdout, "logreport version "+Version+" ("+Commit+")\n")
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
