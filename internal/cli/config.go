package cli

import (
	"encoding/json"
	"fmt"

	"github.com/vburojevic/logreport/internal/config"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct {
	JSON bool `help:"Output as JSON"`
}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	path := globals.ConfigFile
	if path == "" {
		path = config.ConfigFile()
	}

	if c.JSON {
		output := map[string]interface{}{
			"type":         "config",
			"format":       cfg.Format,
			"verbose":      cfg.Verbose,
			"strict":       cfg.Strict,
			"top":          cfg.Top,
			"workers":      cfg.Workers,
			"timezone":     cfg.Timezone,
			"http_timeout": cfg.HTTPTimeout.String(),
			"file":         path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	// Text output
	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintln(globals.Stdout, "")
	fmt.Fprintf(globals.Stdout, "  format:       %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  verbose:      %v\n", cfg.Verbose)
	fmt.Fprintf(globals.Stdout, "  strict:       %v\n", cfg.Strict)
	fmt.Fprintf(globals.Stdout, "  top:          %d\n", cfg.Top)
	fmt.Fprintf(globals.Stdout, "  workers:      %d\n", cfg.Workers)
	fmt.Fprintf(globals.Stdout, "  timezone:     %s\n", cfg.Timezone)
	fmt.Fprintf(globals.Stdout, "  http_timeout: %s\n", cfg.HTTPTimeout)

	if path != "" {
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintf(globals.Stdout, "Loaded from: %s\n", path)
	}

	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct {
	JSON bool `help:"Output as JSON"`
}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := globals.ConfigFile
	if path == "" {
		path = config.ConfigFile()
	}

	if c.JSON {
		output := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		encoder := json.NewEncoder(globals.Stdout)
		return encoder.Encode(output)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.logreport.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.logreport.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/logreport/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	_, err := fmt.Fprint(globals.Stdout, sampleConfig)
	return err
}

const sampleConfig = `# logreport configuration file
# Place this file at ./.logreport.yaml, ~/.logreport.yaml or
# ~/.config/logreport/config.yaml. LOGREPORT_<KEY> environment variables
# override these values; command-line flags override both.

# Report format: markdown (default), adoc, text or json
format: markdown

# Show debug diagnostics on stderr
verbose: false

# Fail on the first malformed line instead of skipping it
strict: false

# Entries kept in the resources and response-code tables
top: 3

# Files read concurrently; 0 means one per CPU
workers: 0

# Zone for timestamps written without an offset
timezone: UTC

# Timeout for http(s) sources
http_timeout: 30s
`
