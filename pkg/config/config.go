// Package config holds CLI configuration for the scan pipeline.
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/relgate/relgate/pkg/duration"
	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/tools"
)

// StringSliceFlag implements flag.Value for repeated/comma-separated string flags.
type StringSliceFlag []string

func (s *StringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *StringSliceFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			*s = append(*s, v)
		}
	}
	return nil
}

// Config holds all options for the scan command.
type Config struct {
	// Scan target settings
	Dir   string // Repository directory to scan
	Image string // Container image for trivy (empty = skip trivy)

	// Execution settings
	Concurrency int             // Parallel tool runs
	Timeout     time.Duration   // Per-tool timeout
	Skip        StringSliceFlag // Tool names to skip

	// Output settings
	ReportDir   string // Directory for the date-stamped report
	ReportPath  string // Explicit report path (overrides ReportDir)
	ArtifactDir string // Raw tool output directory (empty = no artifacts)
	PolicyFile  string // Gate policy YAML (empty = fail on any finding)
	NoColor     bool   // Disable colored output
	Verbose     bool   // Verbose output
}

// ParseFlags parses arguments for the scan command.
func ParseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)

	// === TARGET ===
	fs.StringVar(&cfg.Dir, "dir", ".", "Repository directory to scan")
	fs.StringVar(&cfg.Dir, "d", ".", "Repository directory (alias)")
	fs.StringVar(&cfg.Image, "image", "", "Container image to scan with trivy (empty = skip)")

	// === EXECUTION ===
	fs.IntVar(&cfg.Concurrency, "concurrency", len(tools.All()), "Concurrent tool runs")
	fs.IntVar(&cfg.Concurrency, "c", len(tools.All()), "Concurrent tool runs (alias)")
	timeout := fs.Int("timeout", int(duration.ToolDefault/time.Second), "Per-tool timeout in seconds")
	fs.Var(&cfg.Skip, "skip", "Tool name(s) to skip - comma-separated or repeated")

	// === OUTPUT ===
	fs.StringVar(&cfg.ReportDir, "report-dir", ".", "Directory for the date-stamped report")
	fs.StringVar(&cfg.ReportPath, "report", "", "Report file path (overrides -report-dir)")
	fs.StringVar(&cfg.ReportPath, "o", "", "Report file path (alias)")
	fs.StringVar(&cfg.ArtifactDir, "artifacts", "", "Directory for raw tool output (empty = discard)")
	fs.StringVar(&cfg.PolicyFile, "policy", "", "Gate policy YAML file")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.NoColor, "nc", false, "No color (alias)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Timeout = time.Duration(*timeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: scan directory", ErrMissingRequired)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}

	known := make(map[finding.Tool]bool)
	for _, a := range tools.All() {
		known[a.Tool()] = true
	}
	for _, name := range c.Skip {
		if !known[finding.Tool(name)] {
			return fmt.Errorf("%w: unknown tool %q in -skip", ErrInvalidConfig, name)
		}
	}
	return nil
}

// SkipSet returns the skipped tools as a set for adapter selection.
func (c *Config) SkipSet() map[finding.Tool]bool {
	set := make(map[finding.Tool]bool, len(c.Skip))
	for _, name := range c.Skip {
		set[finding.Tool(name)] = true
	}
	return set
}
