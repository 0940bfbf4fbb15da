// Package config holds runtime configuration: defaults, an optional YAML
// config file, BRDECODE_* environment overrides, CLI flag parsing, and
// validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultSuffix is inserted between the stem and extension of every output.
const DefaultSuffix = "_decoded"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by the config file and environment, and finally mutated by
// [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Inputs are literal paths, directories, or glob patterns (positional args).
	Inputs []string

	// Output placement.
	OutputDir string // Empty: write beside each input.
	Suffix    string // Default: "_decoded".

	// Discovery.
	Extensions []string // Default: [".brd"]. Lowercase, with leading dot.
	Recursive  bool     // Walk directory inputs recursively.

	// Behavior flags.
	Overwrite   bool // Replace existing outputs instead of skipping them.
	DryRun      bool // Decode and validate but write nothing.
	Jobs        int  // Files processed concurrently. Default: 1.
	CheckOnly   bool // Inspect inputs and exit; never writes.
	Interactive bool // Run the line-oriented inspect/decode shell.

	// Reporting.
	ReportPath string // Optional JSON or YAML run report.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// the config file, environment, and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Suffix:     DefaultSuffix,
		Extensions: []string{".brd"},
		Recursive:  false,
		Overwrite:  false,
		DryRun:     false,
		Jobs:       1,
		Verbose:    false,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// NormalizeExtensions lowercases each extension and ensures a leading dot.
// Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// Validate checks enum fields and value ranges, and normalizes extensions.
// Unless running interactively, at least one input is required.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}

	if strings.ContainsAny(c.Suffix, `/\`) {
		return fmt.Errorf("suffix %q must not contain a path separator", c.Suffix)
	}
	if c.Suffix == "" && c.OutputDir == "" {
		return errors.New("an empty suffix requires --output (outputs would replace inputs)")
	}

	c.Extensions = NormalizeExtensions(c.Extensions)
	if len(c.Extensions) == 0 {
		return errors.New("at least one file extension is required")
	}

	if c.Interactive {
		return nil
	}
	if len(c.Inputs) == 0 {
		return errors.New("need at least one input file, directory, or pattern")
	}
	return nil
}

// ValidatePaths rejects an empty suffix when the resolved output directory
// equals the resolved directory of an input, since the output would then
// replace the input file. Arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputDirAbs, outputAbs string) error {
	if c.Suffix != "" {
		return nil
	}
	if filepath.Clean(inputDirAbs) == filepath.Clean(outputAbs) {
		return errors.New("output directory equals input directory and suffix is empty")
	}
	return nil
}
