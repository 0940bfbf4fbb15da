package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into output, discovery, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Returned by [ParseArgs] when the user asked for help or the version.
var (
	ErrHelp    = errors.New("help requested")
	ErrVersion = errors.New("version requested")
)

// ParseFlags layers the config file, environment, and os.Args onto cfg.
// On --help or --version it prints and exits. On error it returns non-nil
// (e.g. unknown flag, unreadable config file).
func ParseFlags(cfg *Config, version string) error {
	err := ParseArgs(cfg, os.Args[1:])
	switch {
	case errors.Is(err, ErrHelp):
		printUsage(os.Stderr, version)
		os.Exit(0)
	case errors.Is(err, ErrVersion):
		fmt.Fprintln(os.Stdout, "brdecode v"+version)
		os.Exit(0)
	}
	return err
}

// ParseArgs is [ParseFlags] without the process side effects. Precedence,
// lowest to highest: cfg as passed in, config file, BRDECODE_* environment,
// command-line flags. Positional arguments become cfg.Inputs; flags and
// positionals may be interleaved.
func ParseArgs(cfg *Config, args []string) error {
	if path, explicit := configFileArg(args); path != "" {
		if err := LoadFile(cfg, path, explicit); err != nil {
			return err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return err
	}

	fs := flag.NewFlagSet("brdecode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults hold unless the user passes the flag.
	var negated negatedFlags

	defineOutputFlags(fs, cfg)
	defineDiscoveryFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		return ErrHelp
	}
	if negated.showVersion {
		return ErrVersion
	}

	if len(positional) > 0 {
		cfg.Inputs = positional
	}
	if cfg.OutputDir != "" {
		cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	}
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either override a mode (forceColor, noColor) or stop parsing (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
	configPath  string // consumed by configFileArg; registered so Parse accepts it
}

// defineOutputFlags registers -o/--output, -s/--suffix, -f/--overwrite, --report.
func defineOutputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --output")
	fs.StringVar(&cfg.Suffix, "suffix", cfg.Suffix, "Suffix inserted before the output extension")
	fs.StringVar(&cfg.Suffix, "s", cfg.Suffix, "Same as --suffix")
	fs.BoolVar(&cfg.Overwrite, "overwrite", cfg.Overwrite, "Overwrite existing output files")
	fs.BoolVar(&cfg.Overwrite, "f", cfg.Overwrite, "Same as --overwrite")
	fs.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "Write a JSON or YAML run report")
}

// defineDiscoveryFlags registers --ext and -r/--recursive.
func defineDiscoveryFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&listValue{p: &cfg.Extensions}, "ext", "Comma-separated extensions matched in directories")
	fs.BoolVar(&cfg.Recursive, "recursive", cfg.Recursive, "Walk directory inputs recursively")
	fs.BoolVar(&cfg.Recursive, "r", cfg.Recursive, "Same as --recursive")
}

// defineBehaviorFlags registers dry-run, jobs, check, and interactive.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Decode and validate only; write nothing")
	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "Same as --dry-run")
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Files processed concurrently")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "Same as --jobs")
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "Inspect inputs and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", cfg.CheckOnly, "Same as --check")
	fs.BoolVar(&cfg.Interactive, "interactive", cfg.Interactive, "Interactive inspect/decode shell")
	fs.BoolVar(&cfg.Interactive, "i", cfg.Interactive, "Same as --interactive")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.StringVar(&n.configPath, "config", "", "YAML config file")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// configFileArg finds the --config value ahead of the main parse so the
// file can be applied underneath the flags. Without --config, the default
// file is used if present (explicit=false tolerates it missing).
func configFileArg(args []string) (path string, explicit bool) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return DefaultConfigFile, false
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "brdecode v" + version + " - BRD board file decoder"},
		{"", ""},
		{"  brdecode [OPTIONS] <file|dir|pattern>...", ""},
		{"", ""},
		{"Output", ""},
		{"  -o, --output <dir>", "Output directory (default: beside input)"},
		{"  -s, --suffix <text>", "Output name suffix (default: " + DefaultSuffix + ")"},
		{"  -f, --overwrite", "Overwrite existing output files"},
		{"  --report <path>", "Write run report (.json, .yaml or .yml)"},
		{"", ""},
		{"Discovery", ""},
		{"  --ext <list>", "Extensions matched in directories (default: .brd)"},
		{"  -r, --recursive", "Walk directory inputs recursively"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Decode and validate only; write nothing"},
		{"  -j, --jobs <n>", "Files processed concurrently (default: 1)"},
		{"  -c, --check", "Inspect inputs (signature, sections) and exit"},
		{"  -i, --interactive", "Interactive inspect/decode shell"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file (default: ./" + DefaultConfigFile + ")"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// listValue adapts a comma-separated flag to a []string. The first Set
// replaces the default; later ones append.
type listValue struct {
	p   *[]string
	set bool
}

func (l *listValue) String() string {
	if l.p == nil {
		return ""
	}
	return strings.Join(*l.p, ",")
}

func (l *listValue) Set(s string) error {
	if !l.set {
		*l.p = nil
		l.set = true
	}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l.p = append(*l.p, part)
		}
	}
	return nil
}
