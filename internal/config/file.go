package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is loaded from the working directory when --config is
// not given and the file exists.
const DefaultConfigFile = "brdecode.yml"

// fileConfig mirrors Config with pointer fields so that keys absent from
// the file leave the current value alone.
type fileConfig struct {
	Inputs     []string `yaml:"inputs"`
	OutputDir  *string  `yaml:"output_dir"`
	Suffix     *string  `yaml:"suffix"`
	Extensions []string `yaml:"extensions"`
	Recursive  *bool    `yaml:"recursive"`
	Overwrite  *bool    `yaml:"overwrite"`
	DryRun     *bool    `yaml:"dry_run"`
	Jobs       *int     `yaml:"jobs"`
	ReportPath *string  `yaml:"report"`
	Verbose    *bool    `yaml:"verbose"`
	Color      *string  `yaml:"color"`
	LogFile    *string  `yaml:"log_file"`
}

// LoadFile applies the YAML file at path to cfg. When explicit is false a
// missing file is not an error.
func LoadFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ConfigFile = path
	return nil
}

func applyFileConfig(cfg *Config, data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if len(fc.Inputs) > 0 {
		cfg.Inputs = fc.Inputs
	}
	if fc.OutputDir != nil {
		cfg.OutputDir = strings.TrimSpace(*fc.OutputDir)
	}
	if fc.Suffix != nil {
		cfg.Suffix = strings.TrimSpace(*fc.Suffix)
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = fc.Extensions
	}
	if fc.Recursive != nil {
		cfg.Recursive = *fc.Recursive
	}
	if fc.Overwrite != nil {
		cfg.Overwrite = *fc.Overwrite
	}
	if fc.DryRun != nil {
		cfg.DryRun = *fc.DryRun
	}
	if fc.Jobs != nil {
		cfg.Jobs = *fc.Jobs
	}
	if fc.ReportPath != nil {
		cfg.ReportPath = strings.TrimSpace(*fc.ReportPath)
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Color != nil {
		cfg.ColorMode = ColorMode(strings.ToLower(strings.TrimSpace(*fc.Color)))
	}
	if fc.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*fc.LogFile)
	}
	return nil
}

// ApplyEnv applies BRDECODE_* environment overrides. Malformed numeric or
// boolean values are reported rather than silently ignored.
func ApplyEnv(cfg *Config) error {
	if val := strings.TrimSpace(os.Getenv("BRDECODE_OUTPUT")); val != "" {
		cfg.OutputDir = val
	}
	if val, ok := os.LookupEnv("BRDECODE_SUFFIX"); ok {
		cfg.Suffix = strings.TrimSpace(val)
	}
	if val := strings.TrimSpace(os.Getenv("BRDECODE_EXT")); val != "" {
		cfg.Extensions = strings.Split(val, ",")
	}
	if val := strings.TrimSpace(os.Getenv("BRDECODE_LOG")); val != "" {
		cfg.LogFile = val
	}
	if val := strings.TrimSpace(os.Getenv("BRDECODE_COLOR")); val != "" {
		cfg.ColorMode = ColorMode(strings.ToLower(val))
	}
	if val := strings.TrimSpace(os.Getenv("BRDECODE_JOBS")); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("BRDECODE_JOBS must be a whole number (got %q)", val)
		}
		cfg.Jobs = n
	}
	for name, dst := range map[string]*bool{
		"BRDECODE_OVERWRITE": &cfg.Overwrite,
		"BRDECODE_RECURSIVE": &cfg.Recursive,
		"BRDECODE_VERBOSE":   &cfg.Verbose,
	} {
		val := strings.TrimSpace(os.Getenv(name))
		if val == "" {
			continue
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q)", name, val)
		}
		*dst = b
	}
	return nil
}
