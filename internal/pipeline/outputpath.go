package pipeline

import (
	"path/filepath"
	"strings"
)

// splitName returns the stem and extension of a base name. A dotfile such
// as ".brd" is all stem.
func splitName(base string) (stem, ext string) {
	ext = filepath.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	if stem == "" {
		return base, ""
	}
	return stem, ext
}

// OutputPath derives where the decoded form of input is written:
// <stem><suffix><ext>, inside outputDir when set, otherwise beside input.
//
//	boards/main.brd, "", "_decoded"    → boards/main_decoded.brd
//	boards/main.brd, "out", "_decoded" → out/main_decoded.brd
func OutputPath(input, outputDir, suffix string) string {
	stem, ext := splitName(filepath.Base(input))
	name := stem + suffix + ext
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// IsOutputName reports whether path already carries suffix at the end of
// its stem, i.e. looks like a previous run's output.
func IsOutputName(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	stem, _ := splitName(filepath.Base(path))
	return strings.HasSuffix(stem, suffix)
}
