// Package validate judges whether a decoded buffer looks like a BRD board
// file. The verdict is advisory: it is reported alongside each decode and
// never decides whether output is written.
package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// PlausibleRatio is the printable-character ratio a decode must exceed
// (together with at least one keyword) to be considered plausible.
const PlausibleRatio = 0.7

// Keywords are the section markers searched for in decoded text, in
// reporting order.
var Keywords = []string{
	"var_data:",
	"Format:",
	"format:",
	"Parts:",
	"Pins:",
	"Pins1:",
	"Pins2:",
	"Nails:",
	"NETS:",
	"OUTLINE:",
	"BRDOUT:",
}

// Verdict is the heuristic assessment of one decoded buffer.
type Verdict struct {
	Keywords       []string `json:"keywords" yaml:"keywords"`
	PrintableRatio float64  `json:"printable_ratio" yaml:"printable_ratio"`
	Lines          int      `json:"lines" yaml:"lines"`
	Plausible      bool     `json:"plausible" yaml:"plausible"`
}

// Has reports whether keyword was found.
func (v Verdict) Has(keyword string) bool {
	for _, k := range v.Keywords {
		if k == keyword {
			return true
		}
	}
	return false
}

// Validate scans decoded for section keywords and computes the printable
// ratio of its text view. It never fails; an empty buffer yields a zero
// ratio and no keywords.
func Validate(decoded []byte) Verdict {
	text := TextView(decoded)

	var v Verdict
	for _, k := range Keywords {
		if strings.Contains(text, k) {
			v.Keywords = append(v.Keywords, k)
		}
	}
	v.PrintableRatio = printableRatio(text)
	v.Lines = strings.Count(text, "\n")
	v.Plausible = len(v.Keywords) > 0 && v.PrintableRatio > PlausibleRatio
	return v
}

// dropIllFormed maps every ill-formed UTF-8 sequence to U+FFFD and then
// removes those runes from the result. A literal U+FFFD in the input is
// dropped as well, which only ever lowers the character count.
var dropIllFormed = transform.Chain(
	runes.ReplaceIllFormed(),
	runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
)

// TextView returns the best-effort UTF-8 interpretation of buf with invalid
// bytes discarded. The view is for analysis only; buf is not modified.
func TextView(buf []byte) string {
	if utf8.Valid(buf) {
		return string(buf)
	}
	// Neither transformer in the chain can fail.
	out, _, _ := transform.Bytes(dropIllFormed, buf)
	return string(out)
}

func printableRatio(text string) float64 {
	var total, printable int
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || r == '\r' || r == '\n' || r == '\t' {
			printable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(printable) / float64(total)
}
