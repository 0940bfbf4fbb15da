package validate

import (
	"math"
	"strings"
	"testing"
)

func TestValidate_FormatAndParts(t *testing.T) {
	text := "str_Format: 1\r\nParts: 12\r\nR1 10 20\r\nC1 30 40\r\n"
	v := Validate([]byte(text))

	if !v.Has("Format:") || !v.Has("Parts:") {
		t.Fatalf("keywords = %v, want Format: and Parts:", v.Keywords)
	}
	if v.PrintableRatio <= PlausibleRatio {
		t.Fatalf("ratio = %.3f, want > %.1f", v.PrintableRatio, PlausibleRatio)
	}
	if !v.Plausible {
		t.Error("Plausible = false, want true")
	}
	if v.Lines != 4 {
		t.Errorf("Lines = %d, want 4", v.Lines)
	}
}

func TestValidate_DuplicatesCountOnce(t *testing.T) {
	v := Validate([]byte("Nails:\nNails:\nNails:\n"))
	if len(v.Keywords) != 1 || v.Keywords[0] != "Nails:" {
		t.Errorf("keywords = %v, want [Nails:]", v.Keywords)
	}
}

func TestValidate_Empty(t *testing.T) {
	for _, in := range [][]byte{nil, {}} {
		v := Validate(in)
		if v.PrintableRatio != 0 {
			t.Errorf("ratio = %v, want 0", v.PrintableRatio)
		}
		if len(v.Keywords) != 0 || v.Plausible {
			t.Errorf("verdict = %+v, want zero", v)
		}
	}
}

func TestValidate_KeywordsButMostlyBinary(t *testing.T) {
	buf := []byte("Parts:")
	buf = append(buf, make([]byte, 100)...) // NUL is valid UTF-8 but not printable
	v := Validate(buf)
	if !v.Has("Parts:") {
		t.Fatal("Parts: not found")
	}
	if v.Plausible {
		t.Errorf("Plausible = true with ratio %.3f", v.PrintableRatio)
	}
}

func TestValidate_TextWithoutKeywords(t *testing.T) {
	v := Validate([]byte("just some readable notes\n"))
	if v.Plausible {
		t.Error("Plausible = true without keywords")
	}
	if math.Abs(v.PrintableRatio-1) > 1e-9 {
		t.Errorf("ratio = %v, want 1", v.PrintableRatio)
	}
}

func TestValidate_InvalidBytesDroppedFromView(t *testing.T) {
	buf := []byte{'O', 'U', 'T', 0xFF, 0xFE, 'L', 'I', 'N', 'E', ':'}
	orig := append([]byte{}, buf...)

	v := Validate(buf)
	if !v.Has("OUTLINE:") {
		t.Errorf("keywords = %v, want OUTLINE: once invalid bytes are dropped", v.Keywords)
	}
	if v.PrintableRatio != 1 {
		t.Errorf("ratio = %v, want 1 (invalid bytes excluded from count)", v.PrintableRatio)
	}
	if string(buf) != string(orig) {
		t.Error("input buffer was modified")
	}
}

func TestTextView(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"valid ascii", []byte("NETS:\n"), "NETS:\n"},
		{"valid multibyte", []byte("µΩ"), "µΩ"},
		{"truncated sequence", []byte{'a', 0xC3}, "a"},
		{"lone continuation", []byte{0x80, 'b', 0x80}, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextView(tt.in); got != tt.want {
				t.Errorf("TextView(% x) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_ControlCharactersLowerRatio(t *testing.T) {
	text := "Pins:" + strings.Repeat("\x01", 5)
	v := Validate([]byte(text))
	want := 5.0 / 10.0
	if math.Abs(v.PrintableRatio-want) > 1e-9 {
		t.Errorf("ratio = %v, want %v", v.PrintableRatio, want)
	}
}
