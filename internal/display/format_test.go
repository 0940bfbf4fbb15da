package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"typical board 3.2 MiB", 3355443, "3.2 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, whole int
		want        string
	}{
		{"none", 0, 3, "0.0%"},
		{"two of three", 2, 3, "66.7%"},
		{"all", 4, 4, "100.0%"},
		{"empty batch", 0, 0, "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPercent(tt.part, tt.whole); got != tt.want {
				t.Errorf("FormatPercent(%d, %d) = %q, want %q", tt.part, tt.whole, got, tt.want)
			}
		})
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(0.9876); got != "98.8%" {
		t.Errorf("FormatRatio = %q", got)
	}
}

func TestFormatList(t *testing.T) {
	if got := FormatList(nil); got != "None" {
		t.Errorf("FormatList(nil) = %q", got)
	}
	if got := FormatList([]string{"Format:", "Parts:"}); got != "Format:, Parts:" {
		t.Errorf("FormatList = %q", got)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	if !strings.Contains(buf.String(), "|_.__/") {
		t.Errorf("banner missing art: %q", buf.String())
	}
}
