package term

import (
	"testing"

	"github.com/backmassage/brdecode/internal/config"
)

func TestConfigure(t *testing.T) {
	Configure(config.ColorAlways)
	if !Enabled() || Red == "" {
		t.Error("ColorAlways should enable colors")
	}
	Configure(config.ColorNever)
	if Enabled() || Red != "" || NC != "" {
		t.Error("ColorNever should clear colors")
	}
}

func TestIsTerminal_Nil(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true")
	}
}

func TestPaint(t *testing.T) {
	Configure(config.ColorNever)
	if got := Paint(Green, "ok"); got != "ok" {
		t.Errorf("Paint with colors off = %q", got)
	}
	Configure(config.ColorAlways)
	defer Configure(config.ColorNever)
	if got := Paint(Green, "ok"); got != Green+"ok"+NC {
		t.Errorf("Paint with colors on = %q", got)
	}
}
