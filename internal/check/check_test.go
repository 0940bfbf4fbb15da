package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/brdecode/internal/codec"
	"github.com/backmassage/brdecode/internal/config"
	"github.com/backmassage/brdecode/internal/pipeline"
)

// recordLogger captures log lines by level.
type recordLogger struct {
	lines []string
}

func (r *recordLogger) add(level, format string, args ...interface{}) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordLogger) Info(f string, a ...interface{})    { r.add("INFO", f, a...) }
func (r *recordLogger) Success(f string, a ...interface{}) { r.add("SUCCESS", f, a...) }
func (r *recordLogger) Warn(f string, a ...interface{})    { r.add("WARN", f, a...) }
func (r *recordLogger) Error(f string, a ...interface{})   { r.add("ERROR", f, a...) }
func (r *recordLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func (r *recordLogger) contains(sub string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func encodedBoard() []byte {
	plain := append([]byte{}, codec.SignaturePlain[:]...)
	plain = append(plain, "Format: BRD\nParts:\nR1\n"...)
	return codec.Encode(plain)
}

func TestInspect_Encoded(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.brd", encodedBoard())

	r, err := Inspect(path)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Encoded || r.Signature != "23e26328" {
		t.Errorf("report = %+v", r)
	}
	if !r.Verdict.Plausible || !r.Verdict.Has("Format:") {
		t.Errorf("verdict = %+v", r.Verdict)
	}
	if r.Verdict.Lines != 3 {
		t.Errorf("Lines = %d, want 3", r.Verdict.Lines)
	}
}

func TestInspect_PlainAlreadyDecoded(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.brd", []byte("str_Parts:\nNails:\n"))

	r, err := Inspect(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Encoded {
		t.Error("plain file reported encoded")
	}
	if !r.Verdict.Plausible {
		t.Errorf("verdict = %+v, want plausible", r.Verdict)
	}
}

func TestInspect_Short(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.brd", []byte{0x23, 0xE2})
	r, err := Inspect(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Signature != "N/A" || r.Encoded || r.Size != 2 {
		t.Errorf("report = %+v", r)
	}
}

func TestInspect_Missing(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.brd"))
	if !errors.Is(err, pipeline.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.brd", encodedBoard())
	writeFile(t, dir, "b.brd", []byte{0x01, 0x02, 0x03, 0x04})

	cfg := config.DefaultConfig()
	cfg.Inputs = []string{dir}
	log := &recordLogger{}

	if !RunCheck(&cfg, log) {
		t.Fatalf("RunCheck failed: %v", log.lines)
	}
	if !log.contains("Checked 2 files, 1 encoded") {
		t.Errorf("summary missing: %v", log.lines)
	}
	if !log.contains("Not encoded and not recognized as BRD") {
		t.Errorf("plain verdict missing: %v", log.lines)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("check mode wrote files: %v", entries)
	}
}

func TestRunCheck_Missing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Inputs = []string{filepath.Join(t.TempDir(), "gone.brd")}
	log := &recordLogger{}
	if RunCheck(&cfg, log) {
		t.Error("RunCheck = true with a missing input")
	}
}
