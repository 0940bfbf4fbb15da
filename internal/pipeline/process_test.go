package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/brdecode/internal/codec"
)

const boardText = "Format: BRD 1\r\nParts:\r\nR1 1 2\r\nC1 3 4\r\nPins:\r\n1 2 3\r\nNails:\r\n"

// encodedBoard returns an encoded file body and its expected decoded form.
func encodedBoard() (enc, plain []byte) {
	plain = append([]byte{}, codec.SignaturePlain[:]...)
	plain = append(plain, boardText...)
	return codec.Encode(plain), plain
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestProcessFile_Decodes(t *testing.T) {
	dir := t.TempDir()
	enc, plain := encodedBoard()
	src := writeFile(t, dir, "main.brd", enc)
	dst := filepath.Join(dir, "main_decoded.brd")

	o := ProcessFile(context.Background(), src, dst, Options{})
	if o.State != StateDecoded || !o.Encoded || !o.Written || o.Err != nil {
		t.Fatalf("outcome = %+v", o)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("output = %q, want %q", got, plain)
	}
	if o.Verdict == nil || !o.Verdict.Plausible || !o.Verdict.Has("Format:") || !o.Verdict.Has("Parts:") {
		t.Errorf("verdict = %+v", o.Verdict)
	}
	if o.Size != int64(len(enc)) {
		t.Errorf("Size = %d, want %d", o.Size, len(enc))
	}
}

func TestProcessFile_CopiesPlain(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0x00, 0x01, 0x02}
	src := writeFile(t, dir, "short.brd", data)
	dst := filepath.Join(dir, "short_decoded.brd")

	o := ProcessFile(context.Background(), src, dst, Options{})
	if o.State != StateCopied || o.Encoded || !o.Written || o.Verdict != nil {
		t.Fatalf("outcome = %+v", o)
	}
	got, _ := os.ReadFile(dst)
	if !bytes.Equal(got, data) {
		t.Errorf("output = % x, want % x", got, data)
	}
}

func TestProcessFile_SkipsExistingWithoutReading(t *testing.T) {
	dir := t.TempDir()
	dst := writeFile(t, dir, "main_decoded.brd", []byte("keep"))
	// The source does not exist; a skip must happen before any read.
	o := ProcessFile(context.Background(), filepath.Join(dir, "main.brd"), dst, Options{})
	if o.State != StateSkipped || o.Err != nil {
		t.Fatalf("outcome = %+v", o)
	}
	if got, _ := os.ReadFile(dst); string(got) != "keep" {
		t.Errorf("existing output modified: %q", got)
	}
}

func TestProcessFile_Overwrite(t *testing.T) {
	dir := t.TempDir()
	enc, plain := encodedBoard()
	src := writeFile(t, dir, "main.brd", enc)
	dst := writeFile(t, dir, "main_decoded.brd", []byte("stale"))

	o := ProcessFile(context.Background(), src, dst, Options{Overwrite: true})
	if o.State != StateDecoded {
		t.Fatalf("State = %v", o.State)
	}
	if got, _ := os.ReadFile(dst); !bytes.Equal(got, plain) {
		t.Errorf("output not replaced: %q", got)
	}
}

func TestProcessFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	o := ProcessFile(context.Background(), filepath.Join(dir, "nope.brd"), filepath.Join(dir, "out.brd"), Options{})
	if o.State != StateErrored || !errors.Is(o.Err, ErrNotFound) {
		t.Errorf("outcome = %+v, want ErrNotFound", o)
	}
}

func TestProcessFile_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	enc, _ := encodedBoard()
	src := writeFile(t, dir, "main.brd", enc)
	dst := filepath.Join(dir, "missing-parent", "main_decoded.brd")

	o := ProcessFile(context.Background(), src, dst, Options{})
	if o.State != StateErrored || !errors.Is(o.Err, ErrIOFailure) {
		t.Fatalf("outcome = %+v, want ErrIOFailure", o)
	}
	if !o.Encoded {
		t.Error("Encoded should still be reported")
	}
	if o.Written {
		t.Error("Written = true after failure")
	}
}

func TestProcessFile_DryRun(t *testing.T) {
	dir := t.TempDir()
	enc, _ := encodedBoard()
	src := writeFile(t, dir, "main.brd", enc)
	dst := filepath.Join(dir, "main_decoded.brd")

	o := ProcessFile(context.Background(), src, dst, Options{DryRun: true})
	if o.State != StateDecoded || o.Written || o.Verdict == nil {
		t.Fatalf("outcome = %+v", o)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("dry run wrote %s", dst)
	}
}

func TestProcessFile_Cancelled(t *testing.T) {
	dir := t.TempDir()
	enc, _ := encodedBoard()
	src := writeFile(t, dir, "main.brd", enc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := ProcessFile(ctx, src, filepath.Join(dir, "out.brd"), Options{})
	if o.State != StateErrored || !errors.Is(o.Err, context.Canceled) {
		t.Errorf("outcome = %+v", o)
	}
}

func TestWriteFileAtomic_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.brd")
	if err := WriteFileAtomic(path, []byte("Parts:\n")); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "out.brd" {
		t.Errorf("dir entries = %v", entries)
	}
}
