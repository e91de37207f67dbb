package srcbundle_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/bitfield/srcbundle"
)

func TestReadAutoCloser(t *testing.T) {
	t.Parallel()
	want, err := os.ReadFile("testdata/demo/Cargo.toml")
	if err != nil {
		t.Fatal(err)
	}
	input, err := os.Open("testdata/demo/Cargo.toml")
	if err != nil {
		t.Fatal(err)
	}
	acr := srcbundle.NewReadAutoCloser(input)
	got, err := io.ReadAll(acr)
	if err != nil {
		t.Error(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("want %q, got %q", want, got)
	}
	// The underlying file is closed, so reading it directly fails.
	if _, err := input.Read(make([]byte, 1)); err == nil {
		t.Error("input not closed after reading")
	}
	if err := acr.Close(); err != nil {
		t.Errorf("want closing twice to be a no-op, got %v", err)
	}
}

func TestReadAutoCloserNilReader(t *testing.T) {
	t.Parallel()
	got, err := io.ReadAll(srcbundle.NewReadAutoCloser(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("want empty read from nil reader, got %q", got)
	}
}
