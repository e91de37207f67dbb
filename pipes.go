// Package srcbundle concatenates a project's manifest and its source files
// into a single text file, the kind of job usually done by a few lines of
// shell:
//
//	b := srcbundle.New(".")
//	if _, err := b.Write(); err != nil {
//		log.Fatal(err)
//	}
//
// The bundle is built from a small pipe library. A Pipe carries a reader and
// a sticky error: once any stage fails, every later stage is a no-op and the
// final sink reports that first error.
//
//	lines, err := srcbundle.File("Cargo.toml").Prefix("// ").String()
package srcbundle

import (
	"io"
	"os"
)

// Pipe represents a pipe object with an associated ReadAutoCloser.
type Pipe struct {
	Reader *ReadAutoCloser
	err    error
	stdout io.Writer
}

// NewPipe returns a pointer to a new empty pipe.
func NewPipe() *Pipe {
	return &Pipe{
		Reader: NewReadAutoCloser(nil),
		stdout: os.Stdout,
	}
}

// Close closes the pipe's associated reader. It is always safe to call, even
// on a pipe whose reader has already been drained and closed.
func (p *Pipe) Close() error {
	if p == nil {
		return nil
	}
	return p.Reader.Close()
}

// Error returns the first error returned by any pipe operation, or nil.
func (p *Pipe) Error() error {
	if p == nil {
		return nil
	}
	return p.err
}

// Read reads up to len(b) bytes from the pipe into b. At end of input, or on
// a nil pipe, Read returns 0, io.EOF. A pipe with error status returns that
// error.
func (p *Pipe) Read(b []byte) (int, error) {
	if p == nil {
		return 0, io.EOF
	}
	if p.err != nil {
		return 0, p.err
	}
	return p.Reader.Read(b)
}

// SetError sets the pipe's error status. Setting a non-nil error also closes
// the pipe's reader.
func (p *Pipe) SetError(err error) {
	if p == nil {
		return
	}
	if err != nil {
		p.Close()
	}
	p.err = err
}

// WithReader associates the pipe with r. The reader is closed automatically,
// if closable, once it has been completely read.
func (p *Pipe) WithReader(r io.Reader) *Pipe {
	if p == nil {
		return nil
	}
	p.Reader = NewReadAutoCloser(r)
	return p
}

// WithStdout sets the writer used by Stdout, instead of the default
// os.Stdout.
func (p *Pipe) WithStdout(w io.Writer) *Pipe {
	if p == nil {
		return nil
	}
	p.stdout = w
	return p
}

// WithError sets the pipe's error status and returns the pipe.
func (p *Pipe) WithError(err error) *Pipe {
	p.SetError(err)
	return p
}
