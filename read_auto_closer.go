package srcbundle

import (
	"io"
	"os"
)

// ReadAutoCloser wraps an io.Reader, and closes it automatically, if
// closable, once it has been completely read or a read has failed.
type ReadAutoCloser struct {
	r      io.Reader
	closed bool
}

// NewReadAutoCloser returns a ReadAutoCloser wrapping r. A nil r reads as
// empty.
func NewReadAutoCloser(r io.Reader) *ReadAutoCloser {
	return &ReadAutoCloser{r: r}
}

// Read reads up to len(b) bytes from the data source into b. On any error,
// including io.EOF, the data source is closed.
func (a *ReadAutoCloser) Read(b []byte) (int, error) {
	if a == nil || a.r == nil || a.closed {
		return 0, io.EOF
	}
	n, err := a.r.Read(b)
	if err != nil {
		a.Close()
	}
	return n, err
}

// Close closes the data source, if it is closable. Closing twice is a no-op.
func (a *ReadAutoCloser) Close() error {
	if a == nil || a.closed {
		return nil
	}
	a.closed = true
	if c, ok := a.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// lazyFile opens the named file on its first Read rather than up front, so
// that a long list of files holds at most one descriptor at a time. Open and
// read failures are reported as *ReadError, naming the path as given by the
// caller.
type lazyFile struct {
	name string // shown in errors
	path string // opened
	f    *os.File
	err  error
}

func (l *lazyFile) Read(b []byte) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	if l.f == nil {
		f, err := os.Open(l.path)
		if err != nil {
			l.err = &ReadError{Path: l.name, Err: err}
			return 0, l.err
		}
		l.f = f
	}
	n, err := l.f.Read(b)
	switch {
	case err == nil:
		return n, nil
	case err == io.EOF:
		l.err = io.EOF
	default:
		l.err = &ReadError{Path: l.name, Err: err}
	}
	l.Close()
	return n, l.err
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
