package srcbundle

import (
	"io"
	"os"
	"strings"
)

// Cat returns a pipe which reads each of the supplied pipes in turn. If any
// of them has error status, Cat closes them all and returns a pipe with the
// first such error.
func Cat(pipes ...*Pipe) *Pipe {
	for _, p := range pipes {
		if err := p.Error(); err != nil {
			for _, q := range pipes {
				q.Close()
			}
			return NewPipe().WithError(err)
		}
	}
	readers := make([]io.Reader, len(pipes))
	for i, p := range pipes {
		readers[i] = p
	}
	return NewPipe().WithReader(&catReader{
		Reader: io.MultiReader(readers...),
		pipes:  pipes,
	})
}

// catReader closes every pipe it was built from, read or not.
type catReader struct {
	io.Reader
	pipes []*Pipe
}

func (c *catReader) Close() error {
	var first error
	for _, p := range c.pipes {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Echo returns a pipe containing the supplied string.
func Echo(s string) *Pipe {
	return NewPipe().WithReader(strings.NewReader(s))
}

// File returns a pipe associated with the named file. If the file cannot be
// opened, the pipe's error status is set to a *ReadError.
func File(name string) *Pipe {
	p := NewPipe()
	f, err := os.Open(name)
	if err != nil {
		return p.WithError(&ReadError{Path: name, Err: err})
	}
	return p.WithReader(&lazyFile{name: name, path: name, f: f})
}

// Glob returns a pipe containing the paths of all regular files under dir
// that match the shell pattern, one per line. Paths are relative to dir,
// slash-separated, and sorted. In the pattern, "*", "?" and "[...]" never
// match a slash, and a "**" path element matches zero or more directories.
// A pattern that matches nothing yields an empty pipe, not an error.
func Glob(dir, pattern string) *Pipe {
	paths, err := glob(dir, pattern)
	if err != nil {
		return NewPipe().WithError(err)
	}
	return Slice(paths)
}

// Slice returns a pipe containing each element of s as a line. An empty
// slice gives an empty pipe.
func Slice(s []string) *Pipe {
	if len(s) == 0 {
		return NewPipe()
	}
	return Echo(strings.Join(s, "\n") + "\n")
}
