package srcbundle

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Bytes returns the contents of the pipe as a []byte, or an error.
func (p *Pipe) Bytes() ([]byte, error) {
	if p.Error() != nil {
		return nil, p.Error()
	}
	defer p.Close()
	res, err := io.ReadAll(p)
	if err != nil {
		p.SetError(err)
		return nil, err
	}
	return res, nil
}

// CountLines returns the number of lines of input, or an error.
func (p *Pipe) CountLines() (int, error) {
	var lines int
	p.EachLine(func(string, *strings.Builder) {
		lines++
	})
	return lines, p.Error()
}

// Stdout copies the contents of the pipe to its standard output, os.Stdout
// unless set by WithStdout. It returns the number of bytes written, or an
// error.
func (p *Pipe) Stdout() (int64, error) {
	if p == nil {
		return 0, nil
	}
	if p.Error() != nil {
		return 0, p.Error()
	}
	defer p.Close()
	w := p.stdout
	if w == nil {
		w = os.Stdout
	}
	n, err := io.Copy(w, p)
	if err != nil {
		p.SetError(err)
		return n, err
	}
	return n, nil
}

// String returns the contents of the pipe as a string, or an error.
func (p *Pipe) String() (string, error) {
	data, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes the contents of the pipe to the named file, replacing any
// previous content, and returns the number of bytes written. The data goes to
// a temporary file in the same directory which is renamed over name only
// once everything has been written and synced, so readers never see a
// partial file. On failure the temporary file is removed and any existing
// file is left as it was. Read failures are returned unchanged; anything
// else is wrapped in a *WriteError.
func (p *Pipe) WriteFile(name string) (int64, error) {
	if p.Error() != nil {
		return 0, p.Error()
	}
	defer p.Close()
	n, err := writeFileAtomic(name, p)
	if err != nil {
		var re *ReadError
		if !errors.As(err, &re) {
			err = &WriteError{Path: name, Err: err}
		}
		p.SetError(err)
		return 0, err
	}
	return n, nil
}

func writeFileAtomic(name string, r io.Reader) (int64, error) {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()
	n, err := io.Copy(tmp, r)
	if err != nil {
		return 0, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmpName, name); err != nil {
		return 0, err
	}
	committed = true
	return n, nil
}
