package srcbundle

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
)

// HeaderFunc returns the text Concat writes before the contents of the file
// at path.
type HeaderFunc func(path string) string

// Concat reads a list of file paths from the pipe, one per line, and returns
// a pipe which reads, for each path in turn, header(path) followed by the
// file's contents. Relative paths are resolved against dir; header sees them
// as listed. Files are opened only when reached. Unlike cat, a file that
// cannot be read is an error: reading the returned pipe fails with a
// *ReadError naming it.
func (p *Pipe) Concat(dir string, header HeaderFunc) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	var readers []io.Reader
	var files []*lazyFile
	scanner := bufio.NewScanner(p)
	for scanner.Scan() {
		name := scanner.Text()
		if name == "" {
			continue
		}
		full := filepath.FromSlash(name)
		if !filepath.IsAbs(full) {
			full = filepath.Join(dir, full)
		}
		f := &lazyFile{name: name, path: full}
		files = append(files, f)
		if header != nil {
			readers = append(readers, strings.NewReader(header(name)))
		}
		readers = append(readers, f)
	}
	if err := scanner.Err(); err != nil {
		p.SetError(err)
		return p
	}
	return NewPipe().WithReader(&concatReader{
		Reader: io.MultiReader(readers...),
		files:  files,
	})
}

// concatReader makes sure a file left half read is still closed.
type concatReader struct {
	io.Reader
	files []*lazyFile
}

func (c *concatReader) Close() error {
	for _, f := range c.files {
		f.Close()
	}
	return nil
}

// EachLine calls process for each line of input, passing it the line without
// its terminator and a *strings.Builder to write output to. The returned pipe
// contains what process wrote.
func (p *Pipe) EachLine(process func(string, *strings.Builder)) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	scanner := bufio.NewScanner(p)
	var output strings.Builder
	for scanner.Scan() {
		process(scanner.Text(), &output)
	}
	if err := scanner.Err(); err != nil {
		p.SetError(err)
		return p
	}
	return Echo(output.String())
}

// Prefix returns a pipe in which every line of input starts with prefix.
// Nothing else changes: lines are split on '\n' only, so a '\r' stays part
// of the line, an unterminated last line stays unterminated, and empty
// input gives empty output.
func (p *Pipe) Prefix(prefix string) *Pipe {
	if p == nil || p.Error() != nil {
		return p
	}
	r := bufio.NewReader(p)
	var output strings.Builder
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			output.WriteString(prefix)
			output.WriteString(line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			p.SetError(err)
			return p
		}
	}
	return Echo(output.String())
}
