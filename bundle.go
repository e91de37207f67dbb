package srcbundle

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Defaults for a Rust crate: the manifest and every .rs file under src,
// bundled into bundle.rs with // comments.
const (
	DefaultManifest = "Cargo.toml"
	DefaultPattern  = "src/**/*.rs"
	DefaultOutput   = "bundle.rs"
	DefaultMarker   = "//"
)

// Bundle concatenates a manifest and a set of source files into one output
// file. All paths are relative to Dir, which is never made the process's
// working directory.
//
// The output starts with a header line naming the manifest, followed by the
// manifest with every line commented out. Then, for each source file
// matching Pattern in lexical path order, it has a blank line, a header line
// naming the file, and the file's contents unchanged. A header line is
// Marker, a space, and the path.
type Bundle struct {
	Dir      string
	Manifest string
	Pattern  string
	Output   string
	Marker   string
	Logger   *slog.Logger
}

// New returns a Bundle rooted at dir with the default manifest, pattern,
// output and marker.
func New(dir string) *Bundle {
	return &Bundle{
		Dir:      dir,
		Manifest: DefaultManifest,
		Pattern:  DefaultPattern,
		Output:   DefaultOutput,
		Marker:   DefaultMarker,
	}
}

// ResolveDir returns the directory containing the running executable, with
// symlinks resolved. This is the base directory used when none is given, so
// that a bundle is the same whichever directory it is run from.
func ResolveDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	dir := filepath.Dir(exe)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("resolving base directory: %s is not a directory", dir)
	}
	return dir, nil
}

// Files returns the source files matching b.Pattern, relative to b.Dir and
// sorted. The output file is never among them, so that a bundle written
// inside the source tree is not fed back into the next one.
func (b *Bundle) Files() ([]string, error) {
	paths, err := glob(b.Dir, b.Pattern)
	if err != nil {
		return nil, err
	}
	out := b.outputRel()
	files := paths[:0]
	for _, p := range paths {
		if p == out {
			b.logger().Debug("skipping output file", "path", p)
			continue
		}
		b.logger().Debug("matched source file", "path", p)
		files = append(files, p)
	}
	return files, nil
}

// Pipe returns a pipe containing the whole bundle. Reading it fails with a
// *ReadError if any source file cannot be read.
func (b *Bundle) Pipe() *Pipe {
	files, err := b.Files()
	if err != nil {
		return NewPipe().WithError(err)
	}
	b.logger().Debug("bundling", "manifest", b.Manifest, "files", len(files))
	return Cat(
		Echo(b.header(b.Manifest)),
		File(b.path(b.Manifest)).Prefix(b.Marker+" "),
		Slice(files).Concat(b.Dir, b.section),
	)
}

// WriteTo writes the bundle to w and returns the number of bytes written.
func (b *Bundle) WriteTo(w io.Writer) (int64, error) {
	return b.Pipe().WithStdout(w).Stdout()
}

// Write writes the bundle to b.Output, replacing it only if the whole bundle
// was produced. It returns the number of bytes written.
func (b *Bundle) Write() (int64, error) {
	out := b.path(b.Output)
	n, err := b.Pipe().WriteFile(out)
	if err != nil {
		return 0, err
	}
	b.logger().Debug("bundle written", "output", out, "bytes", n)
	return n, nil
}

func (b *Bundle) header(path string) string {
	return b.Marker + " " + path + "\n"
}

func (b *Bundle) section(path string) string {
	return "\n" + b.header(path)
}

func (b *Bundle) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(b.Dir, name)
}

// outputRel returns the output path in the form Files reports paths, or ""
// if it lies outside Dir.
func (b *Bundle) outputRel() string {
	rel := filepath.Clean(b.Output)
	if filepath.IsAbs(rel) {
		dir, err := filepath.Abs(b.Dir)
		if err != nil {
			return ""
		}
		if rel, err = filepath.Rel(dir, rel); err != nil {
			return ""
		}
	}
	return filepath.ToSlash(rel)
}

func (b *Bundle) logger() *slog.Logger {
	if b.Logger == nil {
		return discardLogger
	}
	return b.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
