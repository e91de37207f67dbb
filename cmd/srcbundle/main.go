// Command srcbundle writes a project's manifest and source files into a
// single file.
//
// Usage:
//
//	srcbundle [flags]
//
// With no flags it bundles Cargo.toml and src/**/*.rs into bundle.rs, all
// relative to the directory containing the srcbundle executable, so the
// result does not depend on where it is run from.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bitfield/srcbundle"
)

// Exit statuses.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(Main())
}

// Main runs the command with the process's arguments and standard streams,
// and returns its exit status.
func Main() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

type config struct {
	dir       string
	manifest  string
	pattern   string
	output    string
	marker    string
	verbose   bool
	logFormat string
}

func parse(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("srcbundle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, `Usage: srcbundle [flags]

Writes the manifest, with every line commented out, followed by every
matching source file under a header naming it, to a single output file.

Flags:
`)
		fs.PrintDefaults()
	}
	c := &config{}
	fs.StringVar(&c.dir, "C", "", "base `dir` for all other paths (default: the directory containing srcbundle)")
	fs.StringVar(&c.manifest, "manifest", srcbundle.DefaultManifest, "manifest `file`")
	fs.StringVar(&c.pattern, "glob", srcbundle.DefaultPattern, "source file `pattern`; ** matches any number of directories")
	fs.StringVar(&c.output, "o", srcbundle.DefaultOutput, "output `file`, or - for standard output")
	fs.StringVar(&c.marker, "marker", srcbundle.DefaultMarker, "comment `marker` for headers and manifest lines")
	fs.BoolVar(&c.verbose, "v", false, "log each matched file")
	fs.StringVar(&c.logFormat, "log-format", "text", "log `format`: text or json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	switch c.logFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid -log-format %q: must be text or json", c.logFormat)
	}
	if c.marker == "" {
		return nil, errors.New("-marker must not be empty")
	}
	return c, nil
}

func newLogger(c *config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if c.verbose {
		opts.Level = slog.LevelDebug
	}
	if c.logFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func run(args []string, stdout, stderr io.Writer) int {
	c, err := parse(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger := newLogger(c, stderr)

	dir := c.dir
	if dir == "" {
		dir, err = srcbundle.ResolveDir()
		if err != nil {
			logger.Error("cannot resolve base directory", "err", err)
			return exitFailure
		}
	}
	logger.Debug("base directory", "dir", dir)

	b := srcbundle.New(dir)
	b.Manifest = c.manifest
	b.Pattern = c.pattern
	b.Output = c.output
	b.Marker = c.marker
	b.Logger = logger

	if c.output == "-" {
		_, err = b.WriteTo(stdout)
	} else {
		_, err = b.Write()
	}
	if err != nil {
		logger.Error("bundle failed", "err", err)
		return exitFailure
	}
	return exitOK
}
