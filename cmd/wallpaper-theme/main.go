package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ironsheep/wallpaper-theme/internal/imaging"
	"github.com/ironsheep/wallpaper-theme/internal/server"
	"github.com/ironsheep/wallpaper-theme/internal/theme"
	"github.com/ironsheep/wallpaper-theme/internal/watch"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const usage = `wallpaper-theme - derive a desktop color theme from wallpaper images

Usage:
  wallpaper-theme (--average | --median | --prevalent) [options] IMAGE...
  wallpaper-theme serve [--average | --median | --prevalent] [--max-edge N]

Options may appear before, between or after images; use -- to end them.

Options:
  -a, --average      Primary color is the per-channel mean
  -m, --median       Primary color is the per-channel median
  -p, --prevalent    Primary color is the most frequent exact color
      --max-edge N   Cap the long edge of the working image (default 1000)
      --json         Print themes as JSON
      --watch        Keep running and reprint a theme when its image changes
  -v, --version      Print version information
  -h, --help         Print this help message

Environment variables:
  WALLPAPER_THEME_LOG_LEVEL=debug    Enable debug logging

The serve command runs an MCP server over stdin/stdout.
`

type options struct {
	average, median, prevalent bool
	maxEdge                    int
	json                       bool
	watch                      bool
}

func newFlagSet(name string, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range []string{"a", "average"} {
		fs.BoolVar(&o.average, n, false, "")
	}
	for _, n := range []string{"m", "median"} {
		fs.BoolVar(&o.median, n, false, "")
	}
	for _, n := range []string{"p", "prevalent", "prevalance"} {
		fs.BoolVar(&o.prevalent, n, false, "")
	}
	fs.IntVar(&o.maxEdge, "max-edge", imaging.DefaultMaxEdge, "")
	fs.BoolVar(&o.json, "json", false, "")
	fs.BoolVar(&o.watch, "watch", false, "")
	return fs
}

// centrality resolves the mutually exclusive mode flags. required controls
// whether no flag at all is an error or selects Average.
func (o *options) centrality(required bool) (theme.Centrality, error) {
	var modes []theme.Centrality
	if o.average {
		modes = append(modes, theme.Average)
	}
	if o.median {
		modes = append(modes, theme.Median)
	}
	if o.prevalent {
		modes = append(modes, theme.Prevalent)
	}
	switch {
	case len(modes) > 1:
		return 0, errors.New("--average, --median and --prevalent are mutually exclusive")
	case len(modes) == 1:
		return modes[0], nil
	case required:
		return 0, errors.New("one of --average, --median or --prevalent is required")
	default:
		return theme.Average, nil
	}
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("wallpaper-theme %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Print(usage)
			return
		}
	}

	// stdout carries themes or MCP traffic; logs go to stderr
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("WALLPAPER_THEME_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("wallpaper-theme v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		err = runServe(os.Args[2:], debug)
	} else {
		err = runThemes(ctx, os.Args[1:], os.Stdout, debug)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runServe(args []string, debug bool) error {
	var o options
	if err := newFlagSet("serve", &o).Parse(args); err != nil {
		return fmt.Errorf("%w\n\n%s", err, usage)
	}
	mode, err := o.centrality(false)
	if err != nil {
		return err
	}

	server.Version = Version
	srv := server.New(
		server.WithDefaultCentrality(mode),
		server.WithMaxEdge(o.maxEdge),
		server.WithDebug(debug),
	)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// parseInterspersed parses args with fs, allowing flags after image paths.
// Everything after a "--" terminator is taken as a path.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var paths []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return paths, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(paths, rest...), nil
		}
		paths = append(paths, rest[0])
		args = rest[1:]
	}
}

func runThemes(ctx context.Context, args []string, out io.Writer, debug bool) error {
	var o options
	paths, err := parseInterspersed(newFlagSet("wallpaper-theme", &o), args)
	if err != nil {
		return fmt.Errorf("%w\n\n%s", err, usage)
	}
	mode, err := o.centrality(true)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no image given")
	}

	// Subscribe before the first calculation so no change is missed.
	var w *watch.Watcher
	if o.watch {
		if w, err = watch.New(watch.DefaultSettle, paths...); err != nil {
			return err
		}
		defer w.Close()
	}

	cache := imaging.NewImageCache()
	opts := theme.Options{MaxEdge: o.maxEdge}
	p := printer{out: out, json: o.json, mode: mode}

	for _, path := range paths {
		th, err := theme.CalculateFile(cache, path, mode, opts)
		if err != nil {
			return err
		}
		if err := p.print(path, th); err != nil {
			return err
		}
	}

	if w == nil {
		return nil
	}

	// The watcher reports absolute paths; the cache and the output use the
	// paths as given.
	given := make(map[string]string, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		given[abs] = path
	}

	if debug {
		log.Printf("watching %d wallpaper(s)", len(paths))
	}
	return w.Run(ctx, func(abs string) {
		path, ok := given[abs]
		if !ok {
			path = abs
		}
		cache.Evict(path)
		th, err := theme.CalculateFile(cache, path, mode, opts)
		if err != nil {
			// The file may be mid-write; the next event retries.
			log.Printf("theme %s: %v", path, err)
			return
		}
		if err := p.print(path, th); err != nil {
			log.Printf("print theme: %v", err)
		}
	})
}

// printer writes one theme per image, either as property lines or as JSON.
type printer struct {
	out  io.Writer
	json bool
	mode theme.Centrality
}

type jsonTheme struct {
	Path string `json:"path"`
	*theme.Report
}

func (p printer) print(path string, th *theme.Theme) error {
	if p.json {
		return json.NewEncoder(p.out).Encode(jsonTheme{Path: path, Report: th.Report(p.mode.String())})
	}

	if _, err := fmt.Fprintf(p.out, "# %s (%s)\n", path, p.mode); err != nil {
		return err
	}
	for _, a := range th.Assignments() {
		if _, err := fmt.Fprintf(p.out, "%-9s #%s\n", a.Property, a.Color.Hex()); err != nil {
			return err
		}
	}
	return nil
}
