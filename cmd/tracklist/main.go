// Command tracklist prints the tracks of a Music library XML export sorted by
// artist, album, and name.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/plistream"
	"github.com/reoring/plistream/library"
	"github.com/reoring/plistream/source/lenient"
	"github.com/reoring/plistream/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(fs.Output(), "tracklist: list the tracks of a Music library export\n\nUsage:\n  tracklist [flags] <Library.xml>\n\nFlags:")
		fs.PrintDefaults()
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tracklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs)

	var (
		cfgPath string
		flags   config
	)
	fs.StringVar(&cfgPath, "config", "", "YAML config file")
	fs.BoolVar(&flags.WithPlaylists, "with-playlists", false, "materialize the top-level Playlists entry")
	fs.StringVar(&flags.Format, "format", "text", "output format: text, json, yaml, or tree")
	fs.StringVar(&flags.SQLite, "sqlite", "", "also write the sorted tracks to this SQLite file")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "maximum dict/array nesting (0 = unlimited)")
	fs.Int64Var(&flags.MaxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	fs.BoolVar(&flags.Lenient, "lenient", false, "accept HTML entities and other non-strict XML")
	fs.BoolVar(&flags.Trace, "trace", false, "log every parser transition at debug level")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := defaultConfig()
	if cfgPath != "" {
		loaded, err := loadConfig(cfgPath)
		if err != nil {
			fmt.Fprintf(stderr, "tracklist: %v\n", err)
			return 2
		}
		cfg = loaded
	}
	cfg.override(fs, flags)
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(stderr, "tracklist: %v\n", err)
		return 2
	}

	log := newLogger(stderr, cfg.Verbose || cfg.Trace)
	defer func() { _ = log.Sync() }()

	if fs.NArg() < 1 {
		fmt.Fprintln(stdout, "Could not read Music.app library (no file given)!")
		fmt.Fprintln(stdout, "Please provide filename for library as command line argument.")
		return 1
	}
	path := fs.Arg(0)

	if cfg.Lenient {
		plistream.SetXMLDriver(lenient.Driver())
		defer plistream.UseDefaultXMLDriver()
	}

	opt := plistream.ParseOpt{
		WithPlaylists: cfg.WithPlaylists,
		MaxDepth:      cfg.MaxDepth,
		MaxBytes:      cfg.MaxBytes,
		Strictness:    plistream.Strictness{OnDuplicateKey: plistream.Warn},
		IssueSink: func(is plistream.Issue) {
			log.Warn("Parse issue", zap.String("code", is.Code), zap.String("path", is.Path), zap.String("message", is.Message))
		},
	}
	if cfg.Trace {
		opt.Tracer = newZapTracer(log)
	}

	log.Debug("Parsing library", zap.String("path", path), zap.Bool("with_playlists", cfg.WithPlaylists), zap.String("driver", plistream.CurrentXMLDriver().Name()))
	root, err := library.Load(ctx, path, opt)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			fmt.Fprintf(stdout, "Could not read Music.app library (%v)!\n", err)
			fmt.Fprintln(stdout, "Please provide filename for library as command line argument.")
			return 1
		}
		if iss, ok := plistream.AsIssues(err); ok {
			for _, is := range iss {
				log.Error("Parse failed", zap.String("code", is.Code), zap.String("path", is.Path), zap.Int64("offset", is.Offset), zap.String("message", is.Message))
			}
		} else {
			log.Error("Parse failed", zap.Error(err))
		}
		return 1
	}

	if cfg.Format == formatTree {
		if err := plistream.EncodeJSON(stdout, root); err != nil {
			log.Error("Write failed", zap.Error(err))
			return 1
		}
		return 0
	}

	tracks, err := library.Tracks(root)
	if err != nil {
		log.Error("No tracks", zap.Error(err))
		return 1
	}
	library.Sort(tracks)
	log.Debug("Sorted tracks", zap.Int("count", len(tracks)))

	if cfg.SQLite != "" {
		if err := saveTracks(ctx, cfg.SQLite, tracks); err != nil {
			log.Error("SQLite export failed", zap.String("path", cfg.SQLite), zap.Error(err))
			return 1
		}
		log.Info("Wrote tracks", zap.String("path", cfg.SQLite), zap.Int("count", len(tracks)))
	}

	if err := writeTracks(stdout, cfg.Format, tracks); err != nil {
		log.Error("Write failed", zap.Error(err))
		return 1
	}
	return 0
}

func saveTracks(ctx context.Context, path string, tracks []library.Track) error {
	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	if err := s.SaveTracks(ctx, tracks); err != nil {
		return errors.Join(err, s.Close())
	}
	return s.Close()
}

func writeTracks(w io.Writer, format string, tracks []library.Track) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(tracks)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tracks); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, t := range tracks {
			if _, err := fmt.Fprintln(w, library.Format(t)); err != nil {
				return err
			}
		}
		return nil
	}
}
