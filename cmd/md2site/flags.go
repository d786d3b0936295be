package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

// Flag errors.
var (
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrUnexpectedArgs = errors.New("unexpected arguments")
)

// Preview server defaults.
const (
	defaultHost = "localhost"
	defaultPort = 8080
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags override the directories and build settings.
type siteFlags struct {
	input   string
	output  string
	workers int
	drafts  bool
}

// serveFlags holds preview server flags.
type serveFlags struct {
	host     string
	port     int
	debounce time.Duration
}

// buildFlags holds every flag of the build, clean and config commands.
type buildFlags struct {
	common commonFlags
	site   siteFlags
}

// serveCmdFlags holds every flag of the serve command.
type serveCmdFlags struct {
	common commonFlags
	site   siteFlags
	serve  serveFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page progress")
}

func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "input directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.drafts, "drafts", false, "include pages marked draft")
}

func addServeFlags(fs *flag.FlagSet, f *serveFlags) {
	fs.StringVar(&f.host, "host", defaultHost, "address to listen on")
	fs.IntVarP(&f.port, "port", "p", defaultPort, "port to listen on")
	fs.DurationVar(&f.debounce, "debounce", 0, "quiet period before a rebuild (0 = 200ms)")
}

// newFlagSet creates a FlagSet that prints usage to w and returns
// errors instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseBuildFlags parses flags for build, clean and config.
func parseBuildFlags(name string, args []string, w io.Writer, usage func(io.Writer)) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newFlagSet(name, w, usage)
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if err := noPositional(fs); err != nil {
		return nil, err
	}
	return f, nil
}

// parseServeFlags parses flags for serve.
func parseServeFlags(args []string, w io.Writer) (*serveCmdFlags, error) {
	f := &serveCmdFlags{}
	fs := newFlagSet("serve", w, printServeUsage)
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addServeFlags(fs, &f.serve)
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if err := noPositional(fs); err != nil {
		return nil, err
	}
	if f.serve.port < 1 || f.serve.port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range 1-65535", ErrInvalidFlags, f.serve.port)
	}
	return f, nil
}

// parse wraps pflag errors so they map to the usage exit code.
// flag.ErrHelp passes through unchanged.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}

func noPositional(fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(fs.Args(), " "))
	}
	return nil
}
