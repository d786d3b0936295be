package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/hints"
	"github.com/alnah/go-md2site/internal/watch"
)

// ErrServe is returned when the preview server cannot listen or fails.
var ErrServe = errors.New("preview server failed")

// Preview server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// runServe builds the site, serves the output directory and rebuilds on
// every change below the input directory until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	logger := newLogger(&f.common, env.Stderr)
	defer func() { _ = logger.Sync() }()

	s, err := loadSite(&f.common, &f.site, env)
	if err != nil {
		return err
	}
	b, err := newBuilder(s, logger, env)
	if err != nil {
		return err
	}
	if _, err := b.Build(ctx); err != nil {
		return s.withHint(err)
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(f.serve.host, strconv.Itoa(f.serve.port)))
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrServe, err, hints.ForServe(f.serve.port))
	}
	w, err := watch.New(s.cfg.Dir.Input,
		watch.WithIgnore(s.cfg.Dir.Output),
		watch.WithDebounce(cmp.Or(f.serve.debounce, s.env.Debounce, watch.DefaultDebounce)),
		watch.WithLogger(logger),
	)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("watching %s: %w", s.cfg.Dir.Input, err)
	}

	srv := &http.Server{
		Handler:           http.FileServer(http.Dir(s.cfg.Dir.Output)),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving %s at http://%s (Ctrl-C to stop)\n", s.cfg.Dir.Output, ln.Addr())
	}

	return serve(ctx, srv, ln, w, rebuilder(b, logger))
}

// serve runs srv on ln and w until ctx is canceled or either fails.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, w *watch.Watcher, onChange func(context.Context)) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %v", ErrServe, err)
		}
		return nil
	})
	g.Go(func() error {
		return w.Run(gctx, onChange)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// rebuilder returns a change handler that rebuilds with b. Build errors are
// logged, not returned, so a typo in a page does not stop the preview.
func rebuilder(b *md2site.Builder, logger *zap.Logger) func(context.Context) {
	return func(ctx context.Context) {
		if _, err := b.Build(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("rebuild failed", zap.Error(err))
		}
	}
}
