package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	md2site "github.com/alnah/go-md2site"
)

// runBuild renders the site once.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, err := parseBuildFlags("build", args, env.Stderr, printBuildUsage)
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
	result, err := b.Build(ctx)
	if err != nil {
		return s.withHint(err)
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %d pages and copied %d files to %s in %s\n",
			len(result.Pages), len(result.Copied), s.cfg.Dir.Output, result.Duration.Round(time.Millisecond))
	}
	return nil
}

// newBuilder creates a Builder from the merged settings.
func newBuilder(s *site, logger *zap.Logger, env *Environment) (*md2site.Builder, error) {
	b, err := md2site.NewBuilder(s.cfg, s.reg, s.builderOptions(logger, env)...)
	if err != nil {
		return nil, s.withHint(err)
	}
	return b, nil
}
