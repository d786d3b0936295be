package main

import (
	"fmt"

	md2site "github.com/alnah/go-md2site"
)

// runClean removes the output directory.
func runClean(args []string, env *Environment) error {
	f, err := parseBuildFlags("clean", args, env.Stderr, printCleanUsage)
	if err != nil {
		return err
	}
	s, err := loadSite(&f.common, &f.site, env)
	if err != nil {
		return err
	}
	if err := md2site.Clean(s.cfg); err != nil {
		return err
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Removed %s\n", s.cfg.Dir.Output)
	}
	return nil
}
