package main

import (
	"fmt"

	"github.com/alnah/go-md2site/internal/yamlutil"
)

// runConfig prints the build contract after every override is applied.
func runConfig(args []string, env *Environment) error {
	f, err := parseBuildFlags("config", args, env.Stderr, printConfigUsage)
	if err != nil {
		return err
	}
	s, err := loadSite(&f.common, &f.site, env)
	if err != nil {
		return err
	}
	out, err := yamlutil.Marshal(s.reg.Contract(s.cfg))
	if err != nil {
		return fmt.Errorf("encoding build contract: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
