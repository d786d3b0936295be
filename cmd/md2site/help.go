package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render the site into the output directory")
	fmt.Fprintln(w, "  serve      Build, serve and rebuild on changes")
	fmt.Fprintln(w, "  clean      Remove the output directory")
	fmt.Fprintln(w, "  config     Print the resolved build configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

// printSiteFlags prints the flags shared by every site command.
func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -i, --input <dir>         Input directory (default \".\")")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default \"public\")")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default md2site.yaml)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --drafts              Include pages marked draft")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-page progress")
}

// printEnvVars prints the environment variables md2site reads.
func printEnvVars(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SITE_CONFIG, MD2SITE_INPUT_DIR, MD2SITE_OUTPUT_DIR, MD2SITE_WORKERS,")
	fmt.Fprintln(w, "  MD2SITE_SITE_URL, MD2SITE_DEBOUNCE")
	fmt.Fprintln(w, "  Flags win over environment variables, which win over the config file.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every Markdown page and copy every passthrough path.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	printEnvVars(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site, serve the output directory over HTTP and rebuild")
	fmt.Fprintln(w, "whenever a file below the input directory changes.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --host <addr>         Address to listen on (default localhost)")
	fmt.Fprintln(w, "  -p, --port <n>            Port to listen on (default 8080)")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before a rebuild (default 200ms)")
	printEnvVars(w)
}

// printCleanUsage prints usage for the clean command.
func printCleanUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site clean [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove the output directory. Refuses to remove a directory that")
	fmt.Fprintln(w, "contains the input directory.")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print passthrough copies, markdown plugins and directories as YAML,")
	fmt.Fprintln(w, "after the config file, environment and flags are applied.")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "clean":
		printCleanUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
