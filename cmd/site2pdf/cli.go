package main

import (
	"fmt"
	"io"
)

// run dispatches the subcommand and returns the process exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "render":
		return runRenderCmd(args[1:], env)
	case "batch":
		return runBatchCmd(args[1:], env)
	case "status":
		return runStatusCmd(args[1:], env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "site2pdf %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		printUsage(env.Stdout)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: site2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render one subject's published site to PDF")
	fmt.Fprintln(w, "  batch      Render many subjects with bounded concurrency")
	fmt.Fprintln(w, "  status     Show the latest PDF artifact of a subject")
	fmt.Fprintln(w, "  doctor     Diagnose the rendering environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common flags:")
	fmt.Fprintln(w, "  -r, --root <dir>          Project root (generated-files/, dist/)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --format <s>          Page format: a3, a4, a5, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches, all sides (0-3.0)")
	fmt.Fprintln(w, "      --debug               Capture a debug screenshot per render")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-json            Emit JSON logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch flags:")
	fmt.Fprintln(w, "  -n, --concurrency <n>     Renders per chunk (default 2)")
}
