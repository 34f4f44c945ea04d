package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		if os.Getenv("SITE2PDF_VERBOSE") != "" {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}))

	os.Exit(run(os.Args[1:], DefaultEnv()))
}
