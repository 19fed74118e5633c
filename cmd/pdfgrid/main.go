package main

import (
	"fmt"
	"os"
)

func main() {
	// No arguments at all drops into the guided interactive flow; anything
	// else goes through the regular CLI.
	if len(os.Args) == 1 {
		os.Exit(runInteractive())
	}

	if err := newRootCmd().Execute(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}
