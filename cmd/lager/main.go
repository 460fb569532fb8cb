// Package main contains the lager cli. It uses cobra for the command tree; each
// subcommand loads the configuration, runs one operation and prints its result.
package main

import (
	"fmt"
	"os"

	"lager/internal/output"
)

func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, output.ErrorLine(err))
		os.Exit(1)
	}
}
