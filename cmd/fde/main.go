// ABOUTME: Entry point for the fde CLI.
// ABOUTME: Invokes the root Cobra command and renders a fatal error in red.
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
