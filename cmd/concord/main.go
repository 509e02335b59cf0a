// Package main provides the entry point for the concord CLI.
package main

import (
	"os"

	"github.com/jmhobbs/concord/cmd/concord/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
