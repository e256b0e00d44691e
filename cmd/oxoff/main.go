// Package main provides the oxoff command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/oxoff/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
