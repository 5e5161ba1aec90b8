// Package main provides the entry point for the sizr CLI.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/sizr/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
