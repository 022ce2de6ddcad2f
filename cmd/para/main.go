// Package main is the entry point for the para CLI.
package main

import (
	"os"

	"github.com/paravault/para/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
