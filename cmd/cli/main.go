// Package main is the entry point for the finopsguard CLI.
package main

import (
	"os"

	"finopsguard/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
