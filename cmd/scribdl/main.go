// Package main is the entry point for the scribdl CLI.
package main

import (
	"os"

	"github.com/scribdl/scribdl/cmd/scribdl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
