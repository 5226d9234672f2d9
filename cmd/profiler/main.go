package main

import (
	"os"

	"github.com/ledgerline/investprofile/backend/cmd/profiler/commands"
)

// main is the entry point for the profiler CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
