package main

import (
	"os"

	"github.com/dyluth/taskd/cmd/taskd/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Errors are printed by the printer package before they reach here
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
