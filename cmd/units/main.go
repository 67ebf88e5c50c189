package main

import (
	"context"
	"os"

	"github.com/physical-quantities/units/internal/cli/commands"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	commands.Version = Version
	commands.GitCommit = GitCommit
	commands.BuildDate = BuildDate

	// Errors are already rendered by Execute.
	if err := commands.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
