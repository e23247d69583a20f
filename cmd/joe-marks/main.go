package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joestump/joe-marks/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "joe-marks",
		Short:   "A self-hosted bookmark service",
		Long:    "Joe Marks — a bookmark CRUD API behind a static bearer token.",
		Version: fmt.Sprintf("%s (commit %s, branch %s)", build.Version, build.Commit, build.Branch),
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
