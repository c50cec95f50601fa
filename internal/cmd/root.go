// Package cmd implements the proj CLI: a thin boundary client that
// talks to projd over its Unix-socket IPC protocol. It holds no
// routing or supervision state of its own.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets build metadata baked in by the release pipeline.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var rootCmd = &cobra.Command{
	Use:   "proj",
	Short: "Stable local hostnames and supervised dev servers",
	Long: `proj gives every local project a stable hostname like
my-app.localhost:8080, supervises the dev server you point it at, and
reverse-proxies requests to whichever ephemeral port that server bound.

Run "proj daemon" once to start the background daemon, then "proj new"
to register a project and "proj run <project> -- <command>" to launch
it under supervision.`,
	Version: version,
}

// Execute runs the root command, exiting nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(versionCmd, newCmd, lsCmd, daemonCmd, statusCmd, runCmd, openCmd, stopCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("proj version %s\n", version)
		if commit != "none" && commit != "" {
			fmt.Printf("commit: %s\n", commit)
		}
		if date != "unknown" && date != "" {
			fmt.Printf("built: %s\n", date)
		}
	},
}

// socketPath is the one piece of daemon state every subcommand needs:
// where to dial.
func socketPath() string {
	return config.Runtime.SocketPath()
}
