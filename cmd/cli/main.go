// Command proj is the CLI front-end for the proj daemon: it registers
// projects, launches supervised commands inside them, and reports
// status, all over the daemon's Unix-socket IPC protocol.
package main

import "github.com/pkyanam/proj/internal/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
