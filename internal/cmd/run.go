package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/ipcclient"
	"github.com/pkyanam/proj/internal/models"
)

var runCmd = &cobra.Command{
	Use:   "run <project> -- <command> [args...]",
	Short: "Run a command inside a project, under supervision",
	Long: `Spawns <command> with the project's registered root_dir as its
working directory. The daemon exports PROJECT_ID and PROJECT_HOST to the
child and starts probing it for a listening port; once found, the
project's hostname routes to it.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dash := cmd.ArgsLenAtDash()
		if dash < 1 {
			return fmt.Errorf("usage: proj run <project> -- <command> [args...]")
		}
		project := args[0]
		commandArgs := args[dash:]
		if len(commandArgs) == 0 {
			return fmt.Errorf("no command given after --")
		}

		resp, err := ipcclient.Send(socketPath(), models.Request{
			Type:        models.ReqRunCommand,
			ProjectName: project,
			Command:     commandArgs[0],
			Args:        commandArgs[1:],
		})
		if err != nil {
			return err
		}
		if resp.Type == models.RespError {
			return fmt.Errorf("%s", resp.Message)
		}
		if resp.Process == nil {
			return fmt.Errorf("daemon returned an unexpected response for run_command")
		}

		fmt.Printf("Started %s (pid %d) for %s\n",
			mutedStyle.Render(resp.Process.ProcessID), resp.Process.PID, headerStyle.Render(project))
		return nil
	},
}
