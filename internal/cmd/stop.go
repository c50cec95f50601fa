package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/ipcclient"
	"github.com/pkyanam/proj/internal/models"
)

var stopCmd = &cobra.Command{
	Use:   "stop <project>",
	Short: "Stop the running process for a project",
	Long: `Resolves the project's currently running process (the most
recently started running entry returned by list_processes) and sends it
SIGTERM. Does not wait for exit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]

		listResp, err := ipcclient.Send(socketPath(), models.Request{
			Type:        models.ReqListProcesses,
			ProjectName: project,
		})
		if err != nil {
			return err
		}
		if listResp.Type == models.RespError {
			return fmt.Errorf("%s", listResp.Message)
		}

		var running *models.ManagedProcess
		for i := range listResp.Processes {
			p := &listResp.Processes[i]
			if p.Status == models.StatusRunning {
				if running == nil || p.StartedAt.After(running.StartedAt) {
					running = p
				}
			}
		}
		if running == nil {
			return fmt.Errorf("no running process for %q", project)
		}

		resp, err := ipcclient.Send(socketPath(), models.Request{
			Type:        models.ReqStopProcess,
			ProjectName: project,
			ProcessID:   running.ProcessID,
		})
		if err != nil {
			return err
		}
		if resp.Type == models.RespError {
			return fmt.Errorf("%s", resp.Message)
		}

		fmt.Printf("Sent SIGTERM to %s (%s)\n", headerStyle.Render(project), mutedStyle.Render(running.ProcessID))
		return nil
	},
}
