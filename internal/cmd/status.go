package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/ipcclient"
	"github.com/pkyanam/proj/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status and process counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := ipcclient.Send(socketPath(), models.Request{Type: models.ReqStatus})
		if err != nil {
			fmt.Println(statusStyle("stopped").Render("daemon not running"))
			if pid, pidErr := pidFromFile(); pidErr == nil {
				fmt.Println(mutedStyle.Render(fmt.Sprintf("stale pid file points at %d; socket is unreachable", pid)))
			}
			return nil
		}
		if resp.Type == models.RespError || resp.Status == nil {
			return fmt.Errorf("%s", resp.Message)
		}

		fmt.Println(statusStyle("running").Render("daemon running"))
		fmt.Printf("  projects: %d\n", resp.Status.ProjectCount)
		fmt.Printf("  processes: %d\n", resp.Status.ProcessCount)
		return nil
	},
}
