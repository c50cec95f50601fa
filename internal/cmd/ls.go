package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/config"
	"github.com/pkyanam/proj/internal/ipcclient"
	"github.com/pkyanam/proj/internal/models"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := ipcclient.Send(socketPath(), models.Request{Type: models.ReqListProjects})
		if err != nil {
			return err
		}
		if resp.Type == models.RespError {
			return fmt.Errorf("%s", resp.Message)
		}

		if len(resp.Projects) == 0 {
			fmt.Println(mutedStyle.Render("no projects yet — create one with `proj new <name>`"))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-20s %-8s %s", "NAME", "PORT", "HOST")))
		for _, p := range resp.Projects {
			port := "-"
			if p.Port != nil {
				port = fmt.Sprintf("%d", *p.Port)
			}
			host := fmt.Sprintf("%s:%d", p.Host(), config.Runtime.ProxyPort)
			fmt.Printf("%-20s %-8s %s\n", p.Name, port, host)
		}
		return nil
	},
}
