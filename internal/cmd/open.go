package cmd

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/config"
	"github.com/pkyanam/proj/internal/ipcclient"
	"github.com/pkyanam/proj/internal/models"
)

var openCmd = &cobra.Command{
	Use:   "open <project>",
	Short: "Print a project's URL and open it in the default browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		resp, err := ipcclient.Send(socketPath(), models.Request{Type: models.ReqGetProject, Name: name})
		if err != nil {
			return err
		}
		if resp.Type == models.RespError {
			return fmt.Errorf("%s", resp.Message)
		}
		if resp.Project == nil {
			return fmt.Errorf("daemon returned an unexpected response for get_project")
		}

		url := fmt.Sprintf("http://%s:%d", resp.Project.Host(), config.Runtime.ProxyPort)
		fmt.Println(url)

		if err := openInBrowser(url); err != nil {
			fmt.Println(mutedStyle.Render("could not launch a browser automatically: " + err.Error()))
		}
		return nil
	},
}

// openInBrowser is a boundary convenience only; the daemon is never
// involved beyond the get_project lookup above.
func openInBrowser(url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{url}
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		name, args = "xdg-open", []string{url}
	}
	return exec.Command(name, args...).Start()
}
