package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/config"
	"github.com/pkyanam/proj/internal/ipcclient"
	"github.com/pkyanam/proj/internal/models"
)

var newDir string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Register a new project with the daemon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !models.ValidateName(name) {
			return fmt.Errorf("%q is not a valid project name (alphanumerics, hyphens, underscores; 1-64 chars)", name)
		}

		rootDir := newDir
		if rootDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}
			rootDir = wd
		}
		rootDir, err := filepath.Abs(rootDir)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", rootDir, err)
		}

		resp, err := ipcclient.Send(socketPath(), models.Request{
			Type:    models.ReqCreateProject,
			Name:    name,
			RootDir: rootDir,
		})
		if err != nil {
			return err
		}
		if resp.Type == models.RespError {
			return fmt.Errorf("%s", resp.Message)
		}
		if resp.Project == nil {
			return fmt.Errorf("daemon returned an unexpected response for create_project")
		}

		fmt.Printf("Created %s at %s\n", headerStyle.Render(resp.Project.Name), resp.Project.RootDir)
		fmt.Printf("  host: %s\n", mutedStyle.Render(fmt.Sprintf("%s:%d", resp.Project.Host(), config.Runtime.ProxyPort)))
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newDir, "dir", "", "project root directory (defaults to the current directory)")
}
