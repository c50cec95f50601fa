package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pkyanam/proj/internal/config"
	"github.com/pkyanam/proj/internal/ipcclient"
	"github.com/pkyanam/proj/internal/models"
)

var daemonForeground bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start the background daemon (projd)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := ipcclient.Send(socketPath(), models.Request{Type: models.ReqStatus}); err == nil {
			fmt.Println(mutedStyle.Render("daemon is already running"))
			return nil
		}

		bin, err := daemonBinary()
		if err != nil {
			return err
		}

		if daemonForeground {
			fg := exec.Command(bin)
			fg.Stdout = os.Stdout
			fg.Stderr = os.Stderr
			fg.Stdin = os.Stdin
			return fg.Run()
		}

		if err := config.Runtime.EnsureDirs(); err != nil {
			return fmt.Errorf("preparing data directory: %w", err)
		}
		logPath := filepath.Join(config.Runtime.RunDir, "daemon.log")
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening daemon log: %w", err)
		}
		defer logFile.Close()

		bg := exec.Command(bin)
		bg.Stdout = logFile
		bg.Stderr = logFile
		bg.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		if err := bg.Start(); err != nil {
			return fmt.Errorf("starting daemon: %w", err)
		}

		fmt.Printf("Started daemon (pid %d), logging to %s\n", bg.Process.Pid, logPath)
		return nil
	},
}

func init() {
	daemonCmd.Flags().BoolVar(&daemonForeground, "foreground", false, "run the daemon in the foreground instead of detaching")
}

// daemonBinary locates the projd executable: alongside the running
// proj binary first, falling back to PATH.
func daemonBinary() (string, error) {
	self, err := os.Executable()
	if err == nil {
		candidate := filepath.Join(filepath.Dir(self), "projd")
		if stat, statErr := os.Stat(candidate); statErr == nil && !stat.IsDir() {
			return candidate, nil
		}
	}
	return exec.LookPath("projd")
}

// pidFromFile reads the daemon's recorded PID, used only for
// diagnostics when the socket itself is unreachable.
func pidFromFile() (int, error) {
	data, err := os.ReadFile(config.Runtime.PidPath())
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(string(data))
}
