// Command projd is the background daemon: it supervises spawned project
// commands, maintains the routing table, and reverse-proxies
// *.localhost traffic to whichever backend port each project's command
// bound.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pkyanam/proj/internal/config"
	"github.com/pkyanam/proj/internal/debug"
	"github.com/pkyanam/proj/internal/events"
	"github.com/pkyanam/proj/internal/ipc"
	"github.com/pkyanam/proj/internal/logger"
	"github.com/pkyanam/proj/internal/models"
	"github.com/pkyanam/proj/internal/portprobe"
	"github.com/pkyanam/proj/internal/proxy"
	"github.com/pkyanam/proj/internal/recovery"
	"github.com/pkyanam/proj/internal/registry"
	"github.com/pkyanam/proj/internal/routing"
	"github.com/pkyanam/proj/internal/supervisor"
)

const shutdownGrace = 5 * time.Second

func main() {
	isDev := os.Getenv("PROJ_ENV") != "production"
	logger.Configure(logger.LevelFromEnv(isDev), isDev)

	if err := run(); err != nil {
		logger.Errorf("daemon exiting: %v", err)
		os.Exit(1)
	}
}

func run() error {
	rc := config.Runtime
	if err := rc.EnsureDirs(); err != nil {
		return fmt.Errorf("preparing data directory: %w", err)
	}

	if err := os.WriteFile(rc.PidPath(), []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("writing pid file: %w", err)
	}
	defer os.Remove(rc.PidPath())

	reg, err := registry.Open(rc.DataDir)
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	watcher, err := reg.Watch()
	if err != nil {
		logger.Warnf("daemon: registry file watcher disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	routingTable := routing.New()
	sup := supervisor.New(portprobe.New(portprobe.DefaultConfig()), 256)

	router := events.New(sup, routingTable, reg)
	recovery.SafeGo("event-router", router.Run)
	defer router.Stop()

	proxyServer := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", rc.ProxyPort),
		Handler: proxy.New(routingTable),
	}

	debugApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	debug.New(sup, reg, routingTable).Register(debugApp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher := ipc.New(sup, reg, routingTable, func() { stop() })
	if err := dispatcher.Listen(rc.SocketPath()); err != nil {
		return fmt.Errorf("starting ipc listener: %w", err)
	}
	defer os.Remove(rc.SocketPath())

	errCh := make(chan error, 3)
	recovery.SafeGo("ipc-server", func() {
		if err := dispatcher.Serve(); err != nil {
			errCh <- fmt.Errorf("ipc server: %w", err)
		}
	})
	recovery.SafeGo("proxy-server", func() {
		if err := proxyServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("proxy server: %w", err)
		}
	})
	recovery.SafeGo("debug-server", func() {
		if err := debugApp.Listen(fmt.Sprintf("127.0.0.1:%d", rc.DebugPort)); err != nil {
			errCh <- fmt.Errorf("debug server: %w", err)
		}
	})

	logger.Infof("proj daemon ready: ipc=%s proxy=http://127.0.0.1:%d debug=http://127.0.0.1:%d",
		rc.SocketPath(), rc.ProxyPort, rc.DebugPort)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Errorf("%v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	_ = proxyServer.Shutdown(shutdownCtx)
	_ = debugApp.ShutdownWithTimeout(shutdownGrace)
	_ = dispatcher.Close()

	// kill_on_drop: children are owned by this daemon, so a clean shutdown
	// signals every still-running process rather than orphaning them.
	for _, proc := range sup.List() {
		if proc.Status != models.StatusRunning {
			continue
		}
		if err := sup.Stop(proc.ProcessID); err != nil {
			logger.Warnf("daemon: failed to stop %s during shutdown: %v", proc.ProcessID, err)
		}
	}

	logger.Info("daemon stopped")
	return nil
}
