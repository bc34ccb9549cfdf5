// Package daemon implements the daemon command that relays board changes
// between running dealflow clients.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/daemon"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/logging"
)

// DaemonCmd returns the daemon command
func DaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the event daemon",
		Long: `Run the event daemon in the foreground. Clients connected to it are
told when another client moves, creates or deletes deals.

Examples:
  dealflow daemon
  dealflow daemon --socket /tmp/dealflow.sock
  dealflow daemon status
`,
		RunE: runDaemon,
	}

	cmd.PersistentFlags().String("socket", "", "Socket path (defaults to the configured one)")
	cmd.AddCommand(statusCmd())

	return cmd
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if socket, _ := cmd.Flags().GetString("socket"); socket != "" {
		cfg.Daemon.SocketPath = socket
	}

	closer, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	return Run(cmd.Context(), cfg.Daemon.SocketPath, slog.Default())
}

// Run serves the daemon on socketPath until ctx is done or the process
// receives SIGINT, SIGTERM or SIGQUIT.
func Run(ctx context.Context, socketPath string, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	server, err := daemon.NewServer(socketPath, logger)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	logger.Info("dealflow daemon starting", "socket_path", socketPath, "pid", os.Getpid())

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	m := server.Metrics()
	logger.Info("dealflow daemon shut down gracefully",
		"events_received", m.EventsReceived,
		"events_sent", m.EventsSent)
	return nil
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the daemon is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")
			formatter := &cli.OutputFormatter{JSON: jsonOutput}

			socketPath, _ := cmd.Flags().GetString("socket")
			if socketPath == "" {
				cfg, err := config.Load()
				if err != nil {
					return formatter.Fail(err)
				}
				socketPath = cfg.Daemon.SocketPath
			}

			client := events.NewClient(socketPath)
			defer func() { _ = client.Close() }()

			if err := client.Connect(cmd.Context()); err != nil {
				return formatter.Fail(events.ClassifyDaemonError(err))
			}

			if jsonOutput {
				return formatter.Success(map[string]any{"running": true, "socket_path": socketPath})
			}
			fmt.Printf("Daemon is running on %s\n", socketPath)
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}
