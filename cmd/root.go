package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/board"
	"github.com/thenoetrevino/dealflow/internal/cli/daemon"
	"github.com/thenoetrevino/dealflow/internal/cli/deal"
)

// NewRootCmd builds the dealflow command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dealflow",
		Short: "Dealflow - a deal pipeline board",
		Long: `Dealflow keeps deals on a pipeline board of stages and keeps their
order within each stage when cards are dragged around.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &cli.CommandError{Code: cli.ExitUsage, Err: err}
	})

	rootCmd.AddCommand(deal.DealCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(daemon.DaemonCmd())

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
