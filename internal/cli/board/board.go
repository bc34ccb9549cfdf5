// Package board implements the board command: the pipeline rendered as columns.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	kanban "github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/events"
	"github.com/thenoetrevino/dealflow/internal/models"
)

// ErrNoDaemon is returned by --watch when no daemon connection is available
var ErrNoDaemon = errors.New("watch needs a running daemon")

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the pipeline board",
		Long: `Show every stage as a column with its deals in index order.

Cards whose stored index disagrees with their position are flagged.
With --watch the board is redrawn whenever another client changes it.

Examples:
  dealflow board
  dealflow board --json
  dealflow board --watch
`,
		RunE: runBoard,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("watch", false, "Redraw when the daemon reports changes")

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	watchMode, _ := cmd.Flags().GetBool("watch")
	formatter := &cli.OutputFormatter{JSON: jsonOutput}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return &cli.CommandError{Code: cli.ExitError, Err: err}
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	controller := cliInstance.App.NewBoardController()
	if err := controller.Refresh(ctx); err != nil {
		return formatter.Fail(err)
	}

	stages := controller.View().Stages()
	render := func(grouped kanban.DealsByStage) {
		if jsonOutput {
			if err := formatter.Success(grouped); err != nil {
				slog.Error("failed to encode board", "error", err)
			}
			return
		}
		fmt.Println(renderBoard(stages, grouped))
	}

	render(controller.View().Snapshot())
	if !watchMode {
		return nil
	}

	publisher := cliInstance.App.EventClient()
	if publisher == nil {
		return formatter.Fail(ErrNoDaemon)
	}
	updates, err := publisher.Listen(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	watch(ctx, controller, updates, render)
	return nil
}

// watch refreshes the board on every deals change event and calls render
// only when the refetch actually changed the view.
func watch(ctx context.Context, controller *kanban.Controller, updates <-chan events.Event, render func(kanban.DealsByStage)) {
	view := controller.View()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-updates:
			if !ok {
				return
			}
			if evt.Type != events.EventDealsChanged {
				continue
			}

			before := view.Revision()
			if err := controller.Refresh(ctx); err != nil {
				slog.Warn("board refresh failed", "error", err)
				continue
			}
			if view.Revision() != before {
				render(view.Snapshot())
			}
		}
	}
}

func renderBoard(stages []models.Stage, grouped kanban.DealsByStage) string {
	if grouped.Count() == 0 {
		return styles.RenderBoard(stages, grouped) + "\n" + styles.SubtleStyle.Render("No deals yet. Create one with: dealflow deal create --name <name>")
	}
	return styles.RenderBoard(stages, grouped)
}
