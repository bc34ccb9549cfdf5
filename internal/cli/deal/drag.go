package deal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/board"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/models"
)

// DragCmd returns the deal drag subcommand
func DragCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drag",
		Short: "Replay a drag-and-drop gesture on the board",
		Long: `Replay a drag-and-drop gesture: pick up the card at --from-stage/--from-index
and release it at --to-stage/--to-index, exactly as a board UI would report it.

The board is reordered locally first, then the store is renumbered and the
board is refetched. Omitting --to-stage drops the card outside every column.

Examples:
  dealflow deal drag --from-stage won --from-index 3 --to-stage won --to-index 1
  dealflow deal drag --from-stage opportunity --from-index 2 --to-stage won --to-index 9
`,
		RunE: runDrag,
	}

	cmd.Flags().String("from-stage", "", "Stage the card is picked up from (required)")
	cmd.Flags().Int("from-index", 0, "Slot the card is picked up from")
	cmd.Flags().String("to-stage", "", "Stage the card is dropped on")
	cmd.Flags().Int("to-index", 0, "Slot the card is dropped on")
	markRequired(cmd, "from-stage")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runDrag(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	stages := cliInstance.App.Config.Stages

	fromStageName, _ := cmd.Flags().GetString("from-stage")
	fromIndex, _ := cmd.Flags().GetInt("from-index")
	fromStage, err := cli.ResolveStage(stages, fromStageName)
	if err != nil {
		return formatter.Fail(err)
	}

	result := models.DragResult{Source: models.Location{Stage: fromStage.Value, Index: fromIndex}}
	if toStageName, _ := cmd.Flags().GetString("to-stage"); toStageName != "" {
		toStage, err := cli.ResolveStage(stages, toStageName)
		if err != nil {
			return formatter.Fail(err)
		}
		toIndex, _ := cmd.Flags().GetInt("to-index")
		result.Destination = &models.Location{Stage: toStage.Value, Index: toIndex}
	}

	var mu sync.Mutex
	var remoteErrs []error
	controller := cliInstance.App.NewBoardController(board.WithErrorHandler(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		remoteErrs = append(remoteErrs, err)
	}))

	if err := controller.Refresh(ctx); err != nil {
		return formatter.Fail(err)
	}
	if picked := controller.View().Snapshot().At(result.Source); picked != nil {
		result.DealID = picked.ID
	}

	if err := controller.OnDragEnd(ctx, result); err != nil {
		return formatter.Fail(err)
	}
	controller.Wait()

	if err := errors.Join(remoteErrs...); err != nil {
		return formatter.Fail(err)
	}

	view := controller.View().Snapshot()
	if formatter.JSON {
		return formatter.Success(map[string]any{
			"deal_id": result.DealID,
			"noop":    result.IsNoop(),
			"board":   view,
		})
	}

	if result.IsNoop() {
		fmt.Println("Nothing to do: card released on its own slot or outside the board")
		return nil
	}
	fmt.Println(styles.RenderBoard(stages, view))
	return nil
}
