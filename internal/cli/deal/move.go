package deal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/cli"
	dealservice "github.com/thenoetrevino/dealflow/internal/services/deal"
)

// MoveCmd returns the deal move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a deal to a slot in a stage",
		Long: `Move a deal to a position in a stage and renumber the stages it touches.

--index is the slot in the target stage as it looks before the move.
Without --index the deal is appended.

Examples:
  dealflow deal move --id 4 --stage won --index 0
  dealflow deal move --id 4 --stage lost
`,
		RunE: runMove,
	}

	cmd.Flags().Int("id", 0, "Deal ID (required)")
	cmd.Flags().String("stage", "", "Target stage value or label (required)")
	cmd.Flags().Int("index", 0, "Target slot (append when omitted)")
	markRequired(cmd, "id", "stage")
	addOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	dealID, _ := cmd.Flags().GetInt("id")
	stageName, _ := cmd.Flags().GetString("stage")

	stage, err := cli.ResolveStage(cliInstance.App.Config.Stages, stageName)
	if err != nil {
		return formatter.Fail(err)
	}

	req := dealservice.MoveDealRequest{DealID: dealID, ToStage: stage.Value}
	if cmd.Flags().Changed("index") {
		index, _ := cmd.Flags().GetInt("index")
		req.ToIndex = &index
	}

	before, err := cliInstance.App.DealService.GetDeal(ctx, dealID)
	if err != nil {
		return formatter.Fail(err)
	}

	moved, err := cliInstance.App.DealService.MoveDeal(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return formatter.Success(moved)
	}
	if formatter.JSON {
		return formatter.Success(map[string]any{
			"deal":       moved,
			"from_stage": before.Stage,
			"from_index": before.Index,
		})
	}

	fmt.Printf("Deal %d moved from %s[%d] to %s[%d]\n",
		moved.ID, before.Stage, before.Index, moved.Stage, moved.Index)
	return nil
}
