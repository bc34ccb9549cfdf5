package deal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteCmd returns the deal delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a deal and close the gap in its stage",
		RunE:  runDelete,
	}

	cmd.Flags().Int("id", 0, "Deal ID (required)")
	markRequired(cmd, "id")
	addOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	dealID, _ := cmd.Flags().GetInt("id")

	if err := cliInstance.App.DealService.DeleteDeal(ctx, dealID); err != nil {
		return formatter.Fail(err)
	}

	switch {
	case formatter.Quiet:
		fmt.Println(dealID)
		return nil
	case formatter.JSON:
		return formatter.Success(map[string]any{"deal_id": dealID})
	}
	fmt.Printf("Deal %d deleted\n", dealID)
	return nil
}
