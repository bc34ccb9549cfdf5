package deal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/cli"
	dealservice "github.com/thenoetrevino/dealflow/internal/services/deal"
)

// ListCmd returns the deal list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deals",
		Long: `List deals, optionally restricted to one stage.

Examples:
  dealflow deal list --stage won
  dealflow deal list --sort amount --order desc --page 1 --per-page 20 --json
`,
		RunE: runList,
	}

	cmd.Flags().String("stage", "", "Only list deals in this stage")
	cmd.Flags().String("sort", "index", "Sort field (id, name, amount, stage, index, created_at, updated_at)")
	cmd.Flags().String("order", "asc", "Sort order (asc, desc)")
	cmd.Flags().Int("page", 0, "Page number, starting at 1 (0 lists everything)")
	cmd.Flags().Int("per-page", 0, "Deals per page")
	addOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	stageName, _ := cmd.Flags().GetString("stage")
	sortField, _ := cmd.Flags().GetString("sort")
	orderFlag, _ := cmd.Flags().GetString("order")
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")

	order, err := cli.ParseSortOrder(orderFlag)
	if err != nil {
		return formatter.Fail(err)
	}

	req := dealservice.ListRequest{
		SortField: sortField,
		SortOrder: order,
		Page:      page,
		PerPage:   perPage,
	}
	if stageName != "" {
		stage, err := cli.ResolveStage(cliInstance.App.Config.Stages, stageName)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Stage = stage.Value
	}

	deals, err := cliInstance.App.DealService.ListDeals(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, d := range deals {
			fmt.Println(d.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.Success(deals)
	}

	if len(deals) == 0 {
		fmt.Println("No deals found")
		return nil
	}
	return formatter.Success(deals)
}
