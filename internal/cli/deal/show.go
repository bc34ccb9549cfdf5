package deal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/cli/styles"
	"github.com/thenoetrevino/dealflow/internal/models"
)

// ShowCmd returns the deal show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a deal and its description",
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Deal ID (required)")
	cmd.Flags().Int("width", 80, "Wrap width for the description")
	markRequired(cmd, "id")
	addOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	dealID, _ := cmd.Flags().GetInt("id")
	width, _ := cmd.Flags().GetInt("width")

	d, err := cliInstance.App.DealService.GetDeal(ctx, dealID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(d)
	}

	stageLabel := d.Stage
	if s, ok := models.FindStage(cliInstance.App.Config.Stages, d.Stage); ok {
		stageLabel = s.Label
	}

	fmt.Println(styles.HeaderStyle.Render(fmt.Sprintf("#%d %s", d.ID, d.Name)))
	fmt.Printf("Stage:    %s (index %d)\n", stageLabel, d.Index)
	if d.Category != "" {
		fmt.Printf("Category: %s\n", d.Category)
	}
	fmt.Printf("Amount:   %s\n", cli.FormatAmount(d.Amount))
	fmt.Printf("Updated:  %s\n\n", d.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Println(styles.RenderMarkdown(d.Description, width))
	return nil
}
