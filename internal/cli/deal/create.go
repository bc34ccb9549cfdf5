package deal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/cli"
	dealservice "github.com/thenoetrevino/dealflow/internal/services/deal"
)

// CreateCmd returns the deal create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deal at the end of a stage",
		Long: `Create a deal. It is appended to the end of its stage.

Examples:
  dealflow deal create --name "Acme renewal" --stage opportunity --amount 12000
  dealflow deal create --name "Globex" --stage won --quiet
  dealflow deal create --interactive
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Deal name (required unless --interactive)")
	cmd.Flags().String("stage", "", "Stage value or label (defaults to the first stage)")
	cmd.Flags().Int64("amount", 0, "Deal amount")
	cmd.Flags().String("category", "", "Deal category")
	cmd.Flags().String("description", "", "Deal description (markdown)")
	cmd.Flags().BoolP("interactive", "i", false, "Fill in the deal with a form")
	addOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	name, _ := cmd.Flags().GetString("name")
	stageName, _ := cmd.Flags().GetString("stage")
	amount, _ := cmd.Flags().GetInt64("amount")
	category, _ := cmd.Flags().GetString("category")
	description, _ := cmd.Flags().GetString("description")
	interactive, _ := cmd.Flags().GetBool("interactive")

	stages := cliInstance.App.Config.Stages
	stage := stages[0]
	if stageName != "" {
		if stage, err = cli.ResolveStage(stages, stageName); err != nil {
			return formatter.Fail(err)
		}
	}

	req := dealservice.CreateDealRequest{
		Name:        name,
		Description: description,
		Category:    category,
		Amount:      amount,
		Stage:       stage.Value,
	}

	if interactive {
		values := &dealFormValues{
			Name:        name,
			Stage:       stage.Value,
			Category:    category,
			Description: description,
		}
		if amount != 0 {
			values.Amount = fmt.Sprint(amount)
		}
		if err := newDealForm(values, stages).RunWithContext(ctx); err != nil {
			return formatter.Fail(err)
		}
		if req, err = values.request(); err != nil {
			return formatter.Fail(err)
		}
	}

	d, err := cliInstance.App.DealService.CreateDeal(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(d)
	}
	label := d.Stage
	if s, err := cli.ResolveStage(stages, d.Stage); err == nil {
		label = s.Label
	}
	fmt.Printf("Created deal %d in '%s' at index %d\n", d.ID, label, d.Index)
	return nil
}
