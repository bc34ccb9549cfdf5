package deal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/models"
)

// CompactCmd returns the deal compact subcommand
func CompactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Rewrite stage indices to 0..N-1",
		Long: `Rewrite the indices of a stage (or every stage) so they match the deals'
positions again. Appending with the past_end policy leaves gaps that this closes.

Examples:
  dealflow deal compact --stage won
  dealflow deal compact
`,
		RunE: runCompact,
	}

	cmd.Flags().String("stage", "", "Stage to compact (all stages when omitted)")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runCompact(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := formatterFor(cmd)

	cliInstance, err := openCLI(cmd, formatter)
	if err != nil {
		return err
	}
	defer closeCLI(cliInstance)

	stages := cliInstance.App.Config.Stages
	if stageName, _ := cmd.Flags().GetString("stage"); stageName != "" {
		stage, err := cli.ResolveStage(stages, stageName)
		if err != nil {
			return formatter.Fail(err)
		}
		stages = []models.Stage{stage}
	}

	rewritten := make(map[string]int, len(stages))
	for _, s := range stages {
		n, err := cliInstance.App.DealService.CompactStage(ctx, s.Value)
		if err != nil {
			return formatter.Fail(err)
		}
		rewritten[s.Value] = n
	}

	if formatter.JSON {
		return formatter.Success(map[string]any{"rewritten": rewritten})
	}
	for _, s := range stages {
		fmt.Printf("%s: %d deal(s) renumbered\n", s.Value, rewritten[s.Value])
	}
	return nil
}
