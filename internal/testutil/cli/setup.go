// Package cli holds helpers for running dealflow commands against an
// in-memory store.
package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dealflow/internal/app"
	"github.com/thenoetrevino/dealflow/internal/cli"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/database"
	"github.com/thenoetrevino/dealflow/internal/renumber"
	"github.com/thenoetrevino/dealflow/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// The app uses the default stages with the dense append policy.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	cfg := config.Default()
	cfg.Renumber.AppendPolicy = string(renumber.AppendDense)

	return db, app.New(database.NewRepository(db), cfg)
}

// ExecuteCLICommand runs cmd with args against testApp and returns its stdout.
// The app reaches the command through cli.WithApp, so nothing on disk is touched.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctx := cli.WithApp(context.Background(), testApp)

	testutil.SetupCobraCommand(cmd, args)
	cmd.SetContext(ctx)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}
