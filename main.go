package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/dealflow/cmd"
	"github.com/thenoetrevino/dealflow/internal/cli"
)

func main() {
	err := cmd.Execute(context.Background())
	if err == nil {
		return
	}

	// commands report their own failures; anything else is a cobra usage error
	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code == cli.ExitUsage {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCodeFor(err))
}
