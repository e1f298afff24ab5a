// Command tripexplorer browses, lists and serves a catalog of trips.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/cli"
	"github.com/rshade/tripexplorer/pkg/version"
)

// Process exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitCatalogLoad = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	root.SilenceErrors = true

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps a command error to a process exit code. Catalog load
// failures get their own code so scripts can tell them from usage errors.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return exitCatalogLoad
	}
	return exitError
}
